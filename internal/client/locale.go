// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package client

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/text/language"
)

var errInvalidLanguage = errors.New("invalid language tag")

// Localizer provides the value of the Accept-Language header. It is read on every call.
type Localizer interface {
	AcceptLanguage() string
}

// LocalizerFunc adapts a plain function to a Localizer.
type LocalizerFunc func() string

// AcceptLanguage implements Localizer.
func (f LocalizerFunc) AcceptLanguage() string {
	return f()
}

var _ Localizer = &Locale{}

// Locale is a Localizer holding a single BCP 47 tag that can be swapped at runtime.
type Locale struct {
	tag atomic.Pointer[string]
}

// NewLocale returns a Locale for lang; an empty lang selects English.
func NewLocale(lang string) (*Locale, error) {
	locale := new(Locale)
	if err := locale.SetLanguage(lang); err != nil {
		return nil, err
	}

	return locale, nil
}

// SetLanguage validates lang and makes it the value sent by following calls.
func (l *Locale) SetLanguage(lang string) error {
	tag, err := canonicalLanguage(lang)
	if err != nil {
		return err
	}

	l.tag.Store(&tag)
	return nil
}

// AcceptLanguage implements Localizer.
func (l *Locale) AcceptLanguage() string {
	if tag := l.tag.Load(); tag != nil {
		return *tag
	}

	return defaultLanguage
}

func canonicalLanguage(lang string) (string, error) {
	if lang == "" {
		return defaultLanguage, nil
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", errInvalidLanguage, lang, err)
	}

	return tag.String(), nil
}
