// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

var renderers = map[string]func(io.Writer, any) error{
	outputJSON: renderJSON,
	outputYAML: renderYAML,
}

// render writes value to out in the requested format.
func render(out io.Writer, format string, value any) error {
	return renderers[format](out, value)
}

func renderJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// renderYAML goes through JSON first so the keys and the raw envelope data
// keep the names used on the wire.
func renderYAML(out io.Writer, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return err
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(generic); err != nil {
		return err
	}
	return encoder.Close()
}
