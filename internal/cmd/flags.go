// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mia-platform/hookctl/internal/webhook"
)

const (
	outputFlagName  = "output"
	outputFlagShort = "o"
	outputFlagUsage = "output format of the result, one of: json, yaml"

	fileFlagName  = "filename"
	fileFlagShort = "f"
	fileFlagUsage = "path to a JSON or YAML file holding the webhook, or - to read standard input"

	ownerFlagName         = "owner"
	organizationFlagName  = "organization"
	pageFlagName          = "page"
	pageSizeFlagName      = "page-size"
	fieldFlagName         = "field"
	valueFlagName         = "value"
	sortFieldFlagName     = "sort-field"
	sortOrderFlagName     = "sort-order"
	stdinFileName         = "-"
	defaultOutputFormat   = outputJSON
	organizationFlagUsage = "organization the webhooks belong to"
)

// outputFlags holds the flags shared by every API command.
type outputFlags struct {
	output string
}

func (f *outputFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, outputFlagName, outputFlagShort, defaultOutputFormat, outputFlagUsage)
}

// toOptions validates the output format and builds the options for calling the API.
func (f *outputFlags) toOptions(cmd *cobra.Command) (*options, error) {
	if _, ok := renderers[f.output]; !ok {
		return nil, fmt.Errorf("%w: %s", errInvalidOutput, f.output)
	}

	api, err := apiGetter()
	if err != nil {
		return nil, err
	}

	return &options{
		api:    api,
		out:    cmd.OutOrStdout(),
		format: f.output,
	}, nil
}

// listFlags holds the flags of the "list" command.
type listFlags struct {
	outputFlags

	owner        string
	organization string
	page         string
	pageSize     string
	field        string
	value        string
	sortField    string
	sortOrder    string
}

func (f *listFlags) addFlags(cmd *cobra.Command) {
	f.outputFlags.addFlags(cmd)

	flags := cmd.Flags()
	flags.StringVar(&f.owner, ownerFlagName, "", "owner of the webhooks")
	flags.StringVar(&f.organization, organizationFlagName, "", organizationFlagUsage)
	flags.StringVar(&f.page, pageFlagName, "", "page to return, starting from 1")
	flags.StringVar(&f.pageSize, pageSizeFlagName, "", "number of webhooks in a page")
	flags.StringVar(&f.field, fieldFlagName, "", "field to filter on")
	flags.StringVar(&f.value, valueFlagName, "", "value the filtered field must contain")
	flags.StringVar(&f.sortField, sortFieldFlagName, "", "field to sort on")
	flags.StringVar(&f.sortOrder, sortOrderFlagName, "", "sort order, one of: "+webhook.SortAscend+", "+webhook.SortDescend)
}

func (f *listFlags) query() webhook.ListQuery {
	return webhook.ListQuery{
		Owner:        f.owner,
		Organization: f.organization,
		Page:         f.page,
		PageSize:     f.pageSize,
		Field:        f.field,
		Value:        f.value,
		SortField:    f.sortField,
		SortOrder:    f.sortOrder,
	}
}

// getFlags holds the flags of the "get" command.
type getFlags struct {
	outputFlags

	organization string
}

func (f *getFlags) addFlags(cmd *cobra.Command) {
	f.outputFlags.addFlags(cmd)
	cmd.Flags().StringVar(&f.organization, organizationFlagName, "", organizationFlagUsage)
}

// fileFlags holds the flags of the commands sending a webhook.
type fileFlags struct {
	outputFlags

	filename string
}

func (f *fileFlags) addFlags(cmd *cobra.Command) {
	f.outputFlags.addFlags(cmd)
	cmd.Flags().StringVarP(&f.filename, fileFlagName, fileFlagShort, "", fileFlagUsage)
}

// readWebhook decodes the webhook found in the file flag. It returns nil when no file was given.
func (f *fileFlags) readWebhook(cmd *cobra.Command) (*webhook.Webhook, error) {
	if f.filename == "" {
		return nil, nil
	}

	var reader io.Reader
	if f.filename == stdinFileName {
		reader = cmd.InOrStdin()
	} else {
		data, err := os.ReadFile(filepath.Clean(f.filename))
		if err != nil {
			return nil, fmt.Errorf("webhook file %q: %w", f.filename, unwrappedError(err))
		}
		reader = bytes.NewReader(data)
	}

	// JSON documents are valid YAML, one decoder reads both
	hook := new(webhook.Webhook)
	if err := yaml.NewDecoder(reader).Decode(hook); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %q", errEmptyFile, f.filename)
		}
		return nil, fmt.Errorf("%w %q: %w", errParsingFile, f.filename, err)
	}

	return hook, nil
}
