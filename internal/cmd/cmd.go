// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mia-platform/hookctl/internal/webhook"
)

const (
	listCmdUsage = "list"
	listCmdShort = "list the webhooks of an owner"
	listCmdLong  = `List the webhooks of an owner.
	Filtering, sorting and pagination are applied by the server. When both
	--page and --page-size are set the result also carries the total count.`
	listCmdExample = `# List every webhook of the built-in organization
	hookctl list --owner admin --organization built-in

	# Second page of ten webhooks whose url contains "example"
	hookctl list --owner admin --page 2 --page-size 10 --field url --value example`

	getCmdUsage   = "get OWNER/NAME"
	getCmdShort   = "show a single webhook"
	getCmdExample = `# Show a webhook as YAML
	hookctl get admin/my-hook --organization built-in -o yaml`

	addCmdUsage = "add"
	addCmdShort = "create a webhook from a file"
	addCmdLong  = `Create a webhook from a JSON or YAML file.
	Use "-" as file name to read the definition from standard input.`
	addCmdExample = `# Create a webhook
	hookctl add -f webhook.yaml`

	updateCmdUsage   = "update OWNER/NAME"
	updateCmdShort   = "replace a webhook with the content of a file"
	updateCmdExample = `# Replace admin/my-hook, renaming it if the file carries another name
	hookctl update admin/my-hook -f webhook.yaml`

	deleteCmdUsage = "delete [OWNER/NAME]"
	deleteCmdShort = "delete a webhook"
	deleteCmdLong  = `Delete a webhook.
	The webhook is identified by the OWNER/NAME argument or by the owner and
	name found in the file passed with -f.`
	deleteCmdExample = `# Delete by id
	hookctl delete admin/my-hook

	# Delete the webhook described in a file
	hookctl delete -f webhook.yaml`

	mockServerCmdUsage = "mock-server"
	mockServerCmdShort = "serve an in-memory webhook API for local development"
	mockServerCmdLong  = `Serve the webhook management endpoints from memory.
	The listening address is read from the HTTP_HOST and HTTP_PORT environment
	variables. Point WEBHOOK_API_ENDPOINT at it to try the other commands.`
	mockServerCmdExample = `# Start the mock server on port 8000
	HTTP_PORT=8000 hookctl mock-server`
)

// newCommand builds a command sharing the error handling of the whole tree.
func newCommand(use, short, long, example string, run func(cmd *cobra.Command, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Short:   heredoc.Doc(short),
		Long:    heredoc.Doc(long),
		Example: heredoc.Doc(example),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(cmd, args); err != nil {
				return handleError(cmd, err)
			}
			return nil
		},
	}
}

// ListCmd returns the "list" cli command.
func ListCmd() *cobra.Command {
	flags := &listFlags{}
	cmd := newCommand(listCmdUsage, listCmdShort, listCmdLong, listCmdExample, func(cmd *cobra.Command, args []string) error {
		if err := cobra.NoArgs(cmd, args); err != nil {
			return err
		}

		opts, err := flags.toOptions(cmd)
		if err != nil {
			return err
		}
		return opts.list(cmd.Context(), flags.query())
	})

	flags.addFlags(cmd)
	return cmd
}

// GetCmd returns the "get" cli command.
func GetCmd() *cobra.Command {
	flags := &getFlags{}
	cmd := newCommand(getCmdUsage, getCmdShort, getCmdShort, getCmdExample, func(cmd *cobra.Command, args []string) error {
		owner, name, err := idFromArgs(args)
		if err != nil {
			return err
		}

		opts, err := flags.toOptions(cmd)
		if err != nil {
			return err
		}
		return opts.get(cmd.Context(), owner, flags.organization, name)
	})

	flags.addFlags(cmd)
	return cmd
}

// AddCmd returns the "add" cli command.
func AddCmd() *cobra.Command {
	flags := &fileFlags{}
	cmd := newCommand(addCmdUsage, addCmdShort, addCmdLong, addCmdExample, func(cmd *cobra.Command, args []string) error {
		if err := cobra.NoArgs(cmd, args); err != nil {
			return err
		}

		hook, err := flags.readWebhook(cmd)
		if err != nil {
			return err
		}
		if hook == nil {
			return errMissingFile
		}

		opts, err := flags.toOptions(cmd)
		if err != nil {
			return err
		}
		return opts.add(cmd.Context(), *hook)
	})

	flags.addFlags(cmd)
	return cmd
}

// UpdateCmd returns the "update" cli command.
func UpdateCmd() *cobra.Command {
	flags := &fileFlags{}
	cmd := newCommand(updateCmdUsage, updateCmdShort, updateCmdShort, updateCmdExample, func(cmd *cobra.Command, args []string) error {
		owner, name, err := idFromArgs(args)
		if err != nil {
			return err
		}

		hook, err := flags.readWebhook(cmd)
		if err != nil {
			return err
		}
		if hook == nil {
			return errMissingFile
		}

		opts, err := flags.toOptions(cmd)
		if err != nil {
			return err
		}
		return opts.update(cmd.Context(), owner, name, *hook)
	})

	flags.addFlags(cmd)
	return cmd
}

// DeleteCmd returns the "delete" cli command.
func DeleteCmd() *cobra.Command {
	flags := &fileFlags{}
	cmd := newCommand(deleteCmdUsage, deleteCmdShort, deleteCmdLong, deleteCmdExample, func(cmd *cobra.Command, args []string) error {
		hook, err := flags.readWebhook(cmd)
		if err != nil {
			return err
		}

		switch {
		case hook != nil && len(args) > 0:
			return errIDAndFile
		case hook == nil:
			owner, name, err := idFromArgs(args)
			if err != nil {
				return err
			}
			hook = &webhook.Webhook{Owner: owner, Name: name}
		}

		opts, err := flags.toOptions(cmd)
		if err != nil {
			return err
		}
		return opts.delete(cmd.Context(), *hook)
	})

	flags.addFlags(cmd)
	return cmd
}

// MockServerCmd returns the "mock-server" cli command.
func MockServerCmd() *cobra.Command {
	return newCommand(mockServerCmdUsage, mockServerCmdShort, mockServerCmdLong, mockServerCmdExample, func(cmd *cobra.Command, args []string) error {
		if err := cobra.NoArgs(cmd, args); err != nil {
			return err
		}
		return runMockServer(cmd.Context())
	})
}
