// cmd/lookup-relay/exec.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newExecCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:     "exec <command> [args...]",
		Short:   "Dispatch a single command and print the result.",
		Example: `  lookup-relay exec /email_lookup john@example.com`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			a, err := newApp(ctx, *configPath)
			if err != nil {
				return err
			}
			// close waits for the notification to be delivered.
			defer a.close(ctx)

			result := a.dispatcher.Dispatch(ctx, a.parser.Parse(strings.Join(args, " ")))

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
