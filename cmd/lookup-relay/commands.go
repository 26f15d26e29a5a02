// cmd/lookup-relay/commands.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"lookup-relay/pkg/registry"
)

var headerColor = color.New(color.FgCyan, color.Bold).SprintFunc()

func newCommandsCommand() *cobra.Command {
	var (
		format string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List the commands the relay understands.",
		Long:  `Prints the command catalog with usage and upstream endpoint. Does not need a config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommandsCmd(cmd.OutOrStdout(), registry.New(prefix), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or yaml")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "/", "command prefix to render usage with")
	return cmd
}

func runCommandsCmd(w io.Writer, reg *registry.CommandRegistry, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reg)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(reg)
	case "table":
		fmt.Fprintln(w, headerColor(fmt.Sprintf("Commands (registry %s):", reg.Version)))
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Usage", "Endpoint", "Description"})
		table.SetBorder(true)
		table.SetAutoWrapText(false)
		table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
		for _, c := range reg.Commands {
			endpoint := c.Endpoint
			if endpoint == "" {
				endpoint = "-"
			} else if c.PathArg {
				endpoint += "/<" + strings.Join(c.Args, ">/<") + ">"
			}
			table.Append([]string{c.Usage(reg.Prefix), endpoint, c.Description})
		}
		table.Render()
		return nil
	default:
		return fmt.Errorf("unknown format %q, expected table, json or yaml", format)
	}
}
