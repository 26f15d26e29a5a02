// cmd/lookup-relay/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"

func main() {
	if err := newRootCommand(Version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(version string) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "lookup-relay",
		Short:         "lookup-relay turns chat commands into lookup API calls.",
		Long:          `lookup-relay accepts text commands over HTTP, relays them to the lookup API with retries, and posts the outcome to a notification sink.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file (default: ./configs/config.yaml)")

	root.AddCommand(newServeCommand(&configPath))
	root.AddCommand(newExecCommand(&configPath))
	root.AddCommand(newCommandsCommand())
	return root
}
