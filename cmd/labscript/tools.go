package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the generation service's available tools",
	Run: func(cmd *cobra.Command, args []string) {
		app, cfg, err := buildApp(cmd, nil)
		if err != nil {
			fmt.Printf("Error initializing labscript: %v\n", err)
			os.Exit(1)
		}

		ctx := cmd.Context()

		health, err := app.Service().Health(ctx)
		if err != nil {
			fmt.Printf("Service at %s is unreachable: %v\n", cfg.Service.URL, err)
			os.Exit(1)
		}
		fmt.Printf("Service: %s (%s)\n", health.Status, health.Message)

		tools, err := app.Service().ListTools(ctx)
		if err != nil {
			fmt.Printf("Could not list tools: %v\n", err)
			os.Exit(1)
		}
		for _, tool := range tools {
			fmt.Printf("  %-24s %s\n", tool.Name, tool.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
