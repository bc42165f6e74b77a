package main

import (
	"fmt"
	"strings"

	"github.com/labscript-ai/labscript"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of labscript",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("labscript version %s\n", strings.TrimSpace(labscript.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
