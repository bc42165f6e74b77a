package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "labscript",
	Short: "LabScript turns plain-language experiment goals into lab robot protocols",
	Long: `LabScript drives an AI protocol pipeline: describe the hardware on your
bench, state the experiment goal, and it drafts an SOP, generates protocol
code and verifies it against the simulator.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "labscript.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}
