package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/labscript-ai/labscript/internal/presentation/tui"
	"github.com/labscript-ai/labscript/pkg/workflow"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline for one goal: SOP, code, simulation",
	Long: `Restores the saved hardware configuration, drafts an SOP for the given
goal, generates protocol code and verifies it against the simulator.`,
	Run: func(cmd *cobra.Command, args []string) {
		goal, _ := cmd.Flags().GetString("goal")
		if goal == "" {
			fmt.Println("a goal is required, e.g. --goal \"Serial dilution across a 96 well plate\"")
			os.Exit(1)
		}

		app, _, err := buildApp(cmd, nil)
		if err != nil {
			fmt.Printf("Error initializing labscript: %v\n", err)
			os.Exit(1)
		}

		ctx := cmd.Context()
		tui.PrintBanner()
		app.Restore(ctx)

		if _, err := app.Dispatch(workflow.SetGoal{Text: goal}); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		render := tui.NewRenderer()

		fmt.Println("Drafting SOP...")
		sop, err := app.Orchestrator().GenerateSOP(ctx)
		if err != nil {
			fmt.Printf("SOP generation failed: %v\n", err)
			os.Exit(1)
		}
		if out, err := render(sop); err == nil {
			fmt.Print(out)
		} else {
			fmt.Println(sop)
		}

		artifact, err := app.Orchestrator().GenerateCode(ctx, func(msg string) {
			fmt.Println(msg)
		})
		if err != nil {
			fmt.Printf("Code generation failed: %v\n", err)
			os.Exit(1)
		}
		for _, ev := range artifact.Events {
			fmt.Println(tui.EventLine(ev))
		}
		for _, warning := range artifact.Warnings {
			fmt.Printf("  warning: %s\n", warning)
		}

		fmt.Println("Simulating...")
		outcome, err := app.Orchestrator().RunSimulation(ctx)
		if err != nil {
			fmt.Printf("Simulation call failed: %v\n", err)
			os.Exit(1)
		}

		state := app.State()
		fmt.Println(tui.StatusLine(state.Status, outcome.StatusMessage))
		if outcome.ErrorMessage != "" {
			fmt.Println(outcome.ErrorMessage)
		}
		if outcome.WarningDetail != "" {
			fmt.Println(outcome.WarningDetail)
		}

		if codePath, _ := cmd.Flags().GetString("out"); codePath != "" {
			if err := os.WriteFile(codePath, []byte(artifact.Code), 0o644); err != nil {
				fmt.Printf("Could not write protocol code: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Protocol code written to %s\n", codePath)
		} else {
			fmt.Println(artifact.Code)
		}

		if !outcome.Succeeded {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("goal", "g", "", "Experiment goal in plain language")
	runCmd.Flags().StringP("out", "o", "", "Write the generated protocol code to this file")
}
