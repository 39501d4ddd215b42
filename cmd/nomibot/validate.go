package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakenomibu/nomibot/pkg/scenario"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the scenario graph for consistency",
	Long:  `Walks the scenario table from the entry phase and reports dead links, cycles or unreachable phases.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Scenario is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(args []string) error {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		_, err = scenario.Parse(data)
		return err
	}
	_, err := scenario.Load()
	return err
}
