package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chiku1101/druggs/internal/application"
)

var (
	analyzeDrug        string
	analyzeCondition   string
	analyzeIngredients bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis and print the JSON result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg.Logging)

		analyzer, _, err := buildPipeline(cfg, logger)
		if err != nil {
			return err
		}

		result, err := analyzer.RunAnalysis(cmd.Context(), application.Request{
			Drug:           analyzeDrug,
			Condition:      analyzeCondition,
			IngredientMode: analyzeIngredients,
		})
		if err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDrug, "drug", "", "drug or ingredient name")
	analyzeCmd.Flags().StringVar(&analyzeCondition, "condition", "", "target condition or disease")
	analyzeCmd.Flags().BoolVar(&analyzeIngredients, "ingredients", false, "analyze drug composition instead of repurposing")
}
