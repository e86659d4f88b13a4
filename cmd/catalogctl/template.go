package main

import (
	"fmt"
	"os"

	"catalog-service/internal/catalog"

	"github.com/spf13/cobra"
)

var templateOutput string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write the product import template workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := catalog.EmitTemplate()
		if err != nil {
			return err
		}
		if err := os.WriteFile(templateOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write template: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Template written to %s\n", templateOutput)
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "produtos_modelo.xlsx", "Output file path")
	rootCmd.AddCommand(templateCmd)
}
