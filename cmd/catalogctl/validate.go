package main

import (
	"context"

	"catalog-service/internal/catalog"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a product spreadsheet without storing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := readRows(validateFile)
		if err != nil {
			return err
		}

		logger := logrus.New()
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetLevel(logrus.ErrorLevel)

		items := catalog.Prepare(rows, nil)
		result := catalog.NewRunner(logrus.NewEntry(logger)).Run(context.Background(), items, func(ctx context.Context, draft *catalog.ProductDraft) (string, error) {
			return "", nil
		})
		printReport(cmd.OutOrStdout(), "Validation Report", result)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Spreadsheet path, .xlsx or .csv (required)")
	validateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(validateCmd)
}
