package main

import (
	"context"
	"fmt"

	"catalog-service/internal/catalog"
	"catalog-service/internal/clients"
	"catalog-service/internal/config"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	importFile   string
	importTenant string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a product spreadsheet into the catalog database",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg := config.Load()
		logger := config.NewLogger(cfg)
		logger.SetOutput(cmd.ErrOrStderr())

		rows, err := readRows(importFile)
		if err != nil {
			return err
		}

		db, err := config.InitDB(cfg, logger)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}

		ctx := context.Background()
		repo := repository.NewProductsRepository(db, nil, cfg.DefaultCurrency, logrus.NewEntry(logger))
		lookup := clients.NewCategoriesClient(cfg.CategoriesServiceURL, nil, logrus.NewEntry(logger)).Lookup(ctx, importTenant)

		items := catalog.Prepare(rows, lookup)
		result := catalog.NewRunner(logrus.NewEntry(logger)).Run(ctx, items, func(ctx context.Context, draft *catalog.ProductDraft) (string, error) {
			return repo.CreateFromDraft(ctx, importTenant, draft, models.ProductSourceImport)
		})
		printReport(cmd.OutOrStdout(), "Import Report", result)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Spreadsheet path, .xlsx or .csv (required)")
	importCmd.Flags().StringVar(&importTenant, "tenant", "", "Tenant ID (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.MarkFlagRequired("tenant")
	rootCmd.AddCommand(importCmd)
}
