package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"catalog-service/internal/catalog"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "catalogctl",
	Short:         "Catalog spreadsheet tooling: template, validation and import",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// readRows opens a .xlsx or .csv file and returns its rows.
func readRows(path string) ([]catalog.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if isCSV(path) {
		return catalog.ReadCSV(f)
	}
	return catalog.ReadWorkbook(f)
}

func printReport(w io.Writer, title string, result *catalog.ImportResult) {
	fmt.Fprintf(w, "=== %s ===\n", title)
	for _, o := range result.Results {
		if o.Success {
			if o.ProductID != "" {
				fmt.Fprintf(w, "  [ok]   %s -> %s\n", o.Reference, o.ProductID)
			} else {
				fmt.Fprintf(w, "  [ok]   %s\n", o.Reference)
			}
			continue
		}
		fmt.Fprintf(w, "  [fail] %s: %s\n", o.Reference, o.Error)
	}
	fmt.Fprintf(w, "Products: %d\nSucceeded: %d\nFailed: %d\n", result.Total, result.Success, result.Failed)
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
