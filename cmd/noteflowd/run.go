package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run one RSS ingestion cycle and print the summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		summary, err := a.ingest.FetchAll(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(summary)
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Run one retention cycle and print the deletion counts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.cleanup.ExecuteCleanup(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
