// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history <user-id>",
	Short: "List a user's saved generations, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	st, err := store.New(loadConfig(loadedSecrets).Store, log)
	if err != nil {
		return err
	}
	defer st.Close()

	gens, err := st.ListByUser(context.Background(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(gens)
	}

	if len(gens) == 0 {
		fmt.Fprintf(out, "No generations for %s.\n", args[0])
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tPLATFORM\tTONE\tTOPIC")
	for _, g := range gens {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.CreatedAt.Format("2006-01-02 15:04"), g.Platform, g.Tone, g.Topic)
	}
	return tw.Flush()
}

var historyExportCmd = &cobra.Command{
	Use:   "export <user-id>",
	Short: "Export a user's history as YAML or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	st, err := store.New(loadConfig(loadedSecrets).Store, log)
	if err != nil {
		return err
	}
	defer st.Close()

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	if err := store.Export(context.Background(), st, args[0], store.ExportFormat(strings.ToLower(format)), w); err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(os.Stderr, "Exported history of %s to %s\n", args[0], output)
	}
	return nil
}

func init() {
	historyCmd.Flags().Bool("json", false, "print generations as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("output", "", "write to this file instead of stdout")

	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
