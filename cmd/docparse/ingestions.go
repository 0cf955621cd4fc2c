package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognicore/docparse/pkg/docparse/store"
)

func newIngestionsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var limit int

	cmd := &cobra.Command{
		Use:   "ingestions",
		Short: "List recent entries from the ingestion ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if comp.Settings.LedgerPath == "" {
				return errNoLedger
			}

			st, err := ctx.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			entries, err := st.RecentIngestions(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if wantJSON(cmd, asJSON) {
				return writeJSON(cmd, entries)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderIngestions(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON even on a terminal")
	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultRecentLimit, "Maximum entries to list")
	return cmd
}

func renderIngestions(entries []store.Ingestion) string {
	headers := []string{"ID", "File", "Type", "Status", "Bytes", "Tags", "Keywords", "Phrases", "Duration", "Created"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			e.Filename,
			e.FileType,
			string(e.Status),
			strconv.FormatInt(e.SizeBytes, 10),
			strconv.Itoa(e.TagCount),
			strconv.Itoa(e.KeywordCount),
			strconv.Itoa(e.PhraseCount),
			e.Duration.Round(time.Millisecond).String(),
			e.CreatedAt.Local().Format(time.DateTime),
		})
	}
	return renderTable(headers, rows, aligns)
}
