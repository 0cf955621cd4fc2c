package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/docparse/pkg/docparse"
)

type analyzeResult struct {
	File     string                  `json:"file"`
	Response *docparse.ParseResponse `json:"response,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var concurrency int

	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Parse local files and print their tags, keywords, and phrases",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.logger(cmd.ErrOrStderr())
			svc, err := ctx.newService(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer svc.Close()

			results := analyzeFiles(cmd.Context(), svc, args, concurrency)

			if wantJSON(cmd, asJSON) {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				printAnalyzeTables(cmd, results)
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON even on a terminal")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", runtime.NumCPU(), "Files parsed in parallel")
	return cmd
}

// analyzeFiles parses every path with bounded parallelism. Results keep the
// argument order; one failing file does not stop the others.
func analyzeFiles(ctx context.Context, svc *docparse.Service, paths []string, concurrency int) []analyzeResult {
	if concurrency <= 0 {
		concurrency = 1
	}
	results := make([]analyzeResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = analyzeFile(gctx, svc, path)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func analyzeFile(ctx context.Context, svc *docparse.Service, path string) analyzeResult {
	result := analyzeResult{File: path}

	f, err := os.Open(path)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer f.Close()

	resp, err := svc.Parse(ctx, docparse.Upload{Filename: path, Body: f})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			result.Error = "cancelled"
		} else {
			result.Error = err.Error()
		}
		return result
	}
	result.Response = &resp
	return result
}

func printAnalyzeTables(cmd *cobra.Command, results []analyzeResult) {
	out := cmd.OutOrStdout()
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, r.File)

		var rows [][]string
		if r.Error != "" {
			rows = [][]string{{"Error", r.Error}}
		} else {
			resp := r.Response
			rows = [][]string{
				{"ID", resp.ID},
				{"File type", resp.FileType},
				{"Text bytes", strconv.Itoa(len(resp.Text))},
				{"Tags", joinOrDash(resp.SuggestedTags)},
				{"Keywords", joinOrDash(resp.Keywords)},
				{"Phrases", joinOrDash(resp.Phrases)},
			}
		}
		fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))
	}
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
