package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/shadowing-backend/internal/service/practice/scoring"
)

// errExpectationFailed is returned when at least one case scored differently
// from its expect_score.
var errExpectationFailed = errors.New("one or more cases did not match their expected score")

// batchFile is the YAML input of score-batch.
type batchFile struct {
	Cases []batchCase `yaml:"cases"`
}

type batchCase struct {
	Name          string `yaml:"name"`
	Reference     string `yaml:"reference"`
	Transcription string `yaml:"transcription"`
	ExpectScore   *int   `yaml:"expect_score,omitempty"`
}

type batchResult struct {
	Name        string      `yaml:"name"`
	Result      scoreOutput `yaml:"result"`
	ExpectScore *int        `yaml:"expect_score,omitempty"`
	Passed      *bool       `yaml:"passed,omitempty"`
}

type batchReport struct {
	Total   int           `yaml:"total"`
	Failed  int           `yaml:"failed"`
	Results []batchResult `yaml:"results"`
}

func newBatchCmd() *cobra.Command {
	var parallel int

	cmd := &cobra.Command{
		Use:   "score-batch <file.yaml>",
		Short: "Score every case of a YAML batch and report the results",
		Long: `Score every case of a YAML batch file:

  cases:
    - name: greeting
      reference: "A: Hello there. B: Hi!"
      transcription: "hello there hi"
      expect_score: 100

The report is written as YAML. The command exits non-zero when any case
with expect_score scores differently.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open batch: %w", err)
			}
			defer f.Close()
			return runBatch(cmd.Context(), f, cmd.OutOrStdout(), parallel)
		},
	}
	cmd.Flags().IntVar(&parallel, "parallel", runtime.NumCPU(), "number of cases scored concurrently")
	return cmd
}

// runBatch decodes a batch from r, scores every case and writes the YAML
// report to w. Results keep the input order regardless of parallelism.
func runBatch(ctx context.Context, r io.Reader, w io.Writer, parallel int) error {
	var in batchFile
	if err := yaml.NewDecoder(r).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode batch: %w", err)
	}
	for i, c := range in.Cases {
		if c.Reference == "" {
			return fmt.Errorf("case %d (%q): reference is required", i, c.Name)
		}
	}
	if parallel < 1 {
		parallel = 1
	}

	results := make([]batchResult, len(in.Cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, c := range in.Cases {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := batchResult{
				Name:        c.Name,
				Result:      toOutput(scoring.Score(c.Reference, c.Transcription)),
				ExpectScore: c.ExpectScore,
			}
			if c.ExpectScore != nil {
				passed := res.Result.OverallScore == *c.ExpectScore
				res.Passed = &passed
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	report := batchReport{Total: len(results), Results: results}
	for _, res := range results {
		if res.Passed != nil && !*res.Passed {
			report.Failed++
			slog.Warn("case failed",
				slog.String("name", res.Name),
				slog.Int("expected", *res.ExpectScore),
				slog.Int("got", res.Result.OverallScore),
			)
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if report.Failed > 0 {
		return errExpectationFailed
	}
	return nil
}
