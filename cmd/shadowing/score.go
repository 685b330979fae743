package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
	"github.com/heartmarshall/shadowing-backend/internal/service/practice/scoring"
)

type scoreOptions struct {
	reference         string
	referenceFile     string
	transcription     string
	transcriptionFile string
}

func newScoreCmd() *cobra.Command {
	var opts scoreOptions

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one transcription against a reference passage",
		Example: `  shadowing score --reference "A: Hello there." --transcription "hello there"
  shadowing score --reference-file ref.txt --transcription-file attempt.txt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reference, err := pick(opts.reference, opts.referenceFile, "reference")
			if err != nil {
				return err
			}
			transcription, err := pick(opts.transcription, opts.transcriptionFile, "transcription")
			if err != nil {
				return err
			}
			return writeScore(cmd.OutOrStdout(), scoring.Score(reference, transcription))
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.reference, "reference", "", "reference passage text")
	f.StringVar(&opts.referenceFile, "reference-file", "", "file holding the reference passage")
	f.StringVar(&opts.transcription, "transcription", "", "transcribed attempt")
	f.StringVar(&opts.transcriptionFile, "transcription-file", "", "file holding the transcribed attempt")
	cmd.MarkFlagsMutuallyExclusive("reference", "reference-file")
	cmd.MarkFlagsMutuallyExclusive("transcription", "transcription-file")
	return cmd
}

// pick returns the inline value or the contents of path. An empty
// transcription is valid input; an empty reference is not.
func pick(inline, path, name string) (string, error) {
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		inline = string(b)
	}
	if name == "reference" && inline == "" {
		return "", errors.New("reference is required")
	}
	return inline, nil
}

type turnOutput struct {
	Text   string   `json:"text"             yaml:"text"`
	Status string   `json:"status"           yaml:"status"`
	Score  int      `json:"score"            yaml:"score"`
	Issues []string `json:"issues"           yaml:"issues,omitempty"`
	Hints  []string `json:"hints,omitempty"  yaml:"hints,omitempty"`
}

type scoreOutput struct {
	OverallScore int          `json:"overallScore" yaml:"overall_score"`
	Turns        []turnOutput `json:"turns"        yaml:"turns"`
}

func toOutput(res domain.ScoringResult) scoreOutput {
	out := scoreOutput{OverallScore: res.OverallScore, Turns: make([]turnOutput, len(res.Turns))}
	for i, t := range res.Turns {
		issues := t.Issues
		if issues == nil {
			issues = []string{}
		}
		out.Turns[i] = turnOutput{
			Text:   t.Text,
			Status: string(t.Status),
			Score:  t.Score,
			Issues: issues,
			Hints:  t.Hints,
		}
	}
	return out
}

func writeScore(w io.Writer, res domain.ScoringResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toOutput(res))
}
