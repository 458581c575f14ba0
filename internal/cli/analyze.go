package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yildizm/ReviewRadar/internal/config"
	"github.com/yildizm/ReviewRadar/internal/review"
	"github.com/yildizm/ReviewRadar/internal/viewmodel"
)

var (
	analyzeThreshold string
	reviewRating     string
	reviewThreshold  string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze URL",
		Short: "Analyze every review on a product page",
		Long: `Ask the analysis service to fetch a product page and classify each of its
reviews as real or fake.

Examples:
  reviewradar analyze https://www.example.com/product/123
  reviewradar analyze --threshold strict https://www.example.com/product/123
  reviewradar analyze -o json https://www.example.com/product/123`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeThreshold, "threshold", "t", "", "threshold tier (lenient, average, strict; default from config)")

	return cmd
}

func newReviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review TEXT",
		Short: "Analyze a single review",
		Long: `Classify one review text together with its star rating.

Use "-" as TEXT to read the review from stdin.

Examples:
  reviewradar review --rating 5 "Best purchase I ever made"
  echo "Arrived broken" | reviewradar review --rating 1 -`,
		Args: cobra.MinimumNArgs(1),
		RunE: runReview,
	}

	cmd.Flags().StringVarP(&reviewRating, "rating", "r", "", "star rating between 1 and 5")
	cmd.Flags().StringVarP(&reviewThreshold, "threshold", "t", "", "threshold tier (lenient, average, strict; default from config)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	threshold, err := resolveThreshold(analyzeThreshold, cfg)
	if err != nil {
		return err
	}

	sess, err := newSession(cfg, nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	return analyzeURL(cmd.Context(), sess, args[0], threshold, cmd.OutOrStdout())
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	threshold, err := resolveThreshold(reviewThreshold, cfg)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if text == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read review from stdin: %w", err)
		}
		text = string(data)
	}

	sess, err := newSession(cfg, nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	return analyzeText(cmd.Context(), sess, text, reviewRating, threshold, cmd.OutOrStdout())
}

// analyzeURL submits a product URL and writes the report
func analyzeURL(ctx context.Context, sess *session, productURL string, threshold review.Threshold, out io.Writer) error {
	sess.store.Dispatch(viewmodel.SetURL{Value: productURL})
	sess.store.Dispatch(viewmodel.SetAutoThreshold{Threshold: threshold})

	stop := startProgress(fmt.Sprintf("Analyzing reviews on %s", review.SiteOf(productURL)))
	st, err := sess.submit(ctx, viewmodel.SubmitAutomatic{})
	if err != nil {
		stop(false, "Analysis failed")
		return &submissionError{err: err}
	}
	stop(true, fmt.Sprintf("Analyzed %d reviews", len(st.AutoResults)))

	report, err := sess.report(strings.TrimSpace(productURL), viewmodel.ModeAutomatic, threshold, st.AutoResults)
	if err != nil {
		return err
	}
	return writeReport(report, out)
}

// analyzeText submits one review and writes the report
func analyzeText(ctx context.Context, sess *session, text, rating string, threshold review.Threshold, out io.Writer) error {
	sess.store.Dispatch(viewmodel.SelectMode{Mode: viewmodel.ModeManual})
	sess.store.Dispatch(viewmodel.SetManualText{Value: text})
	sess.store.Dispatch(viewmodel.SetManualRating{Value: rating})
	sess.store.Dispatch(viewmodel.SetManualThreshold{Threshold: threshold})

	stop := startProgress("Analyzing review")
	st, err := sess.submit(ctx, viewmodel.SubmitManual{})
	if err != nil {
		stop(false, "Analysis failed")
		return &submissionError{err: err}
	}

	result := st.ManualResults[len(st.ManualResults)-1]
	stop(true, fmt.Sprintf("Review classified %s", result.Verdict()))

	report, err := sess.report("manual review", viewmodel.ModeManual, st.EffectiveManualThreshold(), []review.Review{result})
	if err != nil {
		return err
	}
	report.Site = ""
	return writeReport(report, out)
}

// resolveThreshold parses a --threshold value, falling back to the
// configured default tier
func resolveThreshold(value string, cfg *config.Config) (review.Threshold, error) {
	t, err := review.ParseThreshold(value)
	if err != nil {
		return review.ThresholdUnset, err
	}
	if !t.IsSet() {
		return cfg.Threshold(), nil
	}
	return t, nil
}
