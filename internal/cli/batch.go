package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yildizm/ReviewRadar/internal/importer"
	"github.com/yildizm/ReviewRadar/internal/review"
	"github.com/yildizm/ReviewRadar/internal/service"
	"github.com/yildizm/ReviewRadar/internal/viewmodel"
)

var (
	batchFormat    string
	batchThreshold string
	batchFailFast  bool
)

func newBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Analyze every review in a file",
		Long: `Read reviews from a file and analyze them one at a time.

Each non-empty line is one review. JSON and logfmt lines carry the text in a
"review", "review_text" or "text" field and the stars in "rating"; plain text
lines start with the rating followed by the review.

Examples:
  reviewradar batch reviews.jsonl
  reviewradar batch --format text reviews.txt
  reviewradar batch -o csv --output-file results.csv reviews.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().StringVarP(&batchFormat, "format", "f", "auto", "input format (auto, json, logfmt, text)")
	cmd.Flags().StringVarP(&batchThreshold, "threshold", "t", "", "threshold tier (lenient, average, strict; default from config)")
	cmd.Flags().BoolVar(&batchFailFast, "fail-fast", false, "stop at the first failed review")

	return cmd
}

// batchResult counts the outcome of a batch run
type batchResult struct {
	Submitted int
	Failed    int
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	threshold, err := resolveThreshold(batchThreshold, cfg)
	if err != nil {
		return err
	}

	inputs, source, err := readBatchFile(args[0], batchFormat)
	if err != nil {
		return err
	}

	sess, err := newSession(cfg, nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	return analyzeBatch(cmd.Context(), sess, source, inputs, threshold, cmd.OutOrStdout())
}

// readBatchFile parses a review file; "auto" defers to the file extension
// before falling back to content detection
func readBatchFile(path, format string) ([]importer.Input, string, error) {
	if err := validateFilePath(path); err != nil {
		return nil, "", fmt.Errorf("invalid file path: %w", err)
	}
	cleanPath := filepath.Clean(path)

	if format == "" || format == importer.FormatAuto {
		format = importer.FormatForPath(cleanPath)
	}

	// #nosec G304 - path is validated above
	file, err := os.Open(cleanPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close file: %v\n", err)
		}
	}()

	inputs, err := importer.Parse(file, format)
	if err != nil {
		return nil, "", err
	}
	if len(inputs) == 0 {
		return nil, "", fmt.Errorf("no reviews found in %s", cleanPath)
	}
	return inputs, cleanPath, nil
}

// analyzeBatch submits inputs in order, one in flight at a time, and
// writes a report of every successful result
func analyzeBatch(ctx context.Context, sess *session, source string, inputs []importer.Input, threshold review.Threshold, out io.Writer) error {
	sess.store.Dispatch(viewmodel.SelectMode{Mode: viewmodel.ModeManual})

	stop := startProgress(fmt.Sprintf("Analyzing %d reviews from %s", len(inputs), filepath.Base(source)))
	result, err := submitInputs(ctx, sess, inputs, threshold, nil)
	if err != nil {
		stop(false, "Batch aborted")
		return err
	}
	stop(result.Failed == 0, fmt.Sprintf("Analyzed %d of %d reviews", result.Submitted-result.Failed, result.Submitted))

	st := sess.store.Snapshot()
	report, err := sess.report(source, viewmodel.ModeManual, threshold, st.ManualResults)
	if err != nil {
		return err
	}
	report.Site = ""
	if err := writeReport(report, out); err != nil {
		return err
	}

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d reviews failed", result.Failed, result.Submitted)
	}
	return nil
}

// submitInputs runs each input as a manual submission. onResult, when set,
// receives every successful review with its source line.
func submitInputs(ctx context.Context, sess *session, inputs []importer.Input, threshold review.Threshold, onResult func(line int, r review.Review)) (batchResult, error) {
	var result batchResult

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		sess.store.Dispatch(viewmodel.SetManualText{Value: in.Text})
		sess.store.Dispatch(viewmodel.SetManualRating{Value: in.Rating})
		sess.store.Dispatch(viewmodel.SetManualThreshold{Threshold: threshold})

		result.Submitted++
		st, err := sess.submit(ctx, viewmodel.SubmitManual{})
		if err != nil {
			result.Failed++
			sess.log.Warn("line %d: %s", in.Line, service.UserMessage(err))
			if batchFailFast {
				return result, fmt.Errorf("line %d: %w", in.Line, &submissionError{err: err})
			}
			continue
		}

		if onResult != nil {
			onResult(in.Line, st.ManualResults[len(st.ManualResults)-1])
		}
	}

	return result, nil
}
