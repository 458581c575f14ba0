package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/ReviewRadar/internal/importer"
	"github.com/yildizm/ReviewRadar/internal/review"
)

var (
	watchFormat    string
	watchThreshold string
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Analyze reviews as they are appended to a file",
		Long: `Monitor a review file and analyze every line appended to it.

Uses file system notifications to detect changes and submits new reviews in
the order they are written, one at a time. Lines already in the file when
watching starts are skipped. Press Ctrl+C to stop watching.

Examples:
  reviewradar watch incoming.jsonl
  reviewradar watch --format text --threshold strict incoming.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchFormat, "format", "f", "auto", "input format (auto, json, logfmt, text)")
	cmd.Flags().StringVarP(&watchThreshold, "threshold", "t", "", "threshold tier (lenient, average, strict; default from config)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	filename := args[0]

	threshold, err := resolveThreshold(watchThreshold, cfg)
	if err != nil {
		return err
	}

	format := watchFormat
	if format == "" || format == importer.FormatAuto {
		format = importer.FormatForPath(filename)
	}
	parser, err := importer.New(format)
	if err != nil {
		return err
	}

	watcher, tail, cleanup, err := setupFileWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanup()

	sess, err := newSession(cfg, nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := &reviewWatcher{
		sess:      sess,
		parser:    parser,
		tail:      tail,
		threshold: threshold,
		out:       cmd.OutOrStdout(),
	}
	return w.run(ctx, watcher)
}

// reviewWatcher submits reviews appended to a watched file
type reviewWatcher struct {
	sess      *session
	parser    *importer.Parser
	tail      *fileTail
	threshold review.Threshold
	out       io.Writer
}

// run runs the main watch loop until ctx is cancelled
func (w *reviewWatcher) run(ctx context.Context, watcher *fsnotify.Watcher) error {
	fmt.Fprintf(w.out, "%s Watching %s for new reviews...\n", GetEmoji("eye"), w.tail.name)

	for {
		select {
		case <-ctx.Done():
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if err := w.handleEvent(ctx, event); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				w.sess.log.Warn("error handling event: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.sess.log.Warn("watcher error: %v", err)
		}
	}
}

// handleEvent processes write events only
func (w *reviewWatcher) handleEvent(ctx context.Context, event fsnotify.Event) error {
	if !event.Has(fsnotify.Write) {
		return nil
	}
	return w.processNewLines(ctx)
}

// processNewLines submits every complete line appended since the last read
func (w *reviewWatcher) processNewLines(ctx context.Context) error {
	lines, first, err := w.tail.readLines()
	if err != nil {
		return fmt.Errorf("error reading new lines: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}

	inputs, err := w.parser.ParseLines(lines, first)
	w.warnSkipped(err)

	_, err = submitInputs(ctx, w.sess, inputs, w.threshold, func(line int, r review.Review) {
		fmt.Fprintln(w.out, resultLine(line, r))
	})
	return err
}

// warnSkipped logs each malformed line the parser skipped
func (w *reviewWatcher) warnSkipped(err error) {
	if err == nil {
		return
	}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		w.sess.log.Warn("skipped %v", err)
		return
	}
	for _, e := range joined.Unwrap() {
		w.sess.log.Warn("skipped %v", e)
	}
}

// fileTail reads complete lines appended to a file. A trailing line with
// no newline yet is held back until it is finished.
type fileTail struct {
	name    string
	file    *os.File
	reader  *bufio.Reader
	partial string
	line    int // lines consumed so far
}

// readLines returns the new complete lines and the number of the first one
func (t *fileTail) readLines() ([]string, int, error) {
	if err := t.checkTruncated(); err != nil {
		return nil, 0, err
	}

	first := t.line + 1
	var lines []string
	for {
		chunk, err := t.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				t.partial += chunk
				return lines, first, nil
			}
			return lines, first, err
		}

		line := strings.TrimRight(t.partial+chunk, "\r\n")
		t.partial = ""
		t.line++
		lines = append(lines, line)
	}
}

// checkTruncated restarts from the beginning when the file shrank
func (t *fileTail) checkTruncated() error {
	info, err := t.file.Stat()
	if err != nil {
		return err
	}
	pos, err := t.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if info.Size() >= pos-int64(t.reader.Buffered()) {
		return nil
	}

	if _, err := t.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	t.reader.Reset(t.file)
	t.partial = ""
	t.line = 0
	return nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// cleanupFile safely closes file with error logging
func cleanupFile(file *os.File) {
	if err := file.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close file: %v\n", err)
	}
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// openTail opens a file positioned at its end, counting the lines skipped
func openTail(filename string) (*fileTail, error) {
	// #nosec G304 - path is validated by caller
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	tail := &fileTail{name: filename, file: file, reader: bufio.NewReader(file)}

	// existing content is skipped, but its lines still count
	existing, _, err := tail.readLines()
	if err != nil {
		cleanupFile(file)
		return nil, fmt.Errorf("failed to skip existing content: %w", err)
	}
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Skipped %d existing lines\n", len(existing))
	}

	return tail, nil
}

// setupFileWatcher creates the watcher and the tail reader
func setupFileWatcher(filename string) (*fsnotify.Watcher, *fileTail, func(), error) {
	if err := validateWatchFilePath(filename); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid file path: %w", err)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching file: %s\n", filename)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	watcher, err := createWatcher(filename)
	if err != nil {
		return nil, nil, nil, err
	}

	tail, err := openTail(filename)
	if err != nil {
		cleanupWatcher(watcher)
		return nil, nil, nil, err
	}

	cleanup := func() {
		cleanupWatcher(watcher)
		cleanupFile(tail.file)
	}

	return watcher, tail, cleanup, nil
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	// Check for path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
