package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/yildizm/ReviewRadar/internal/formatter"
	"github.com/yildizm/ReviewRadar/internal/service"
)

// progressEnabled turns the one-shot spinners on; tests switch it off
var progressEnabled = true

// submissionError prints the user-facing message while keeping the cause
type submissionError struct {
	err error
}

func (e *submissionError) Error() string {
	return "analysis failed: " + service.UserMessage(e.err)
}

func (e *submissionError) Unwrap() error {
	return e.err
}

// startProgress shows a spinner on stderr and returns its stop function
func startProgress(text string) func(ok bool, msg string) {
	noop := func(bool, string) {}
	if !progressEnabled || isVerbose() {
		return noop
	}

	spinner, err := pterm.DefaultSpinner.
		WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithWriter(os.Stderr).
		Start(text)
	if err != nil {
		return noop
	}

	return func(ok bool, msg string) {
		if ok {
			spinner.Success(msg)
		} else {
			spinner.Fail(msg)
		}
	}
}

// writeReport formats a report in the selected output format
func writeReport(report *formatter.Report, out io.Writer) error {
	formatterInstance, err := formatter.New(getOutputFormat(), !noColor)
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	output, err := formatterInstance.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return handleOutputDestination(output, out)
}

// handleOutputDestination writes output to file or out
func handleOutputDestination(output []byte, out io.Writer) error {
	if outputFile != "" {
		if err := validateOutputFilePath(outputFile); err != nil {
			return fmt.Errorf("invalid output file path: %w", err)
		}

		if err := writeOutputBytesToFile(output, outputFile); err != nil {
			return fmt.Errorf("failed to write output to file: %w", err)
		}

		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Output saved to: %s\n", outputFile)
		}
		return nil
	}

	_, err := out.Write(output)
	return err
}

func validateFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

func validateOutputFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	// #nosec G304 - path is validated by caller
	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	// Sync to ensure data is written
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
