package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	logparser "github.com/yildizm/go-logparser"
)

// Supported input formats
const (
	FormatAuto   = "auto"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
	FormatText   = "text"
)

// maxLineLength bounds a single review line
const maxLineLength = 1024 * 1024

// textKeys are the structured fields that may carry the review body, in
// lookup order
var textKeys = []string{"review", "review_text", "text", "message", "msg"}

// Input is one review read from a file, before validation
type Input struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Rating string `json:"rating"`
}

// Parser turns review lines into inputs
type Parser struct {
	format string
	logs   logparser.Parser
}

// New creates a parser. FormatAuto detects the format from the first
// non-empty line.
func New(format string) (*Parser, error) {
	switch format {
	case "", FormatAuto:
		return &Parser{format: FormatAuto}, nil
	case FormatJSON, FormatLogfmt, FormatText:
		p := &Parser{format: format}
		p.init()
		return p, nil
	default:
		return nil, fmt.Errorf("unknown format %s. Available formats: auto, json, logfmt, text", format)
	}
}

// Format returns the resolved format, or FormatAuto before detection
func (p *Parser) Format() string {
	return p.format
}

func (p *Parser) init() {
	switch p.format {
	case FormatJSON:
		p.logs = logparser.NewWithFormat(logparser.FormatJSON)
	case FormatLogfmt:
		p.logs = logparser.NewWithFormat(logparser.FormatLogfmt)
	}
}

// Parse reads every review in r
func Parse(r io.Reader, format string) ([]Input, error) {
	p, err := New(format)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return p.ParseLines(lines, 1)
}

// ParseLines parses lines numbered from firstLine. Blank lines and
// '#' comments are skipped. A malformed line is skipped too; the returned
// error joins one error per skipped line.
func (p *Parser) ParseLines(lines []string, firstLine int) ([]Input, error) {
	var (
		inputs []Input
		errs   []error
	)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if p.format == FormatAuto {
			p.format = DetectFormat(trimmed)
			p.init()
		}

		in, err := p.parseLine(trimmed)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", firstLine+i, err))
			continue
		}
		in.Line = firstLine + i
		inputs = append(inputs, in)
	}
	return inputs, errors.Join(errs...)
}

func (p *Parser) parseLine(line string) (Input, error) {
	if p.format == FormatText {
		return parseTextLine(line), nil
	}

	entries, err := p.logs.ParseString(line)
	if err != nil {
		return Input{}, fmt.Errorf("failed to parse %s: %w", p.format, err)
	}
	if len(entries) == 0 {
		return Input{}, fmt.Errorf("no %s record found", p.format)
	}

	return fromEntry(entries[0]), nil
}

// fromEntry reads the review fields of a structured record
func fromEntry(entry logparser.LogEntry) Input {
	var in Input
	for _, key := range textKeys {
		if v, ok := entry.Fields[key]; ok {
			if s := fieldString(v); s != "" {
				in.Text = s
				break
			}
		}
	}
	if in.Text == "" {
		in.Text = entry.Message
	}
	if v, ok := entry.Fields["rating"]; ok {
		in.Rating = cleanRating(fieldString(v))
	}
	return in
}

// parseTextLine splits "RATING TEXT" on the first space or tab. A single
// token is kept as text with no rating.
func parseTextLine(line string) Input {
	rating, text, found := strings.Cut(line, " ")
	if tab := strings.IndexByte(line, '\t'); tab >= 0 && (!found || tab < len(rating)) {
		rating, text, found = line[:tab], line[tab+1:], true
	}
	if !found {
		return Input{Text: line}
	}
	return Input{Rating: cleanRating(rating), Text: strings.TrimSpace(text)}
}

// cleanRating reduces "4/5" and "4.0" style values to the entered number
func cleanRating(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/5")
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return strconv.Itoa(int(f))
	}
	return s
}

func fieldString(v interface{}) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// DetectFormat guesses the format of a single line
func DetectFormat(line string) string {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "{"):
		return FormatJSON
	case looksLikeLogfmt(line):
		return FormatLogfmt
	default:
		return FormatText
	}
}

// looksLikeLogfmt reports whether the first token is a bare key=value pair
func looksLikeLogfmt(line string) bool {
	first, _, _ := strings.Cut(line, " ")
	key, _, ok := strings.Cut(first, "=")
	if !ok || key == "" {
		return false
	}
	for _, r := range key {
		if !(r == '_' || r == '-' || r == '.' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// FormatForPath picks a format from a file extension
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl", ".ndjson":
		return FormatJSON
	case ".logfmt":
		return FormatLogfmt
	case ".txt", ".tsv":
		return FormatText
	default:
		return FormatAuto
	}
}
