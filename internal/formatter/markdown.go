package formatter

import (
	"fmt"
	"strings"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Review Authenticity Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	f.writeSummaryTable(&b, report)

	if len(report.Reviews) > 0 {
		f.writeReviews(&b, report)
		f.writeRatings(&b, report)
		f.writeHistogram(&b, report)
	}

	return []byte(b.String()), nil
}

// writeSummaryTable writes the summary as a two-column table
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *Report) {
	total := len(report.Reviews)
	fake := report.FakeCount()

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Source | %s |\n", escapeMarkdownCell(report.Source))
	if report.Site != "" {
		fmt.Fprintf(b, "| Site | %s |\n", report.Site)
	}
	fmt.Fprintf(b, "| Mode | %s |\n", report.Mode)
	fmt.Fprintf(b, "| Threshold | %s |\n", report.Threshold)
	fmt.Fprintf(b, "| Reviews | %s |\n", formatNumber(total))
	fmt.Fprintf(b, "| Real | %d (%.1f%%) |\n", total-fake, percent(total-fake, total))
	fmt.Fprintf(b, "| Fake | %d (%.1f%%) |\n", fake, percent(fake, total))
	fmt.Fprintf(b, "| Mean Rating | %s |\n\n", formatMean(report.Ratings))
}

// writeReviews writes one table row per review
func (f *markdownFormatter) writeReviews(b *strings.Builder, report *Report) {
	b.WriteString("## Reviews\n\n")
	b.WriteString("| # | Verdict | Confidence | Rating | Review |\n")
	b.WriteString("|---|---------|------------|--------|--------|\n")
	for i, r := range report.Reviews {
		fmt.Fprintf(b, "| %d | %s | %.1f%% | %s | %s |\n",
			i+1, r.Verdict(), r.Confidence, escapeMarkdownCell(r.Rating), escapeMarkdownCell(singleLine(r.Text, 200)))
	}
	b.WriteString("\n")
}

// writeRatings writes the rating distribution
func (f *markdownFormatter) writeRatings(b *strings.Builder, report *Report) {
	b.WriteString("## Rating Distribution\n\n")
	b.WriteString("| Rating | Count | Share |\n")
	b.WriteString("|--------|-------|-------|\n")
	for _, bucket := range report.Ratings.Buckets {
		fmt.Fprintf(b, "| %s | %d | %.1f%% |\n", bucket.Label, bucket.Count, report.Ratings.Share(bucket)*100)
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "**Mean rating:** %s over %d rated reviews\n\n", formatMean(report.Ratings), report.Ratings.Rated())
}

// writeHistogram writes the confidence histogram
func (f *markdownFormatter) writeHistogram(b *strings.Builder, report *Report) {
	b.WriteString("## Confidence Histogram\n\n")
	b.WriteString("| Confidence | Count |\n")
	b.WriteString("|------------|-------|\n")
	for _, bin := range report.Histogram.Bins {
		fmt.Fprintf(b, "| %s | %d |\n", bin.Label, bin.Count)
	}
	if report.Histogram.Dropped > 0 {
		fmt.Fprintf(b, "\n_%d reviews had a confidence outside 0-100._\n", report.Histogram.Dropped)
	}
	b.WriteString("\n")
}

// escapeMarkdownCell keeps table cells on one row
func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return singleLine(s, 0)
}
