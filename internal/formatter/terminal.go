package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/ReviewRadar/internal/emoji"
	"github.com/yildizm/go-termfmt"
)

// maxCardText bounds the review body shown per card
const maxCardText = 120

// barWidth is the width of distribution bars
const barWidth = 20

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeSummary(&b, report)

	if len(report.Reviews) > 0 {
		f.writeReviews(&b, report)
		f.writeRatings(&b, report)
		f.writeHistogram(&b, report)
	} else {
		b.WriteString("No reviews returned.\n")
	}

	return []byte(b.String()), nil
}

// writeHeader writes the boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Review Authenticity Report"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeSummary writes the source and verdict counts as a tree
func (f *terminalFormatter) writeSummary(b *strings.Builder, report *Report) {
	b.WriteString(termfmt.GetEmoji("statistics", f.opts) + " Summary\n")

	total := len(report.Reviews)
	fake := report.FakeCount()

	items := []termfmt.TreeItem{
		{Label: "Source", Value: singleLine(report.Source, 80)},
	}
	if report.Site != "" {
		items = append(items, termfmt.TreeItem{Label: "Site", Value: report.Site})
	}
	items = append(items,
		termfmt.TreeItem{Label: "Mode", Value: report.Mode},
		termfmt.TreeItem{Label: "Threshold", Value: report.Threshold},
		termfmt.TreeItem{Label: "Reviews", Value: formatNumber(total)},
		termfmt.TreeItem{Label: "Real", Value: fmt.Sprintf("%d (%.1f%%)", total-fake, percent(total-fake, total))},
		termfmt.TreeItem{Label: "Fake", Value: fmt.Sprintf("%d (%.1f%%)", fake, percent(fake, total))},
		termfmt.TreeItem{Label: "Mean Rating", Value: formatMean(report.Ratings), Last: true},
	)

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeReviews writes one card per review
func (f *terminalFormatter) writeReviews(b *strings.Builder, report *Report) {
	b.WriteString(termfmt.GetEmoji("insights", f.opts) + " Reviews\n")

	items := make([]termfmt.TreeItem, 0, len(report.Reviews))
	for i, r := range report.Reviews {
		confidenceBar := termfmt.CreateConfidenceBar(r.Confidence/100, f.opts)
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%s #%d %s", emoji.Verdict(r.Label), i+1, r.Verdict()),
			Value: fmt.Sprintf("(%.1f%% confidence, %s)", r.Confidence, r.Rating),
			Children: []termfmt.TreeItem{
				{Label: confidenceBar + " " + singleLine(r.Text, maxCardText), Value: ""},
			},
			Last: i == len(report.Reviews)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeRatings writes the rating distribution
func (f *terminalFormatter) writeRatings(b *strings.Builder, report *Report) {
	fmt.Fprintf(b, "%s Rating Distribution (mean %s, %d rated)\n", emoji.GetEmoji("star"), formatMean(report.Ratings), report.Ratings.Rated())

	for i, bucket := range report.Ratings.Buckets {
		prefix := "├─"
		if i == len(report.Ratings.Buckets)-1 && report.Ratings.Unparsed == 0 {
			prefix = "└─"
		}
		fmt.Fprintf(b, "%s %-4s %s %d\n", prefix, bucket.Label, bar(bucket.Count, report.Ratings.Total, barWidth), bucket.Count)
	}
	if report.Ratings.Unparsed > 0 {
		fmt.Fprintf(b, "└─ %d without a rating\n", report.Ratings.Unparsed)
	}
	b.WriteString("\n")
}

// writeHistogram writes the confidence histogram
func (f *terminalFormatter) writeHistogram(b *strings.Builder, report *Report) {
	fmt.Fprintf(b, "%s Confidence Histogram\n", emoji.GetEmoji("chart"))

	hist := report.Histogram
	for i, bin := range hist.Bins {
		prefix := "├─"
		if i == len(hist.Bins)-1 && hist.Dropped == 0 {
			prefix = "└─"
		}
		fmt.Fprintf(b, "%s %-7s %s %d\n", prefix, bin.Label, bar(bin.Count, hist.MaxCount(), barWidth), bin.Count)
	}
	if hist.Dropped > 0 {
		fmt.Fprintf(b, "└─ %d outside 0-100\n", hist.Dropped)
	}
}
