package formatter

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// htmlFormatter renders the Markdown report as a standalone HTML page
type htmlFormatter struct {
	markdown Formatter
	md       goldmark.Markdown
}

// NewHTML creates a new HTML formatter
func NewHTML() Formatter {
	return &htmlFormatter{
		markdown: NewMarkdown(),
		md:       goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; margin-bottom: 1rem; }
th, td { border: 1px solid #d1d5db; padding: 0.3rem 0.6rem; text-align: left; }
th { background: #f3f4f6; }
</style>
</head>
<body>
`

const htmlFoot = `</body>
</html>
`

func (f *htmlFormatter) Format(report *Report) ([]byte, error) {
	source, err := f.markdown.Format(report)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := f.md.Convert(source, &body); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}

	var b bytes.Buffer
	title := "Review Authenticity Report"
	if report.Site != "" {
		title += " - " + report.Site
	}
	fmt.Fprintf(&b, htmlHead, html.EscapeString(title))
	b.Write(body.Bytes())
	b.WriteString(htmlFoot)

	return b.Bytes(), nil
}
