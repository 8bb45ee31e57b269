// Package ingestion prepares stored job posting text for embedding and display.
package ingestion

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/job-recommender/internal/types"
)

var (
	tagPattern   = regexp.MustCompile(`<(?i:[a-z!/][^>]*)>`)
	spacePattern = regexp.MustCompile(`[ \t\f\v]+`)
)

// blockSelectors end a line when flattened to text
const blockSelectors = "p, div, li, br, tr, h1, h2, h3, h4, h5, h6, ul, ol, section, article"

// PlainText returns description as plain text. Markup is parsed and flattened with block
// elements on their own lines; text without tags only has its whitespace normalized.
func PlainText(description string) string {
	if !tagPattern.MatchString(description) {
		return CleanText(description)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return CleanText(tagPattern.ReplaceAllString(description, " "))
	}

	doc.Find("script, style, noscript, iframe").Remove()
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})

	return CleanText(doc.Text())
}

// CleanText normalizes line endings and spacing and collapses runs of blank lines to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimSpace(spacePattern.ReplaceAllString(line, " "))
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// JobEmbeddingText is the text embedded for a job posting: title, plain-text description
// and required skills.
func JobEmbeddingText(job *types.JobCandidate) string {
	clean := *job
	clean.Description = PlainText(job.Description)
	return clean.EmbeddingText()
}
