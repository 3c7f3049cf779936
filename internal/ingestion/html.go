package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentSelectors are tried in order to find the passage container of an HTML source
var contentSelectors = []string{
	"main",
	"article",
	".content",
	"#content",
	".mw-parser-output",
}

// HTMLToText extracts passage text from an HTML document. Each block element becomes its
// own paragraph and <br> becomes a line break, so verse layout survives.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &Error{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("nav, footer, header, script, style, noscript, sup.reference, .mw-editsection, .navbox, .sidebar").Remove()
	doc.Find("br").ReplaceWithHtml("\n")

	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	var blocks []string
	main.Find("p, blockquote, pre, li, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		// nested blocks are picked up on their own
		if s.Find("p, blockquote, pre, li").Length() > 0 {
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		text := strings.TrimSpace(main.Text())
		if text == "" {
			return "", fmt.Errorf("no text content in HTML document")
		}
		return Normalize(text), nil
	}

	return Normalize(strings.Join(blocks, "\n\n")), nil
}
