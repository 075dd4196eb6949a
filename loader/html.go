package loader

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText flattens a manifesto HTML fragment into paragraphs of text.
// Input that is not HTML comes back trimmed.
func PlainText(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" || !strings.Contains(fragment, "<") {
		return fragment
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var paras []string
	doc.Find("p, li, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		// Skip containers whose text is picked up through a nested match.
		if s.Find("p, li").Length() > 0 {
			return
		}
		text := collapseSpace(s.Text())
		if text == "" {
			return
		}
		if goquery.NodeName(s) == "li" {
			text = "• " + text
		}
		paras = append(paras, text)
	})

	if len(paras) == 0 {
		return collapseSpace(doc.Text())
	}
	return strings.Join(paras, "\n\n")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
