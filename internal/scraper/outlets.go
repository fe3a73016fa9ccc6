package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseOutletList extracts the outlet names from the winning-outlets
// container HTML. The list is anchored at the label's nearest ancestor
// paragraph: the first list following that paragraph holds the outlets.
// Returns an empty list when the label or list is absent.
func ParseOutletList(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing outlet container: %w", err)
	}

	matches := doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == OutletLabelText
	})
	if matches.Length() == 0 {
		return nil, nil
	}
	// Ancestors of the label match too; the deepest match comes last.
	label := matches.Last()

	anchor := label.Closest("p")
	if anchor.Length() == 0 {
		anchor = label
	}

	list := anchor.NextAllFiltered("ul, ol").First()
	if list.Length() == 0 {
		list = anchor.Next().Find("ul, ol").First()
	}

	var outlets []string
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		if t := strings.TrimSpace(li.Text()); t != "" {
			outlets = append(outlets, t)
		}
	})
	return outlets, nil
}
