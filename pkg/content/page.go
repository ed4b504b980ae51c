package content

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var errNoTranscriptOnPage = errors.New("no transcript markup found on page")

// transcriptContainerSelectors are tried in fixed order; the first non-empty
// match wins.
var transcriptContainerSelectors = []string{
	`div[class*="transcript"]`,
	`div[id*="transcript"]`,
	`section[class*="transcript"]`,
	`section[id*="transcript"]`,
}

// ExtractPageTranscript pulls transcript text directly out of an episode
// page's HTML.
//
// Strategies, in order (first hit wins):
//  1. JSON-LD: a <script type="application/ld+json"> block whose top-level
//     object carries a "transcript" string field. The field value is
//     returned as-is.
//  2. Container markup: the first <div> or <section> whose class or id
//     mentions "transcript". The fragment's text is returned with markup
//     stripped and entities decoded.
//
// Extraction is best-effort and platform-specific; a miss is reported as an
// error but is an expected outcome, not a fault.
func ExtractPageTranscript(html string) (string, error) {
	html = strings.TrimSpace(html)
	if html == "" {
		return "", errEmptyHTML
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", errors.Join(errFailedToParseHTML, err)
	}

	if text, ok := transcriptFromJSONLD(doc); ok {
		return text, nil
	}
	if text, ok := transcriptFromContainer(doc); ok {
		return text, nil
	}

	return "", errNoTranscriptOnPage
}

func transcriptFromJSONLD(doc *goquery.Document) (string, bool) {
	var transcript string

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var payload map[string]any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			// Malformed blocks are skipped, not fatal.
			return true
		}
		if text, ok := payload["transcript"].(string); ok && strings.TrimSpace(text) != "" {
			transcript = strings.TrimSpace(text)
			return false
		}
		return true
	})

	return transcript, transcript != ""
}

func transcriptFromContainer(doc *goquery.Document) (string, bool) {
	for _, selector := range transcriptContainerSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		// goquery's Text strips tags and decodes entities in one step.
		if text := normalizeWhitespace(sel.Text()); text != "" {
			return text, true
		}
	}
	return "", false
}

// normalizeWhitespace collapses runs of whitespace into single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
