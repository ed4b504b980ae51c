package content

import (
	"errors"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	errEmptyHTML         = errors.New("empty HTML content")
	errNoTranscriptLink  = errors.New("no transcript link found in HTML")
	errFailedToParseHTML = errors.New("failed to parse HTML")
)

// FindTranscriptURL locates a transcript document link (.pdf/.txt) in the
// HTML of a podcast episode page. It is the second resolution strategy,
// tried when ExtractPageTranscript finds no inline transcript markup.
//
// All <a href> elements are collected and ranked:
//  1. Anchor text mentions "transcript" and href looks like a document (.pdf/.txt)
//  2. href looks like a document (.pdf/.txt)
//  3. Anchor text mentions "transcript"
//
// The best-matching href is returned as written in the page; the caller
// resolves relative URLs against the episode URL.
func FindTranscriptURL(html string) (string, error) {
	html = strings.TrimSpace(html)
	if html == "" {
		return "", errEmptyHTML
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", errors.Join(errFailedToParseHTML, err)
	}

	// Candidates per rank; within a rank, document order wins.
	var high, medium, low []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		docLike := isTranscriptDocumentHref(href)
		textLike := anchorMentionsTranscript(sel.Text())

		switch {
		case docLike && textLike:
			high = append(high, href)
		case docLike:
			medium = append(medium, href)
		case textLike:
			low = append(low, href)
		}
	})

	switch {
	case len(high) > 0:
		return high[0], nil
	case len(medium) > 0:
		return medium[0], nil
	case len(low) > 0:
		return low[0], nil
	default:
		return "", errNoTranscriptLink
	}
}

// isTranscriptDocumentHref reports whether the href points at a document we
// know how to extract text from (.pdf or .txt).
func isTranscriptDocumentHref(href string) bool {
	parsed, err := url.Parse(href)
	if err != nil {
		// Unparseable URL: fall back to a plain suffix check.
		return hasTranscriptFileExtension(href)
	}
	return hasTranscriptFileExtension(parsed.Path)
}

func hasTranscriptFileExtension(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".pdf", ".txt":
		return true
	default:
		return false
	}
}

func anchorMentionsTranscript(text string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(text)), "transcript")
}
