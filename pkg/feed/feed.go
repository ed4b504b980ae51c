package feed

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"podcast-transcripts/pkg/domain"
	"podcast-transcripts/pkg/httpclient"
)

// Reader fetches and parses podcast RSS/Atom feeds into episode records.
type Reader struct {
	http       *httpclient.HTTPClient
	feedParser *gofeed.Parser
}

// NewReader creates a feed reader. A nil http client falls back to the
// shared browser profile.
func NewReader(hc *httpclient.HTTPClient) *Reader {
	if hc == nil {
		hc = httpclient.NewClient(httpclient.BrowserClient)
	}
	return &Reader{
		http:       hc,
		feedParser: gofeed.NewParser(),
	}
}

// Fetch downloads the feed and returns its episodes in feed order.
//
// A feed with zero entries is not an error: a diagnostic is logged and an
// empty slice is returned so the caller can treat "no episodes" as a normal,
// if unproductive, run. A non-200 response is an error carrying the status
// code and a short body snippet.
func (r *Reader) Fetch(ctx context.Context, feedURL string) ([]domain.Episode, error) {
	resp, err := r.http.GetContext(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return nil, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	parsed, err := r.feedParser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	if len(parsed.Items) == 0 {
		log.Printf("Feed %q has no entries (link=%q, description=%q)",
			parsed.Title, parsed.Link, truncate(parsed.Description, 100))
		return []domain.Episode{}, nil
	}

	episodes := make([]domain.Episode, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		episodes = append(episodes, domain.Episode{
			Title:     item.Title,
			Link:      item.Link,
			Published: item.Published,
			Summary:   item.Description,
			AudioURL:  audioURL(item),
		})
	}

	return episodes, nil
}

// audioURL picks the audio resource for a feed item: the first enclosure
// whose declared type begins with "audio/", falling back to the first
// enclosure with a URL at all.
func audioURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(enc.Type), "audio/") {
			return enc.URL
		}
	}
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
