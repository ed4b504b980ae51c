package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"

	"podcast-transcripts/pkg/domain"
	"podcast-transcripts/pkg/httpclient"
)

const defaultEndpoint = "https://itunes.apple.com/lookup"

// Apple Podcasts URL format: https://podcasts.apple.com/us/podcast/name/id123456789
var podcastIDPattern = regexp.MustCompile(`/id(\d+)`)

var (
	ErrNotFound = errors.New("podcast not found in lookup response")
)

// ExtractPodcastID pulls the numeric podcast identifier out of an Apple
// Podcasts directory URL. Returns false when the URL carries no /id<digits>
// segment. No side effects.
func ExtractPodcastID(rawURL string) (string, bool) {
	match := podcastIDPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// Client resolves podcast identifiers to feed metadata via the iTunes lookup API.
type Client struct {
	http     *httpclient.HTTPClient
	endpoint string
}

// NewClient creates a lookup client. A nil http client falls back to the
// shared browser profile.
func NewClient(hc *httpclient.HTTPClient) *Client {
	if hc == nil {
		hc = httpclient.NewClient(httpclient.BrowserClient)
	}
	return &Client{
		http:     hc,
		endpoint: defaultEndpoint,
	}
}

type lookupResponse struct {
	ResultCount int              `json:"resultCount"`
	Results     []map[string]any `json:"results"`
}

// Lookup fetches podcast metadata for the given numeric identifier. A lookup
// that succeeds but matches nothing returns ErrNotFound; transport errors and
// malformed JSON surface as wrapped errors. The caller treats any error as an
// absent result and halts the run.
func (c *Client) Lookup(ctx context.Context, podcastID string) (*domain.PodcastMetadata, error) {
	query := url.Values{}
	query.Set("id", podcastID)
	query.Set("entity", "podcast")

	resp, err := c.http.GetContext(ctx, c.endpoint+"?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("lookup request: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup returned status %d", resp.StatusCode)
	}

	var parsed lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}

	if parsed.ResultCount <= 0 || len(parsed.Results) == 0 {
		return nil, ErrNotFound
	}

	first := parsed.Results[0]
	return &domain.PodcastMetadata{
		CollectionName: stringField(first, "collectionName"),
		ArtistName:     stringField(first, "artistName"),
		FeedURL:        stringField(first, "feedUrl"),
	}, nil
}

func stringField(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func drainAndClose(rc io.ReadCloser) {
	if rc == nil {
		return
	}
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}
