package podcasttranscriptservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"podcast-transcripts/pkg/content"
	"podcast-transcripts/pkg/db"
	"podcast-transcripts/pkg/domain"
	"podcast-transcripts/pkg/download"
	"podcast-transcripts/pkg/feed"
	"podcast-transcripts/pkg/httpclient"
	"podcast-transcripts/pkg/lookup"
	"podcast-transcripts/pkg/output"
	"podcast-transcripts/pkg/transcribe"
)

// Pipeline-abort conditions. Any of these ends the run before per-episode
// processing starts; they are reported as diagnostics, never panics.
var (
	ErrNoPodcastID = errors.New("could not extract podcast id from URL")
	ErrNoFeedURL   = errors.New("no RSS feed URL found in podcast info")
)

var (
	errNoTranscriptFound      = errors.New("no transcript found by any method")
	errTranscriberUnavailable = errors.New("audio transcription unavailable")
	errUnsupportedTranscript  = errors.New("unsupported transcript document type")
)

// Config holds the per-run configuration for the pipeline. The zero value
// is usable: output goes to "transcripts", episodes are paced one second
// apart, and there is no audio fallback or archival.
type Config struct {
	// OutputDir receives one text artifact per resolved episode.
	OutputDir string

	// EpisodeDelay is the fixed pause between episodes.
	EpisodeDelay time.Duration

	// Transcriber enables the audio transcription fallback when non-nil.
	// Resolved once at startup (see transcribe.Available).
	Transcriber transcribe.Backend

	// DB enables MongoDB archival of resolved transcripts when non-nil.
	DB *db.Client
}

// Summary tallies one pipeline run.
type Summary struct {
	Succeeded int
	Failed    int
}

// Service drives the transcript pipeline: directory lookup, feed fetch,
// then a strictly sequential per-episode loop of transcript resolution and
// artifact output. One episode is fully processed before the next begins.
type Service struct {
	http        *httpclient.HTTPClient
	lookup      *lookup.Client
	feed        *feed.Reader
	downloader  *download.Downloader
	transcriber transcribe.Backend
	db          *db.Client
	outputDir   string
	delay       time.Duration
}

// New creates a pipeline service from the given configuration.
func New(cfg Config) *Service {
	hc := httpclient.NewClient(httpclient.BrowserClient)

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "transcripts"
	}
	delay := cfg.EpisodeDelay
	if delay <= 0 {
		delay = time.Second
	}

	return &Service{
		http:        hc,
		lookup:      lookup.NewClient(hc),
		feed:        feed.NewReader(hc),
		downloader:  download.NewDownloader(""),
		transcriber: cfg.Transcriber,
		db:          cfg.DB,
		outputDir:   outputDir,
		delay:       delay,
	}
}

// Run resolves an Apple Podcasts directory URL end to end: identifier
// extraction, catalog lookup, then RunFeed over the podcast's RSS feed.
func (s *Service) Run(ctx context.Context, podcastURL string) (Summary, error) {
	podcastID, ok := lookup.ExtractPodcastID(podcastURL)
	if !ok {
		return Summary{}, ErrNoPodcastID
	}

	meta, err := s.lookup.Lookup(ctx, podcastID)
	if err != nil {
		return Summary{}, fmt.Errorf("podcast lookup: %w", err)
	}

	log.Printf("Podcast: %s", meta.CollectionName)
	log.Printf("By: %s", meta.ArtistName)

	if meta.FeedURL == "" {
		return Summary{}, ErrNoFeedURL
	}

	return s.RunFeed(ctx, meta.FeedURL)
}

// RunFeed processes every episode of the given feed in feed order, pausing
// a fixed interval between episodes. Per-episode failures are counted and
// logged; only feed-level problems return an error.
func (s *Service) RunFeed(ctx context.Context, feedURL string) (Summary, error) {
	log.Printf("Fetching RSS feed: %s", feedURL)

	episodes, err := s.feed.Fetch(ctx, feedURL)
	if err != nil {
		return Summary{}, err
	}
	log.Printf("Found %d episodes", len(episodes))

	writer, err := output.NewWriter(s.outputDir)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for i, episode := range episodes {
		log.Printf("Processing episode %d/%d: %s", i+1, len(episodes), episode.Title)

		if err := s.processEpisode(ctx, writer, episode, i+1); err != nil {
			log.Printf("No transcript available for %q: %v", episode.Title, err)
			summary.Failed++
		} else {
			summary.Succeeded++
		}

		// Be respectful with requests.
		if i < len(episodes)-1 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}

	log.Printf("Download complete! Successful: %d, Failed: %d", summary.Succeeded, summary.Failed)
	return summary, nil
}

// processEpisode resolves one episode's transcript and persists it. position
// is the episode's 1-based position in the feed, used only for filename
// disambiguation.
func (s *Service) processEpisode(ctx context.Context, writer *output.Writer, episode domain.Episode, position int) error {
	var pageHTML string
	if episode.Link != "" {
		html, err := s.fetchPage(ctx, episode.Link)
		if err != nil {
			log.Printf("Fetch episode page %s: %v", episode.Link, err)
		} else {
			pageHTML = html
		}
	}

	text, source, err := s.resolveTranscript(ctx, episode, pageHTML)
	if err != nil {
		return err
	}

	artifactPath, err := writer.Write(domain.Artifact{
		Title:      episode.Title,
		Published:  episode.Published,
		Link:       episode.Link,
		Transcript: text,
	}, position)
	if err != nil {
		return err
	}
	log.Printf("Downloaded: %s", filepath.Base(artifactPath))

	if s.db != nil {
		s.archive(ctx, episode, pageHTML, text, source)
	}

	return nil
}

// resolveTranscript tries, in order: transcript markup on the episode page,
// a transcript document linked from the page, and speech-to-text over the
// episode audio. First hit wins; audio transcription is never attempted
// once a page- or document-based transcript is found.
func (s *Service) resolveTranscript(ctx context.Context, episode domain.Episode, pageHTML string) (string, string, error) {
	if pageHTML != "" {
		if text, err := content.ExtractPageTranscript(pageHTML); err == nil {
			return text, domain.SourcePage, nil
		}

		if docURL, err := content.FindTranscriptURL(pageHTML); err == nil {
			if resolved, err := resolveAgainst(episode.Link, docURL); err == nil {
				text, err := s.fetchTranscriptDocument(ctx, resolved)
				if err == nil {
					return text, domain.SourceDocument, nil
				}
				log.Printf("Transcript document %s: %v", resolved, err)
			}
		}
	}

	if episode.AudioURL == "" {
		return "", "", errNoTranscriptFound
	}
	if s.transcriber == nil {
		return "", "", errTranscriberUnavailable
	}

	text, err := s.transcribeAudio(ctx, episode.AudioURL)
	if err != nil {
		return "", "", err
	}
	return text, domain.SourceAudio, nil
}

// transcribeAudio downloads the episode audio to a temp file and runs the
// speech-to-text backend over it. The temp file is removed on every exit
// path.
func (s *Service) transcribeAudio(ctx context.Context, audioURL string) (string, error) {
	audioPath, err := s.downloader.FetchAudio(ctx, audioURL)
	if err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}
	defer os.Remove(audioPath)

	text, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	return text, nil
}

// archive upserts the resolved transcript into MongoDB. Best-effort: the
// artifact on disk is the source of truth, so failures are only logged.
func (s *Service) archive(ctx context.Context, episode domain.Episode, pageHTML, transcript, source string) {
	doc := &domain.PodcastTranscript{
		URL:        episode.Link,
		Title:      strings.TrimSpace(episode.Title),
		Transcript: strings.TrimSpace(transcript),
		Source:     source,
		CrawledAt:  time.Now(),
	}

	if pageHTML != "" {
		if pageText, err := content.ExtractPageText(pageHTML); err == nil {
			doc.PageContent = pageText
		}
		if doc.Title == "" {
			if title, err := content.ExtractPageTitle(pageHTML); err == nil {
				doc.Title = title
			}
		}
	}

	if err := s.db.SavePodcastTranscript(ctx, doc); err != nil {
		log.Printf("Archive failed for %q: %v", episode.Title, err)
	}
}

func (s *Service) fetchPage(ctx context.Context, pageURL string) (string, error) {
	body, _, err := s.fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// fetchTranscriptDocument downloads a linked transcript file and extracts
// its text, deciding by file extension first and content type second.
func (s *Service) fetchTranscriptDocument(ctx context.Context, docURL string) (string, error) {
	body, contentType, err := s.fetch(ctx, docURL)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(path.Ext(urlPath(docURL))) {
	case ".txt":
		return string(body), nil
	case ".pdf":
		return content.ExtractTextFromPDF(body)
	}

	lct := strings.ToLower(contentType)
	switch {
	case strings.Contains(lct, "text/plain"):
		return string(body), nil
	case strings.Contains(lct, "application/pdf"):
		return content.ExtractTextFromPDF(body)
	default:
		return "", errUnsupportedTranscript
	}
}

func (s *Service) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	resp, err := s.http.GetContext(ctx, rawURL)
	if err != nil {
		return nil, "", err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	return body, resp.Header.Get("Content-Type"), nil
}

func resolveAgainst(baseURL, ref string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Path
}

func drainAndClose(rc io.ReadCloser) {
	if rc == nil {
		return
	}
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}
