package podcasttranscriptservice

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"podcast-transcripts/pkg/output"
)

type recordingBackend struct {
	calls int
	text  string
	err   error
}

func (b *recordingBackend) Transcribe(_ context.Context, _ string) (string, error) {
	b.calls++
	return b.text, b.err
}

func singleEpisodeFeed(pageURL, enclosure string) string {
	audio := ""
	if enclosure != "" {
		audio = fmt.Sprintf(`<enclosure url="%s" type="audio/mpeg" length="10"/>`, enclosure)
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Test Podcast</title>
		<item>
			<title>Ep 1: Intro</title>
			<link>%s</link>
			<pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
			<description>Intro episode</description>
			%s
		</item>
	</channel>
</rss>`, pageURL, audio)
}

func TestService_Run_NoPodcastID(t *testing.T) {
	service := New(Config{OutputDir: t.TempDir()})

	if _, err := service.Run(context.Background(), "https://example.com/podcast/no-identifier"); err != ErrNoPodcastID {
		t.Fatalf("Run error = %v, want ErrNoPodcastID", err)
	}
}

func TestService_RunFeed_PageTranscript(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/ep1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="transcript">Hello World</div></body></html>`))
	})
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(singleEpisodeFeed(server.URL+"/ep1", "")))
	})

	outDir := t.TempDir()
	backend := &recordingBackend{text: "should not be used"}
	service := New(Config{
		OutputDir:    outDir,
		EpisodeDelay: time.Millisecond,
		Transcriber:  backend,
	})

	summary, err := service.RunFeed(context.Background(), server.URL+"/feed.xml")
	if err != nil {
		t.Fatalf("RunFeed returned error: %v", err)
	}
	if summary.Succeeded != 1 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 1 success, 0 failures", summary)
	}
	if backend.calls != 0 {
		t.Errorf("audio transcription invoked %d times despite page transcript", backend.calls)
	}

	artifact, err := output.ReadArtifact(filepath.Join(outDir, "Ep-1-Intro.txt"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if artifact.Title != "Ep 1: Intro" {
		t.Errorf("artifact title = %q, want %q", artifact.Title, "Ep 1: Intro")
	}
	if artifact.Link != server.URL+"/ep1" {
		t.Errorf("artifact link = %q, want %q", artifact.Link, server.URL+"/ep1")
	}
	if artifact.Transcript != "Hello World" {
		t.Errorf("artifact body = %q, want %q", artifact.Transcript, "Hello World")
	}
}

func TestService_RunFeed_DocumentTranscript(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/ep1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
<p><a href="/uploads/ep1.txt">Click here for this episode's transcript.</a></p>
</body></html>`))
	})
	mux.HandleFunc("/uploads/ep1.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("Transcript from linked document"))
	})
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(singleEpisodeFeed(server.URL+"/ep1", "")))
	})

	outDir := t.TempDir()
	service := New(Config{OutputDir: outDir, EpisodeDelay: time.Millisecond})

	summary, err := service.RunFeed(context.Background(), server.URL+"/feed.xml")
	if err != nil {
		t.Fatalf("RunFeed returned error: %v", err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("summary = %+v, want 1 success", summary)
	}

	artifact, err := output.ReadArtifact(filepath.Join(outDir, "Ep-1-Intro.txt"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if artifact.Transcript != "Transcript from linked document" {
		t.Errorf("artifact body = %q, want the linked document text", artifact.Transcript)
	}
}

func TestService_RunFeed_AudioFallback(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/ep1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Show notes only.</p></body></html>`))
	})
	mux.HandleFunc("/ep1.mp3", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("fake audio bytes"))
	})
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(singleEpisodeFeed(server.URL+"/ep1", server.URL+"/ep1.mp3")))
	})

	outDir := t.TempDir()
	backend := &recordingBackend{text: "recognized speech"}
	service := New(Config{
		OutputDir:    outDir,
		EpisodeDelay: time.Millisecond,
		Transcriber:  backend,
	})

	summary, err := service.RunFeed(context.Background(), server.URL+"/feed.xml")
	if err != nil {
		t.Fatalf("RunFeed returned error: %v", err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("summary = %+v, want 1 success", summary)
	}
	if backend.calls != 1 {
		t.Errorf("transcription invoked %d times, want 1", backend.calls)
	}

	artifact, err := output.ReadArtifact(filepath.Join(outDir, "Ep-1-Intro.txt"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if artifact.Transcript != "recognized speech" {
		t.Errorf("artifact body = %q, want the recognized text", artifact.Transcript)
	}
}

func TestService_RunFeed_NoTranscriptNoAudio(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/ep1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Nothing useful.</p></body></html>`))
	})
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(singleEpisodeFeed(server.URL+"/ep1", "")))
	})

	backend := &recordingBackend{text: "unreachable"}
	service := New(Config{
		OutputDir:    t.TempDir(),
		EpisodeDelay: time.Millisecond,
		Transcriber:  backend,
	})

	summary, err := service.RunFeed(context.Background(), server.URL+"/feed.xml")
	if err != nil {
		t.Fatalf("RunFeed returned error: %v", err)
	}
	if summary.Succeeded != 0 || summary.Failed != 1 {
		t.Fatalf("summary = %+v, want 0 successes, 1 failure", summary)
	}
	if backend.calls != 0 {
		t.Errorf("transcription must not run without an audio URL, got %d calls", backend.calls)
	}
}

func TestService_RunFeed_EmptyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Empty</title></channel></rss>`))
	}))
	defer server.Close()

	service := New(Config{OutputDir: t.TempDir(), EpisodeDelay: time.Millisecond})

	summary, err := service.RunFeed(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("empty feed should not fail the run, got: %v", err)
	}
	if summary.Succeeded != 0 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want zero tallies", summary)
	}
}

func TestService_RunFeed_FeedFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := New(Config{OutputDir: t.TempDir()})

	if _, err := service.RunFeed(context.Background(), server.URL); err == nil {
		t.Fatal("feed fetch failure should abort the run with an error")
	}
}
