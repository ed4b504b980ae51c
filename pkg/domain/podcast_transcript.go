package domain

import "time"

// Transcript sources, recorded so archived documents say how the text was
// obtained.
const (
	SourcePage     = "page"     // scraped from episode page markup
	SourceDocument = "document" // fetched from a linked transcript file (.pdf/.txt)
	SourceAudio    = "audio"    // speech-to-text over the episode audio
)

// PodcastTranscript is the archival form of a resolved episode transcript,
// persisted to MongoDB when archival is enabled.
type PodcastTranscript struct {
	// URL is the canonical URL of the podcast episode page.
	URL string `bson:"url" json:"url"`

	// Title is the episode title, when available.
	Title string `bson:"title" json:"title"`

	// PageContent is the extracted plain text content of the episode page.
	PageContent string `bson:"page_content,omitempty" json:"page_content,omitempty"`

	// Transcript is the resolved transcript plain text.
	Transcript string `bson:"transcript" json:"transcript"`

	// Source says how the transcript was obtained (SourcePage,
	// SourceDocument or SourceAudio).
	Source string `bson:"source" json:"source"`

	// CrawledAt is when we fetched and processed this episode.
	CrawledAt time.Time `bson:"crawled_at" json:"crawled_at"`
}
