package domain

// Episode represents a single feed entry. One instance per entry, in feed
// order; no deduplication is attempted.
type Episode struct {
	Title string

	// Link is the canonical episode page URL.
	Link string

	// Published is the publication date exactly as the feed declares it.
	// The format is not validated.
	Published string

	// Summary is the entry's description/summary text.
	Summary string

	// AudioURL is the episode's audio resource, taken from the first
	// enclosure whose declared type begins with "audio/" (falling back to
	// the first enclosure). Empty when the entry carries no audio.
	AudioURL string
}
