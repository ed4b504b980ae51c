package domain

// PodcastMetadata is the subset of an iTunes lookup result the pipeline
// consumes. Obtained once per run and immutable thereafter.
type PodcastMetadata struct {
	// CollectionName is the podcast title as listed in the directory.
	CollectionName string

	// ArtistName is the publisher name.
	ArtistName string

	// FeedURL is the podcast's RSS feed address. May be empty when the
	// directory entry does not expose a feed.
	FeedURL string
}
