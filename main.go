package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"podcast-transcripts/pkg/feed"
	"podcast-transcripts/pkg/httpclient"
	"podcast-transcripts/pkg/lookup"
)

// Feed inspector: resolves an Apple Podcasts URL and prints the first few
// episodes without downloading anything. The full pipeline lives in
// cmd/podcasttranscripts.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: podcast-transcripts <apple-podcasts-url>")
	}
	podcastURL := os.Args[1]

	podcastID, ok := lookup.ExtractPodcastID(podcastURL)
	if !ok {
		log.Fatalf("Could not extract podcast ID from URL: %s", podcastURL)
	}

	ctx := context.Background()
	hc := httpclient.NewClient(httpclient.BrowserClient)

	meta, err := lookup.NewClient(hc).Lookup(ctx, podcastID)
	if err != nil {
		log.Fatalf("Lookup failed: %v", err)
	}

	fmt.Printf("Podcast: %s\n", meta.CollectionName)
	fmt.Printf("By: %s\n", meta.ArtistName)

	if meta.FeedURL == "" {
		log.Fatal("No RSS feed URL found in podcast info")
	}
	fmt.Printf("Feed: %s\n", meta.FeedURL)

	episodes, err := feed.NewReader(hc).Fetch(ctx, meta.FeedURL)
	if err != nil {
		log.Fatalf("Failed to fetch feed: %v", err)
	}

	maxEpisodes := 10
	if len(episodes) < maxEpisodes {
		maxEpisodes = len(episodes)
	}

	fmt.Printf("\nFound %d episodes. Showing first %d:\n\n", len(episodes), maxEpisodes)

	for i := 0; i < maxEpisodes; i++ {
		episode := episodes[i]
		fmt.Printf("Episode %d:\n", i+1)
		fmt.Printf("  Title: %s\n", episode.Title)
		if episode.Published != "" {
			fmt.Printf("  Published: %s\n", episode.Published)
		}
		if episode.Link != "" {
			fmt.Printf("  Link: %s\n", episode.Link)
		}
		if episode.AudioURL != "" {
			fmt.Printf("  Audio: %s\n", episode.AudioURL)
		}
		fmt.Println()
	}
}
