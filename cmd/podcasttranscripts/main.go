package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"podcast-transcripts/pkg/db"
	"podcast-transcripts/pkg/podcasttranscriptservice"
	"podcast-transcripts/pkg/transcribe"
)

func main() {
	var (
		podcastURL = flag.String("url", "", "Apple Podcasts URL (prompted for when empty)")
		outputDir  = flag.String("out", "transcripts", "Directory for transcript files")
		model      = flag.String("model", transcribe.DefaultModel, "Whisper model tier for the audio fallback")
		delay      = flag.Duration("delay", time.Second, "Pause between episodes")

		mongoURI   = flag.String("mongo-uri", "", "Optional MongoDB connection string for transcript archival")
		dbName     = flag.String("db", "podcasts", "MongoDB database name")
		collection = flag.String("collection", "transcripts", "MongoDB collection name")
	)
	flag.Parse()

	ctx := context.Background()

	url := strings.TrimSpace(*podcastURL)
	interactive := url == ""
	if interactive {
		url = prompt("Enter Apple Podcasts URL: ")
	}
	if url == "" {
		log.Fatal("Please provide a valid Apple Podcasts URL")
	}

	cfg := podcasttranscriptservice.Config{
		OutputDir:    *outputDir,
		EpisodeDelay: *delay,
	}

	if interactive {
		if dir := prompt("Enter output directory (default: transcripts): "); dir != "" {
			cfg.OutputDir = dir
		}
	}

	if transcribe.Available() {
		backend, err := transcribe.NewWhisperBackend(*model)
		if err != nil {
			log.Printf("Whisper unavailable, audio fallback disabled: %v", err)
		} else {
			cfg.Transcriber = backend
		}
	} else {
		log.Printf("whisper not found on PATH; audio transcription fallback disabled (install with: pip install openai-whisper)")
	}

	if *mongoURI != "" {
		dbClient := db.NewClient(*mongoURI, *dbName, *collection)
		if err := dbClient.Connect(ctx); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbClient.Close(ctx)
		cfg.DB = dbClient
	}

	service := podcasttranscriptservice.New(cfg)

	start := time.Now()
	summary, err := service.Run(ctx, url)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}
	log.Printf("Done. Successful: %d, Failed: %d. Duration: %s", summary.Succeeded, summary.Failed, time.Since(start))
}

func prompt(label string) string {
	fmt.Print(label)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}
