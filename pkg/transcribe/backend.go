package transcribe

import "context"

// Backend is a pluggable speech-to-text backend.
type Backend interface {
	// Transcribe runs speech-to-text over a local audio file and returns
	// the recognized text.
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
