package domain

// Artifact is a resolved transcript rendered to a text file: a header block
// of title/date/link followed by the transcript body.
type Artifact struct {
	Title      string
	Published  string
	Link       string
	Transcript string
}
