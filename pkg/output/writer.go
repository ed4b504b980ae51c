package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"podcast-transcripts/pkg/domain"
)

var headerSeparator = strings.Repeat("-", 50)

var (
	nonTitleChars = regexp.MustCompile(`[^\w\s-]`)
	separatorRuns = regexp.MustCompile(`[-\s]+`)
)

var ErrMalformedArtifact = errors.New("malformed artifact file")

// SanitizeTitle reduces an episode title to a filesystem-safe name:
// characters outside letters/digits/whitespace/hyphen are dropped, then runs
// of whitespace and hyphens collapse to single hyphens. The reduction is
// idempotent, e.g. "My Episode: Part #2!" -> "My-Episode-Part-2".
func SanitizeTitle(title string) string {
	s := nonTitleChars.ReplaceAllString(title, "")
	s = separatorRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Writer persists one text artifact per resolved episode under a directory.
// Filenames derive from sanitized titles; when two episodes in the same run
// reduce to the same name, the later one is suffixed with its feed position
// instead of silently overwriting the first.
type Writer struct {
	dir  string
	used map[string]bool
}

// NewWriter creates the output directory if absent.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{
		dir:  dir,
		used: make(map[string]bool),
	}, nil
}

// Write persists the artifact and returns the path written. position is the
// episode's 1-based position in the feed, used for the filename only when
// the title is empty or collides with an earlier episode's.
func (w *Writer) Write(artifact domain.Artifact, position int) (string, error) {
	name := SanitizeTitle(artifact.Title)
	if name == "" {
		name = fmt.Sprintf("episode-%d", position)
	} else if w.used[name] {
		name = fmt.Sprintf("%s-%d", name, position)
	}
	w.used[name] = true

	var sb strings.Builder
	sb.WriteString("Episode: " + artifact.Title + "\n")
	sb.WriteString("Date: " + artifact.Published + "\n")
	sb.WriteString("URL: " + artifact.Link + "\n")
	sb.WriteString(headerSeparator + "\n\n")
	sb.WriteString(artifact.Transcript)

	path := filepath.Join(w.dir, name+".txt")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}

	return path, nil
}

// ReadArtifact parses a file written by Write back into its fields. The
// header layout is fixed: three labelled lines, a separator line, and a
// blank line before the transcript body.
func ReadArtifact(path string) (domain.Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Artifact{}, err
	}

	lines := strings.SplitN(string(raw), "\n", 6)
	if len(lines) < 6 ||
		!strings.HasPrefix(lines[0], "Episode: ") ||
		!strings.HasPrefix(lines[1], "Date: ") ||
		!strings.HasPrefix(lines[2], "URL: ") ||
		lines[3] != headerSeparator ||
		lines[4] != "" {
		return domain.Artifact{}, ErrMalformedArtifact
	}

	return domain.Artifact{
		Title:      strings.TrimPrefix(lines[0], "Episode: "),
		Published:  strings.TrimPrefix(lines[1], "Date: "),
		Link:       strings.TrimPrefix(lines[2], "URL: "),
		Transcript: lines[5],
	}, nil
}
