package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultModel is the whisper model tier used when none is configured.
const DefaultModel = "base"

var (
	ErrWhisperNotInstalled = errors.New("whisper executable not found (install with: pip install openai-whisper)")
	ErrEmptyTranscription  = errors.New("speech-to-text produced no text")
)

// Available reports whether the whisper executable can be found on PATH.
func Available() bool {
	_, err := exec.LookPath("whisper")
	return err == nil
}

// WhisperBackend shells out to the openai-whisper CLI. The executable is
// located once at construction and reused for every episode in the run.
type WhisperBackend struct {
	binary string
	model  string
}

// NewWhisperBackend locates the whisper executable and fixes the model tier.
// Returns ErrWhisperNotInstalled when the binary is not on PATH.
func NewWhisperBackend(model string) (*WhisperBackend, error) {
	if model == "" {
		model = DefaultModel
	}

	binary, err := exec.LookPath("whisper")
	if err != nil {
		return nil, ErrWhisperNotInstalled
	}

	return &WhisperBackend{binary: binary, model: model}, nil
}

// Transcribe runs whisper over the audio file and returns the recognized
// text. Whisper writes its .txt output next to the audio file; that file is
// read back and removed before returning.
func (w *WhisperBackend) Transcribe(ctx context.Context, audioPath string) (string, error) {
	outDir := filepath.Dir(audioPath)

	cmd := exec.CommandContext(ctx, w.binary, audioPath,
		"--model", w.model,
		"--output_format", "txt",
		"--output_dir", outDir,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("whisper failed: %v: %s", err, firstLines(string(out), 3))
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	txtPath := filepath.Join(outDir, base+".txt")
	defer os.Remove(txtPath)

	raw, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", ErrEmptyTranscription
	}
	return text, nil
}

// firstLines keeps diagnostics short when whisper dumps a long traceback.
func firstLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, " | ")
}
