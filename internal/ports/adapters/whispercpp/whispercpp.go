package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/corsacca/voice-changer/internal/types"
)

type Adapter struct {
	bin   string
	model string
}

func New(binPath, modelPath string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath}
}

func (a *Adapter) Name() string { return "whisper.cpp" }

func (a *Adapter) Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error) {
	outPrefix := filepath.Join(cacheDir, "whisper")
	args := []string{
		"-m", a.model,
		"-f", wavPath,
		"-oj",
		"-of", outPrefix,
	}
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.Transcript{}, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return types.Transcript{}, err
	}

	var raw struct {
		Segments []types.Segment `json:"segments"`
	}
	if err := json.Unmarshal(jb, &raw); err != nil {
		return types.Transcript{}, err
	}
	return fromSegments(raw.Segments), nil
}

func fromSegments(segs []types.Segment) types.Transcript {
	tr := types.Transcript{}
	var parts []string
	for _, s := range segs {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		s.Text = text
		tr.Segments = append(tr.Segments, s)
		parts = append(parts, text)
		if s.End > tr.TotalDuration {
			tr.TotalDuration = s.End
		}
	}
	tr.FullText = strings.Join(parts, " ")
	return tr
}
