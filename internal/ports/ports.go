package ports

import (
	"context"
	"time"

	"github.com/corsacca/voice-changer/internal/types"
)

type VideoTool interface {
	ExtractAudioMono16k(ctx context.Context, inVideo, outWav string) error
	ProbeDuration(ctx context.Context, path string) (time.Duration, error)
	ProbeVideoInfo(ctx context.Context, path string) (VideoInfo, error)
	Mux(ctx context.Context, job MuxJob) error
}

// VideoInfo describes the primary video stream; used for run logging only.
type VideoInfo struct {
	FPS     float64
	Width   int
	Height  int
	Codec   string
	Profile string
}

// MuxJob holds everything the final combine step needs. Scale is the
// timestamp multiplier applied to the video input (1.0 = untouched),
// pads are silence inserted around the narration, Target is the exact
// duration the combined output should run.
type MuxJob struct {
	VideoPath string
	AudioPath string
	OutPath   string

	Scale   float64
	LeadPad time.Duration
	TailPad time.Duration
	Target  time.Duration

	// AudioDuration is the measured narration length, used to decide
	// between padding and trimming on the passthrough path.
	AudioDuration time.Duration

	// Passthrough skips re-encoding the video stream entirely.
	Passthrough bool
}

// TranscriptSource produces a transcript for an extracted audio track.
// Implementations may shell out to a local engine, call a hosted API, or
// prompt the operator; the driver picks one and falls back to manual
// entry when it fails.
type TranscriptSource interface {
	Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error)
	Name() string
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID, outPath string) error
	Voices(ctx context.Context) ([]types.Voice, error)
}
