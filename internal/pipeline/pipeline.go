package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/corsacca/voice-changer/internal/domain/reconcile"
	"github.com/corsacca/voice-changer/internal/ports"
	"github.com/corsacca/voice-changer/internal/ports/adapters/elevenlabs"
	"github.com/corsacca/voice-changer/internal/ports/adapters/ffmpeg"
	"github.com/corsacca/voice-changer/internal/ports/adapters/manual"
	"github.com/corsacca/voice-changer/internal/ports/adapters/openaiasr"
	"github.com/corsacca/voice-changer/internal/ports/adapters/whispercpp"
	"github.com/corsacca/voice-changer/internal/usecase"
)

// DefaultVoiceID is the provider's "Mark" voice.
const DefaultVoiceID = "UgBBYS2sOqTuMpoF3BR0"

type Config struct {
	InputVideo string
	// OutputPath defaults to <input stem>_voice_changed.mp4 beside the
	// input when empty.
	OutputPath string
	VoiceID    string

	MaxSpeedRatio  float64
	SpeedupCeiling float64
	AdjustVideo    bool

	Logf func(format string, args ...any)

	FFmpegPath  string
	FFprobePath string

	WhisperBin   string
	WhisperModel string
	OpenAIAPIKey string

	ElevenLabsAPIKey       string
	ElevenLabsBaseURL      string
	ElevenLabsAllowedHosts []string

	// ManualIn/ManualOut drive the manual transcript prompt; they default
	// to stdin/stderr.
	ManualIn  io.Reader
	ManualOut io.Writer
}

func (c Config) Validate() error {
	if c.InputVideo == "" {
		return errors.New("input is empty")
	}
	if err := usecase.ValidateInput(c.InputVideo); err != nil {
		return err
	}
	if c.ElevenLabsAPIKey == "" {
		return errors.New("synthesis API key is required: add ELEVEN_LABS_KEY to your .env file or pass --api-key")
	}
	if c.MaxSpeedRatio <= 1 {
		return fmt.Errorf("max speed ratio must be > 1, got %v", c.MaxSpeedRatio)
	}
	return elevenlabs.ValidateBaseURL(c.ElevenLabsBaseURL, c.ElevenLabsAllowedHosts)
}

func Run(ctx context.Context, cfg Config) error {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	// adapters
	v := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	synth := elevenlabs.New(cfg.ElevenLabsAPIKey, cfg.ElevenLabsBaseURL)

	manualIn := cfg.ManualIn
	if manualIn == nil {
		manualIn = os.Stdin
	}
	manualOut := cfg.ManualOut
	if manualOut == nil {
		manualOut = os.Stderr
	}
	fallback := manual.New(manualIn, manualOut)

	deps := usecase.Deps{
		Video: v,
		Synth: synth,
	}
	switch {
	case cfg.WhisperBin != "" && cfg.WhisperModel != "":
		deps.Transcriber = whispercpp.New(cfg.WhisperBin, cfg.WhisperModel)
		deps.Fallback = fallback
	case cfg.OpenAIAPIKey != "":
		deps.Transcriber = openaiasr.New(cfg.OpenAIAPIKey)
		deps.Fallback = fallback
	default:
		logf("no transcription engine configured, using manual entry")
		deps.Transcriber = fallback
	}

	uc := usecase.New(deps)

	cacheDir := filepath.Join(os.TempDir(), "voice-changer-"+uuid.NewString()[:8])
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	defer os.RemoveAll(cacheDir)
	logf("workspace: %s", cacheDir)

	outPath := cfg.OutputPath
	if outPath == "" {
		outPath = defaultOutputPath(cfg.InputVideo)
	}
	logf("output will be saved to: %s", outPath)

	res, err := uc.Run(ctx, usecase.Input{
		InputVideo:     cfg.InputVideo,
		OutputPath:     outPath,
		VoiceID:        cfg.VoiceID,
		MaxSpeedRatio:  cfg.MaxSpeedRatio,
		SpeedupCeiling: cfg.SpeedupCeiling,
		AdjustVideo:    cfg.AdjustVideo,
		CacheDir:       cacheDir,
		Logf:           logf,
	})
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(res.Report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	reportPath := reportPathFor(outPath)
	if err := os.WriteFile(reportPath, b, 0o644); err != nil {
		return err
	}
	logf("report written: %s", reportPath)
	return nil
}

func defaultOutputPath(input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(input), stem+"_voice_changed.mp4")
}

func reportPathFor(outPath string) string {
	stem := strings.TrimSuffix(outPath, filepath.Ext(outPath))
	return stem + ".report.json"
}

// Defaults fills unset tuning knobs.
func Defaults(cfg Config) Config {
	if cfg.VoiceID == "" {
		cfg.VoiceID = DefaultVoiceID
	}
	if cfg.MaxSpeedRatio == 0 {
		cfg.MaxSpeedRatio = reconcile.DefaultMaxSpeedRatio
	}
	if cfg.SpeedupCeiling == 0 {
		cfg.SpeedupCeiling = reconcile.DefaultSpeedupCeiling
	}
	return cfg
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.TranscriptSource = (*whispercpp.Adapter)(nil)
var _ ports.TranscriptSource = (*openaiasr.Adapter)(nil)
var _ ports.TranscriptSource = (*manual.Adapter)(nil)
var _ ports.Synthesizer = (*elevenlabs.Adapter)(nil)
