package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/corsacca/voice-changer/internal/domain/prosody"
	"github.com/corsacca/voice-changer/internal/domain/reconcile"
	"github.com/corsacca/voice-changer/internal/ports"
	"github.com/corsacca/voice-changer/internal/types"
)

type Deps struct {
	Video ports.VideoTool

	// Transcriber is the engine-backed source; Fallback (manual entry)
	// takes over when it fails or returns nothing.
	Transcriber ports.TranscriptSource
	Fallback    ports.TranscriptSource

	Synth ports.Synthesizer
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	InputVideo string
	OutputPath string
	VoiceID    string

	MaxSpeedRatio  float64
	SpeedupCeiling float64
	AdjustVideo    bool

	CacheDir string
	Logf     func(format string, args ...any)
}

type Result struct {
	Report types.Report
}

var supportedExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".m4v":  {},
	".mkv":  {},
	".avi":  {},
	".webm": {},
}

// ValidateInput rejects missing files and unsupported container formats.
// It runs before any external tool is invoked.
func ValidateInput(path string) error {
	if path == "" {
		return errors.New("input video path is empty")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := supportedExtensions[ext]; !ok {
		return fmt.Errorf("unsupported input extension %q (expected a video container like .mp4 or .mov)", ext)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("input video: %w", err)
	}
	return nil
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	if err := ValidateInput(in.InputVideo); err != nil {
		return Result{}, err
	}

	wav := filepath.Join(in.CacheDir, "extracted_audio.wav")
	logf("extracting audio track")
	if err := u.d.Video.ExtractAudioMono16k(ctx, in.InputVideo, wav); err != nil {
		return Result{}, err
	}

	tr, source, err := u.transcribe(ctx, wav, in.CacheDir, logf)
	if err != nil {
		return Result{}, err
	}
	logf("transcript (%s, %d chars): %s", source, len(tr.FullText), excerpt(tr.FullText, 80))

	enhanced := prosody.EnhancePauses(tr.FullText)
	speechPath := filepath.Join(in.CacheDir, "ai_voice.mp3")
	logf("synthesizing voice %s", in.VoiceID)
	if err := u.d.Synth.Synthesize(ctx, enhanced, in.VoiceID, speechPath); err != nil {
		return Result{}, err
	}

	videoDur, err := u.d.Video.ProbeDuration(ctx, in.InputVideo)
	if err != nil {
		return Result{}, err
	}
	speechDur, err := u.d.Video.ProbeDuration(ctx, speechPath)
	if err != nil {
		return Result{}, err
	}
	if info, err := u.d.Video.ProbeVideoInfo(ctx, in.InputVideo); err == nil {
		logf("video: %.2fs %.2ffps %s", videoDur.Seconds(), info.FPS, info.Codec)
	}
	logf("narration: %.2fs (original speech ~%.2fs)", speechDur.Seconds(), tr.TotalDuration)

	plan, err := reconcile.Compute(videoDur, speechDur, reconcile.Options{
		MaxSpeedRatio:  in.MaxSpeedRatio,
		SpeedupCeiling: in.SpeedupCeiling,
		AdjustVideo:    in.AdjustVideo,
	})
	if err != nil {
		return Result{}, err
	}
	if err := reconcile.Verify(plan, speechDur); err != nil {
		return Result{}, err
	}
	logf("plan: scale=%.3f lead=%s tail=%s target=%.2fs", plan.Scale, plan.LeadPad, plan.TailPad, plan.Target.Seconds())
	if plan.Capped && plan.Residual > 0 {
		logf("note: output will run %.2fs past the source video (speed cap)", plan.Residual.Seconds())
	}

	if err := u.d.Video.Mux(ctx, ports.MuxJob{
		VideoPath:     in.InputVideo,
		AudioPath:     speechPath,
		OutPath:       in.OutputPath,
		Scale:         plan.Scale,
		LeadPad:       plan.LeadPad,
		TailPad:       plan.TailPad,
		Target:        plan.Target,
		AudioDuration: speechDur,
		Passthrough:   plan.Passthrough,
	}); err != nil {
		return Result{}, err
	}

	final, err := u.verifyOutput(ctx, in.OutputPath, plan)
	if err != nil {
		return Result{}, err
	}
	logf("final duration: %.2fs", final.Seconds())
	drift := final - plan.Target
	if drift < 0 {
		drift = -drift
	}

	ratio := videoDur.Seconds() / speechDur.Seconds()
	return Result{Report: types.Report{
		Input:            in.InputVideo,
		Output:           in.OutputPath,
		VideoSec:         videoDur.Seconds(),
		SpeechSec:        speechDur.Seconds(),
		Ratio:            ratio,
		Scale:            plan.Scale,
		LeadPadSec:       plan.LeadPad.Seconds(),
		TailPadSec:       plan.TailPad.Seconds(),
		TargetSec:        plan.Target.Seconds(),
		ResidualSec:      plan.Residual.Seconds(),
		FinalSec:         final.Seconds(),
		Matched:          drift <= reconcile.Tolerance,
		TranscriptSource: source,
		TranscriptChars:  len(tr.FullText),
	}}, nil
}

func (u Usecase) transcribe(ctx context.Context, wav, cacheDir string, logf func(string, ...any)) (types.Transcript, string, error) {
	tr, err := u.d.Transcriber.Transcribe(ctx, wav, cacheDir)
	if err == nil && strings.TrimSpace(tr.FullText) == "" {
		err = errors.New("engine returned an empty transcript")
	}
	if err == nil {
		return tr, u.d.Transcriber.Name(), nil
	}
	if u.d.Fallback == nil {
		return types.Transcript{}, "", fmt.Errorf("transcription failed: %w", err)
	}
	logf("transcription via %s failed (%v), falling back to %s", u.d.Transcriber.Name(), err, u.d.Fallback.Name())
	tr, ferr := u.d.Fallback.Transcribe(ctx, wav, cacheDir)
	if ferr != nil {
		return types.Transcript{}, "", fmt.Errorf("transcription failed: %w", ferr)
	}
	return tr, u.d.Fallback.Name(), nil
}

// verifyOutput enforces the run's post-conditions: the output must exist
// and its duration must land on the plan target, even when every
// external call reported success.
func (u Usecase) verifyOutput(ctx context.Context, outPath string, plan reconcile.Plan) (time.Duration, error) {
	if _, err := os.Stat(outPath); err != nil {
		return 0, fmt.Errorf("output missing after mux: %w", err)
	}
	final, err := u.d.Video.ProbeDuration(ctx, outPath)
	if err != nil {
		return 0, fmt.Errorf("probe output: %w", err)
	}
	if plan.Passthrough {
		return final, nil
	}
	drift := final - plan.Target
	if drift < 0 {
		drift = -drift
	}
	if drift > reconcile.Tolerance {
		return 0, fmt.Errorf("output duration %.2fs misses target %.2fs by %.2fs", final.Seconds(), plan.Target.Seconds(), drift.Seconds())
	}
	return final, nil
}

func excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
