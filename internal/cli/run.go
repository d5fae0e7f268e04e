package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/corsacca/voice-changer/internal/config"
	"github.com/corsacca/voice-changer/internal/deps"
	"github.com/corsacca/voice-changer/internal/pipeline"
	"github.com/corsacca/voice-changer/internal/ports/adapters/elevenlabs"
)

func run(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	file, err := config.LoadFile(cfgPath)
	if err != nil {
		return err
	}

	flagKey, _ := cmd.Flags().GetString("api-key")
	apiKey := config.ResolveAPIKey(flagKey, file.APIKey, os.Getenv)

	baseURL, _ := cmd.Flags().GetString("base-url")
	baseURL = config.Resolve(baseURL, file.BaseURL, "")

	listVoices, _ := cmd.Flags().GetBool("list-voices")
	if listVoices {
		return printVoices(cmd, apiKey, baseURL)
	}

	if len(args) == 0 {
		return errors.New("input video path required (or use --list-voices)")
	}

	whisperBin, _ := cmd.Flags().GetString("whisper-bin")
	whisperBin = config.Resolve(whisperBin, file.WhisperBin, "")

	// Tool preflight comes before any work on the input.
	reqs := deps.Required()
	if whisperBin != "" {
		reqs = append(reqs, deps.Requirement{Name: "whisper.cpp", Command: whisperBin, Optional: true})
	}
	if err := deps.Verify(reqs); err != nil {
		return err
	}

	input, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	noAdjust, _ := cmd.Flags().GetBool("no-adjust-video")

	voice, _ := cmd.Flags().GetString("voice")
	if !cmd.Flags().Changed("voice") && file.VoiceID != "" {
		voice = file.VoiceID
	}
	maxSpeed, _ := cmd.Flags().GetFloat64("max-speed-ratio")
	if !cmd.Flags().Changed("max-speed-ratio") && file.MaxSpeedRatio > 0 {
		maxSpeed = file.MaxSpeedRatio
	}

	whisperModel, _ := cmd.Flags().GetString("whisper-model")

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	cfg := pipeline.Defaults(pipeline.Config{
		InputVideo:    input,
		OutputPath:    output,
		VoiceID:       voice,
		MaxSpeedRatio: maxSpeed,
		AdjustVideo:   !noAdjust,
		Logf: func(format string, a ...any) {
			cmd.Printf(format+"\n", a...)
		},

		WhisperBin:   whisperBin,
		WhisperModel: config.Resolve(whisperModel, file.WhisperModel, ""),
		OpenAIAPIKey: config.Resolve("", file.OpenAIAPIKey, os.Getenv(config.EnvOpenAIKey)),

		ElevenLabsAPIKey:  apiKey,
		ElevenLabsBaseURL: baseURL,
	})

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := pipeline.Run(ctx, cfg); err != nil {
		return err
	}
	cmd.Printf("Success! Voice-changed video saved.\n")
	return nil
}

func printVoices(cmd *cobra.Command, apiKey, baseURL string) error {
	if err := elevenlabs.ValidateBaseURL(baseURL, nil); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	synth := elevenlabs.New(apiKey, baseURL)
	voices, err := synth.Voices(ctx)
	if err != nil {
		return err
	}
	cmd.Println(renderVoicesTable(voices))
	return nil
}
