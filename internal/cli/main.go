package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/corsacca/voice-changer/internal/pipeline"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "voice-changer <input_video>",
		Short:        "Replace a video's spoken audio with an AI-synthesized voice",
		Long:         "Extracts the audio track, transcribes it, synthesizes the transcript with an AI voice and muxes the result back in, keeping the video's original duration.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args)
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().StringP("output", "o", "", "Output video path (default: <input>_voice_changed.mp4)")
	root.Flags().StringP("voice", "v", pipeline.DefaultVoiceID, "Voice ID (default: Mark)")
	root.Flags().Float64("max-speed-ratio", 2.5, "Maximum video speed adjustment")
	root.Flags().Bool("no-adjust-video", false, "Disable video speed adjustment (keep original timing)")
	root.Flags().Bool("list-voices", false, "List available voices and exit")
	root.Flags().String("api-key", "", "Synthesis API key (or set ELEVEN_LABS_KEY in .env)")

	// Hidden tuning flags (internal)
	root.Flags().String("config", "", "Config file path")
	root.Flags().String("base-url", "", "Synthesis API base URL")
	root.Flags().String("whisper-bin", "", "whisper.cpp binary path")
	root.Flags().String("whisper-model", "", "whisper.cpp model path")
	for _, f := range []string{"config", "base-url", "whisper-bin", "whisper-model"} {
		_ = root.Flags().MarkHidden(f)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
