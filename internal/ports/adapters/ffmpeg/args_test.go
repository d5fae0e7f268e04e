package ffmpeg

import (
	"strings"
	"testing"
	"time"

	"github.com/corsacca/voice-changer/internal/ports"
)

func sec(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }

func TestMuxArgs_PaddedPlan(t *testing.T) {
	t.Parallel()

	// 30s video, 9s narration: lead pad, no speed change.
	args := MuxArgs(ports.MuxJob{
		VideoPath:     "in.mp4",
		AudioPath:     "voice.mp3",
		OutPath:       "out.mp4",
		Scale:         1.0,
		LeadPad:       1500 * time.Millisecond,
		TailPad:       sec(19.5),
		Target:        sec(30),
		AudioDuration: sec(9),
	})

	joined := strings.Join(args, " ")
	if strings.Contains(joined, "-itsscale") {
		t.Fatalf("identity scale must not emit -itsscale: %v", args)
	}
	wantFilter := "adelay=1500:all=1,apad=whole_dur=30.000"
	if got := flagValue(t, args, "-af"); got != wantFilter {
		t.Fatalf("audio filter = %q, want %q", got, wantFilter)
	}
	for _, want := range []string{"-c:v libx264", "-profile:v baseline", "-pix_fmt yuv420p", "-movflags +faststart", "-map 0:v:0", "-map 1:a:0", "-f mp4"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in args: %v", want, args)
		}
	}
	if args[len(args)-1] != "out.mp4" {
		t.Fatalf("output path must be last: %v", args)
	}
}

func TestMuxArgs_ScaledPlan(t *testing.T) {
	t.Parallel()

	// 10s video vs 14s narration, capped at 1.4x stretch: scaled video,
	// narration trimmed to the scaled target.
	args := MuxArgs(ports.MuxJob{
		VideoPath:     "in.mp4",
		AudioPath:     "voice.mp3",
		OutPath:       "out.mp4",
		Scale:         1.4,
		Target:        sec(14),
		AudioDuration: sec(14.8),
	})

	if got := flagValue(t, args, "-itsscale"); got != "1.400000" {
		t.Fatalf("itsscale = %q, want 1.400000", got)
	}
	if got := flagValue(t, args, "-af"); got != "atrim=duration=14.000" {
		t.Fatalf("audio filter = %q, want atrim", got)
	}
	// The scale flag must precede the video input it applies to.
	if idxOf(args, "-itsscale") > idxOf(args, "-i") {
		t.Fatalf("-itsscale must come before the video input: %v", args)
	}
}

func TestMuxArgs_MatchedPlanHasNoFilter(t *testing.T) {
	t.Parallel()

	args := MuxArgs(ports.MuxJob{
		VideoPath:     "in.mp4",
		AudioPath:     "voice.mp3",
		OutPath:       "out.mp4",
		Scale:         1.0,
		Target:        sec(10),
		AudioDuration: sec(10.1),
	})
	for _, a := range args {
		if a == "-af" {
			t.Fatalf("matched plan must not filter audio: %v", args)
		}
	}
}

func TestMuxArgs_Passthrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		audioSec float64
		want     string // "" means -shortest
	}{
		{"well matched", 29.8, ""},
		{"audio much shorter", 20, "apad=whole_dur=30.000"},
		{"audio much longer", 40, "atrim=duration=30.000"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := MuxArgs(ports.MuxJob{
				VideoPath:     "in.mp4",
				AudioPath:     "voice.mp3",
				OutPath:       "out.mp4",
				Scale:         1.0,
				Target:        sec(30),
				AudioDuration: sec(tt.audioSec),
				Passthrough:   true,
			})
			joined := strings.Join(args, " ")
			if !strings.Contains(joined, "-c:v copy") {
				t.Fatalf("passthrough must copy the video stream: %v", args)
			}
			if strings.Contains(joined, "-itsscale") {
				t.Fatalf("passthrough must not rescale timestamps: %v", args)
			}
			if tt.want == "" {
				if !strings.Contains(joined, "-shortest") {
					t.Fatalf("expected -shortest: %v", args)
				}
				return
			}
			if got := flagValue(t, args, "-af"); got != tt.want {
				t.Fatalf("audio filter = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFrameRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 30000.0 / 1001.0},
		{"25", 25},
		{"", 30},
		{"bogus", 30},
		{"1/0", 30},
	}
	for _, tt := range tests {
		if got := parseFrameRate(tt.in); got != tt.want {
			t.Fatalf("parseFrameRate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func flagValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("flag %s not found in %v", flag, args)
	return ""
}

func idxOf(args []string, flag string) int {
	for i, a := range args {
		if a == flag {
			return i
		}
	}
	return -1
}
