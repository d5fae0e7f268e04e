package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/corsacca/voice-changer/internal/ports"
)

// padTrimSlop is the narration/target mismatch below which neither
// padding nor trimming is worth an extra filter.
const padTrimSlop = 300 * time.Millisecond

// MuxArgs builds the exact argument vector for the combine step. It is a
// pure function of the job so reconciliation decisions can be tested
// against the command they produce; nothing here touches a shell.
//
// The video stream's timing is adjusted with -itsscale, a plain timestamp
// rescale applied before decoding. Filter-graph speed changes are avoided
// on purpose: they resample frames and some players then mis-render the
// result as variable rate.
func MuxArgs(job ports.MuxJob) []string {
	if job.Passthrough {
		return passthroughArgs(job)
	}

	args := []string{"-y"}
	if job.Scale != 1.0 {
		args = append(args, "-itsscale", formatScale(job.Scale))
	}
	args = append(args,
		"-i", job.VideoPath,
		"-i", job.AudioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		// Re-encode is required when timestamps are rescaled. The
		// baseline profile, yuv420p and faststart keep the output
		// playable everywhere, including streaming contexts.
		"-c:v", "libx264",
		"-profile:v", "baseline",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-c:a", "aac",
	)
	if filter := audioFilter(job); filter != "" {
		args = append(args, "-af", filter)
	}
	return append(args, "-f", "mp4", job.OutPath)
}

func passthroughArgs(job ports.MuxJob) []string {
	args := []string{
		"-y",
		"-i", job.VideoPath,
		"-i", job.AudioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "copy",
		"-c:a", "aac",
	}
	// Mirror target handling without touching the video: pad or trim the
	// narration only when the mismatch is clearly audible, otherwise cut
	// at the shorter stream.
	diff := job.AudioDuration - job.Target
	switch {
	case diff < -time.Second:
		args = append(args, "-af", fmt.Sprintf("apad=whole_dur=%s", fmtSeconds(job.Target)))
	case diff > time.Second:
		args = append(args, "-af", fmt.Sprintf("atrim=duration=%s", fmtSeconds(job.Target)))
	default:
		args = append(args, "-shortest")
	}
	return append(args, "-f", "mp4", job.OutPath)
}

func audioFilter(job ports.MuxJob) string {
	var filters []string
	if job.LeadPad > 0 {
		filters = append(filters, fmt.Sprintf("adelay=%d:all=1", job.LeadPad.Milliseconds()))
	}
	// adelay already accounts for the lead; apad fills whatever tail is
	// left up to the target, atrim cuts narration the speed cap could not
	// absorb.
	effective := job.LeadPad + job.AudioDuration
	switch {
	case job.Target-effective > padTrimSlop || job.TailPad > 0:
		filters = append(filters, fmt.Sprintf("apad=whole_dur=%s", fmtSeconds(job.Target)))
	case effective-job.Target > padTrimSlop:
		filters = append(filters, fmt.Sprintf("atrim=duration=%s", fmtSeconds(job.Target)))
	}
	return strings.Join(filters, ",")
}

func fmtSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func formatScale(scale float64) string {
	return strconv.FormatFloat(scale, 'f', 6, 64)
}
