// Package reconcile decides how to align a fixed-length video with a
// variable-length narration track without audible quality loss.
//
// All timing correction is confined to silence padding around the
// narration (perceptually free) and a single bounded timestamp scale
// applied uniformly to the whole video stream. Variable-rate filters are
// never used: they distort the voice outside roughly 0.7x-1.4x and break
// constant frame intervals in some players.
package reconcile

import (
	"fmt"
	"time"
)

const (
	// Tolerance is how far the combined output may drift from the plan
	// target before the run counts as failed.
	Tolerance = 300 * time.Millisecond

	// DefaultMaxSpeedRatio bounds how much the video may be sped up.
	DefaultMaxSpeedRatio = 2.5

	// DefaultSpeedupCeiling bounds the effective narration speedup a
	// video stretch may imply. Beyond ~1.4x the result sounds rushed, so
	// the planner under-corrects and reports the residual instead.
	DefaultSpeedupCeiling = 1.4

	// Ratio regime boundaries (video duration / speech duration).
	muchLongerRatio = 3.0
	longerRatio     = 1.5
	nearMatchRatio  = 0.9

	// Fixed leading silence per regime, clamped to the available slack.
	muchLongerLead = 1500 * time.Millisecond
	longerLead     = 500 * time.Millisecond
)

type Options struct {
	// MaxSpeedRatio caps the video timestamp scale, tightening the
	// ceiling when set lower. Defaults to DefaultMaxSpeedRatio.
	MaxSpeedRatio float64

	// SpeedupCeiling caps the video stretch when speech outruns the
	// video. Defaults to DefaultSpeedupCeiling.
	SpeedupCeiling float64

	// AdjustVideo false passes both streams through unchanged.
	AdjustVideo bool
}

// Plan is the full prescription for the combine step: a timestamp scale
// for the video stream plus leading/trailing silence for the narration.
type Plan struct {
	// Scale multiplies the video input's timestamps. 1.0 leaves the
	// video untouched; values above 1.0 stretch it to cover longer
	// narration.
	Scale float64

	LeadPad time.Duration
	TailPad time.Duration

	// Target is the duration the combined output should run: the video
	// duration times Scale.
	Target time.Duration

	// Residual is how far Target runs past the source video duration
	// when Scale is not 1.0. Zero for all pad-only plans.
	Residual time.Duration

	// Capped reports that the stretch hit the speed bound; any narration
	// the bound could not absorb gets trimmed to Target.
	Capped bool

	// Passthrough marks a plan produced with AdjustVideo disabled.
	Passthrough bool
}

// Compute picks the alignment strategy for the given durations.
func Compute(video, speech time.Duration, opts Options) (Plan, error) {
	if video <= 0 {
		return Plan{}, fmt.Errorf("video duration must be positive, got %v", video)
	}
	if speech <= 0 {
		return Plan{}, fmt.Errorf("speech duration must be positive, got %v", speech)
	}
	maxSpeed := opts.MaxSpeedRatio
	if maxSpeed <= 1 {
		maxSpeed = DefaultMaxSpeedRatio
	}
	ceiling := opts.SpeedupCeiling
	if ceiling <= 1 {
		ceiling = DefaultSpeedupCeiling
	}

	p := Plan{Scale: 1.0, Target: video}
	if !opts.AdjustVideo {
		p.Passthrough = true
		return p, nil
	}

	ratio := video.Seconds() / speech.Seconds()
	slack := video - speech

	switch {
	case ratio >= muchLongerRatio:
		p.LeadPad = clampLead(muchLongerLead, slack)
		p.TailPad = slack - p.LeadPad

	case ratio >= longerRatio:
		p.LeadPad = clampLead(longerLead, slack)
		p.TailPad = slack - p.LeadPad

	case ratio >= nearMatchRatio:
		switch {
		case absDuration(slack) <= Tolerance:
			// Close enough already.
		case slack > 0:
			p.TailPad = slack
		default:
			// Speech runs slightly long: stretch the video to meet it.
			// The band bottom keeps this at or below ~1.11x, but a low
			// MaxSpeedRatio can still bind.
			p.Scale, p.Capped = clampScale(1/ratio, ceiling, maxSpeed)
			p.Target = scaleDuration(video, p.Scale)
			p.Residual = p.Target - video
		}

	default:
		p.Scale, p.Capped = clampScale(1/ratio, ceiling, maxSpeed)
		p.Target = scaleDuration(video, p.Scale)
		p.Residual = p.Target - video
	}

	return p, nil
}

// ProjectedAudio is the narration length after the plan's padding and,
// for capped plans, the trim to Target applied by the combine step.
func (p Plan) ProjectedAudio(speech time.Duration) time.Duration {
	a := p.LeadPad + speech + p.TailPad
	if a > p.Target {
		return p.Target
	}
	return a
}

// Verify recomputes the post-adjustment audio length and checks it fills
// the plan target within Tolerance. Passthrough plans are exempt: they
// promise nothing about alignment.
func Verify(p Plan, speech time.Duration) error {
	if p.Passthrough {
		return nil
	}
	drift := absDuration(p.ProjectedAudio(speech) - p.Target)
	if drift > Tolerance {
		return fmt.Errorf("reconciled audio misses target by %v (target %v)", drift, p.Target)
	}
	return nil
}

// clampScale bounds a wanted stretch by the lower of the quality
// ceiling and the configured speed ratio. The bound is inclusive so the
// exact-limit stretch still reports as capped and takes the trim path.
func clampScale(want, ceiling, maxSpeed float64) (float64, bool) {
	limit := ceiling
	if maxSpeed < limit {
		limit = maxSpeed
	}
	if want >= limit {
		return limit, true
	}
	return want, false
}

func clampLead(lead, slack time.Duration) time.Duration {
	if slack <= 0 {
		return 0
	}
	if lead > slack {
		return slack
	}
	return lead
}

func scaleDuration(d time.Duration, scale float64) time.Duration {
	return time.Duration(float64(d) * scale)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
