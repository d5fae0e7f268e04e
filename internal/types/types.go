package types

type Transcript struct {
	FullText      string    `json:"full_text"`
	Segments      []Segment `json:"segments"`
	TotalDuration float64   `json:"total_duration"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Voice is one entry from the synthesis provider's catalog.
type Voice struct {
	ID       string `json:"voice_id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Report summarizes one run: the measured durations, the reconciliation
// plan that was applied and how close the output landed.
type Report struct {
	Input  string `json:"input"`
	Output string `json:"output"`

	VideoSec  float64 `json:"video_sec"`
	SpeechSec float64 `json:"speech_sec"`
	Ratio     float64 `json:"ratio"`

	Scale      float64 `json:"scale"`
	LeadPadSec float64 `json:"lead_pad_sec"`
	TailPadSec float64 `json:"tail_pad_sec"`
	TargetSec  float64 `json:"target_sec"`

	// ResidualSec is how far the output runs past the source video when
	// the speed cap prevented a full correction.
	ResidualSec float64 `json:"residual_sec"`

	FinalSec float64 `json:"final_sec"`
	Matched  bool    `json:"matched"`

	TranscriptSource string `json:"transcript_source"`
	TranscriptChars  int    `json:"transcript_chars"`
}
