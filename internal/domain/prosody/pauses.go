// Package prosody shapes transcript text before synthesis.
package prosody

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Pause markup inserted into the text sent to the synthesis API. Sentence
// boundaries get the longest pause, commas the shortest. Values are
// deliberately moderate: longer breaks make the narration drag.
const (
	sentencePause = 400 * time.Millisecond
	clausePause   = 300 * time.Millisecond
	commaPause    = 200 * time.Millisecond
	openingPause  = 200 * time.Millisecond
	closingPause  = 300 * time.Millisecond
)

var (
	sentenceRE = regexp.MustCompile(`([.!?])\s+`)
	clauseRE   = regexp.MustCompile(`([;:])\s+`)
	commaRE    = regexp.MustCompile(`(,)\s+`)
)

// EnhancePauses inserts explicit pause markup after sentence enders,
// semicolons/colons and commas, and wraps the whole text in a short
// lead-in and tail pause. Blank input passes through unchanged.
//
// The transformation is meant to run exactly once per transcript; it does
// not detect markup from a previous application.
func EnhancePauses(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	out := sentenceRE.ReplaceAllString(text, "$1 "+breakTag(sentencePause)+" ")
	out = clauseRE.ReplaceAllString(out, "$1 "+breakTag(clausePause)+" ")
	out = commaRE.ReplaceAllString(out, "$1 "+breakTag(commaPause)+" ")
	return breakTag(openingPause) + " " + out + " " + breakTag(closingPause)
}

func breakTag(d time.Duration) string {
	return fmt.Sprintf(`<break time="%.1fs"/>`, d.Seconds())
}
