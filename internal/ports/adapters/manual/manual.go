// Package manual is the transcript source of last resort: it asks the
// operator to type what was said in the video.
package manual

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/corsacca/voice-changer/internal/types"
)

// wordsPerMinute is the average speech rate used to estimate how long
// the typed transcript would take to say out loud.
const wordsPerMinute = 150.0

type Adapter struct {
	in  io.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Adapter {
	return &Adapter{in: in, out: out}
}

func (a *Adapter) Name() string { return "manual-entry" }

func (a *Adapter) Transcribe(ctx context.Context, _, _ string) (types.Transcript, error) {
	fmt.Fprintln(a.out, "Automatic transcription failed. Please type the text spoken in the video:")
	fmt.Fprint(a.out, "Enter transcript: ")

	line, err := readLine(ctx, a.in)
	if err != nil {
		return types.Transcript{}, err
	}
	text := strings.TrimSpace(line)
	if text == "" {
		return types.Transcript{}, errors.New("empty transcript entered")
	}

	return FromText(text), nil
}

// FromText builds a single-segment transcript with a duration estimated
// from the word count.
func FromText(text string) types.Transcript {
	words := len(strings.Fields(text))
	estimated := float64(words) / wordsPerMinute * 60.0
	return types.Transcript{
		FullText:      text,
		TotalDuration: estimated,
		Segments: []types.Segment{
			{Start: 0, End: estimated, Text: text},
		},
	}
}

func readLine(ctx context.Context, r io.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(r).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			ch <- result{err: err}
			return
		}
		ch <- result{line: line}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}
