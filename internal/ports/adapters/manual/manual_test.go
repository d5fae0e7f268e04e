package manual

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestTranscribe_EstimatesDuration(t *testing.T) {
	t.Parallel()

	// 15 words at 150 wpm is exactly 6 seconds.
	text := strings.TrimSpace(strings.Repeat("word ", 15))
	var out bytes.Buffer
	a := New(strings.NewReader(text+"\n"), &out)

	tr, err := a.Transcribe(context.Background(), "", "")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if tr.FullText != text {
		t.Fatalf("full text = %q", tr.FullText)
	}
	if tr.TotalDuration != 6.0 {
		t.Fatalf("estimated duration = %v, want 6.0", tr.TotalDuration)
	}
	if len(tr.Segments) != 1 || tr.Segments[0].End != 6.0 {
		t.Fatalf("unexpected segments: %+v", tr.Segments)
	}
	if !strings.Contains(out.String(), "Enter transcript:") {
		t.Fatalf("missing prompt, got %q", out.String())
	}
}

func TestTranscribe_EmptyEntryIsError(t *testing.T) {
	t.Parallel()

	a := New(strings.NewReader("   \n"), &bytes.Buffer{})
	if _, err := a.Transcribe(context.Background(), "", ""); err == nil {
		t.Fatalf("expected error for blank entry")
	}
}

func TestTranscribe_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never produces input; cancellation must unblock.
	blocked := make(chan struct{})
	a := New(blockingReader{blocked}, &bytes.Buffer{})
	if _, err := a.Transcribe(ctx, "", ""); err == nil {
		t.Fatalf("expected context error")
	}
	close(blocked)
}

type blockingReader struct{ release chan struct{} }

func (r blockingReader) Read(p []byte) (int, error) {
	<-r.release
	return 0, nil
}
