package prosody

import (
	"strings"
	"testing"
)

func TestEnhancePauses_BlankPassthrough(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "\n\t"} {
		if got := EnhancePauses(in); got != in {
			t.Fatalf("EnhancePauses(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestEnhancePauses_OneTokenPerBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		in            string
		wantSentences int
		wantCommas    int
		wantClauses   int
	}{
		{"single sentence", "Hello world.", 0, 0, 0},
		{"two sentences", "Hello world. Goodbye now.", 1, 0, 0},
		{"commas", "One, two, three.", 0, 2, 0},
		{"mixed", "First, check this. Then; run it: done! Over.", 2, 1, 2},
		{"question and bang", "Really? Yes! Sure.", 2, 0, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := EnhancePauses(tt.in)

			// The closing wrap reuses the 0.3s duration, so subtract it
			// from the clause count.
			sentences := strings.Count(got, `<break time="0.4s"/>`)
			commas := strings.Count(got, `<break time="0.2s"/>`) - 1
			clauses := strings.Count(got, `<break time="0.3s"/>`) - 1

			if sentences != tt.wantSentences {
				t.Fatalf("sentence breaks = %d, want %d in %q", sentences, tt.wantSentences, got)
			}
			if commas != tt.wantCommas {
				t.Fatalf("comma breaks = %d, want %d in %q", commas, tt.wantCommas, got)
			}
			if clauses != tt.wantClauses {
				t.Fatalf("clause breaks = %d, want %d in %q", clauses, tt.wantClauses, got)
			}
		})
	}
}

func TestEnhancePauses_WrapsWithLeadAndTail(t *testing.T) {
	t.Parallel()

	got := EnhancePauses("Hello.")
	if !strings.HasPrefix(got, `<break time="0.2s"/> `) {
		t.Fatalf("missing opening pause: %q", got)
	}
	if !strings.HasSuffix(got, ` <break time="0.3s"/>`) {
		t.Fatalf("missing closing pause: %q", got)
	}
	if !strings.Contains(got, "Hello.") {
		t.Fatalf("original text lost: %q", got)
	}
}

func TestEnhancePauses_Deterministic(t *testing.T) {
	t.Parallel()

	in := "One, two. Three; four: five?"
	if EnhancePauses(in) != EnhancePauses(in) {
		t.Fatalf("expected identical output for identical input")
	}
}
