package cli

import (
	"strings"
	"testing"

	"github.com/corsacca/voice-changer/internal/types"
)

func TestRenderVoicesTable(t *testing.T) {
	t.Parallel()

	out := renderVoicesTable([]types.Voice{
		{ID: "a1", Name: "Mark", Category: "premade"},
		{ID: "b2", Name: "Lena", Category: "cloned"},
	})

	for _, want := range []string{"NAME", "VOICE ID", "Mark", "a1", "Lena", "cloned"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
}

func TestRenderVoicesTable_Empty(t *testing.T) {
	t.Parallel()

	out := renderVoicesTable(nil)
	if !strings.Contains(out, "VOICE ID") {
		t.Fatalf("expected header even for empty catalog:\n%s", out)
	}
}
