// Package deps checks the external binaries the pipeline shells out to
// before any work begins.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external tool the pipeline relies on.
type Requirement struct {
	Name     string
	Command  string
	Hint     string
	Optional bool
}

// Status reports the availability of one requirement.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// Required returns the tool set for a normal run.
func Required() []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: "ffmpeg", Hint: "install with: brew install ffmpeg"},
		{Name: "FFprobe", Command: "ffprobe", Hint: "install with: brew install ffmpeg"},
	}
}

// Check evaluates the requirements against PATH.
func Check(requirements []Requirement) []Status {
	out := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		st := Status{Requirement: req}
		cmd := strings.TrimSpace(req.Command)
		if cmd == "" {
			st.Detail = "command not configured"
			out = append(out, st)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			st.Detail = fmt.Sprintf("binary %q not found", cmd)
			out = append(out, st)
			continue
		}
		st.Available = true
		out = append(out, st)
	}
	return out
}

// Verify returns a single actionable error when any non-optional
// requirement is missing.
func Verify(requirements []Requirement) error {
	var missing []string
	for _, st := range Check(requirements) {
		if st.Available || st.Optional {
			continue
		}
		m := st.Command
		if st.Hint != "" {
			m += " (" + st.Hint + ")"
		}
		missing = append(missing, m)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}
	return nil
}
