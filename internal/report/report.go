// Package report orders classified results, renders the console report, and
// composes the process exit status.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"hotspot/internal/classify"
	"hotspot/internal/discover"
)

// Exit statuses for the whole run. An error anywhere dominates highlights;
// highlights dominate an otherwise quiet run.
const (
	StatusHighlights = 0
	StatusNothing    = 1
	StatusError      = 2
)

// ExitCode composes the process-wide status from the full classified set.
func ExitCode(results []classify.Result) int {
	status := StatusNothing
	for _, r := range results {
		switch r.Kind {
		case classify.Error:
			return StatusError
		case classify.Highlight:
			status = StatusHighlights
		}
	}
	return status
}

// Render writes the run report: highlight entries by descending score (ties
// by ascending trace path), then error entries in encounter order, then a
// trailing count of projects where nothing was found. Blocks are separated by
// exactly one blank line.
func Render(w io.Writer, results []classify.Result) {
	var highlights, errors []classify.Result
	nothing := 0
	for _, r := range results {
		switch r.Kind {
		case classify.Highlight:
			highlights = append(highlights, r)
		case classify.Error:
			errors = append(errors, r)
		default:
			nothing++
		}
	}

	// Deterministic ranking regardless of completion order.
	sort.Slice(highlights, func(i, j int) bool {
		if highlights[i].Score != highlights[j].Score {
			return highlights[i].Score > highlights[j].Score
		}
		return highlights[i].Project.TracePath < highlights[j].Project.TracePath
	})

	// With a single unlabeled project the description line carries no
	// information, so highlight entries print the raw analyzer report only.
	// Error entries always keep their description.
	bare := len(results) == 1 && results[0].Project.ConfigPath == ""

	var blocks []string
	for _, r := range highlights {
		if bare {
			blocks = append(blocks, r.Stdout)
			continue
		}
		block := "Analyzed " + describe(r.Project)
		if r.Stdout != "" {
			block += "\n" + r.Stdout
		}
		blocks = append(blocks, block)
	}
	for _, r := range errors {
		blocks = append(blocks, "Error analyzing "+describe(r.Project)+"\n"+errorDetail(r))
	}

	if nothing > 0 || len(blocks) == 0 {
		other := ""
		if len(blocks) > 0 {
			other = "other "
		}
		blocks = append(blocks, fmt.Sprintf("found nothing in %d %sproject(s)", nothing, other))
	}

	fmt.Fprintln(w, strings.Join(blocks, "\n\n"))
}

// describe labels a project for the console: the build-config label with the
// trace basename in parentheses, or just the basename for unlabeled projects.
func describe(p discover.Project) string {
	base := filepath.Base(p.TracePath)
	if p.ConfigPath != "" {
		return p.ConfigPath + " (" + base + ")"
	}
	return base
}

// errorDetail renders a failed outcome without stack traces or internal
// identifiers: analyzer stderr when present, otherwise the exit status.
func errorDetail(r classify.Result) string {
	switch {
	case r.Stderr != "":
		return r.Stderr
	case r.Signal != "":
		return "terminated by signal " + r.Signal
	case r.ExitCode != nil:
		return fmt.Sprintf("exited with code %d", *r.ExitCode)
	}
	return "no exit status recorded"
}
