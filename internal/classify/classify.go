// Package classify maps raw analyzer outcomes onto the three result kinds
// the reporter understands.
package classify

import (
	"regexp"
	"strconv"

	"hotspot/internal/batch"
)

// Kind is the classification of one analyzer outcome.
type Kind int

const (
	// Highlight means the analyzer found something notable (exit 0).
	Highlight Kind = iota
	// NothingFound means the analyzer ran fine and found nothing (the
	// reserved exit code).
	NothingFound
	// Error means the analyzer failed: stderr output, a signal, or an
	// unexpected exit code.
	Error
)

// NothingCode is the analyzer's reserved exit code for "ran fine, found
// nothing notable". Any other non-zero code means failure.
const NothingCode = 1

// Result is a batch outcome tagged with its kind. Score is only meaningful
// for Highlight results.
type Result struct {
	batch.Result

	Kind  Kind
	Score float64
}

// Classify tags one raw outcome. The rules are evaluated in priority order;
// in particular stderr output marks an error even when the exit code is the
// reserved nothing-code.
func Classify(r batch.Result) Result {
	c := Result{Result: r}
	switch {
	case r.Stderr != "" || r.Signal != "":
		c.Kind = Error
	case r.ExitCode != nil && *r.ExitCode != 0 && *r.ExitCode != NothingCode:
		c.Kind = Error
	case r.ExitCode != nil && *r.ExitCode == NothingCode:
		c.Kind = NothingFound
	default:
		c.Kind = Highlight
		c.Score = extractScore(r.Stdout)
	}
	return c
}

// All classifies a whole batch, preserving order.
func All(results []batch.Result) []Result {
	classified := make([]Result, len(results))
	for i, r := range results {
		classified[i] = Classify(r)
	}
	return classified
}

// scorePattern matches the analyzer's parenthesized duration marker, e.g.
// "(1234.5ms)". The analyzer prints its highest-scoring finding first, so the
// first match is the project's score. This is a brittle free-text contract;
// keep all knowledge of the format here.
var scorePattern = regexp.MustCompile(`\((\d+(?:\.\d+)?)\s*ms\)`)

// extractScore returns the first duration marker in the analyzer report, or
// 0 when the report carries none.
func extractScore(stdout string) float64 {
	m := scorePattern.FindStringSubmatch(stdout)
	if m == nil {
		return 0
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return score
}
