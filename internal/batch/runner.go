// Package batch runs the external analyzer over a set of projects with
// bounded parallelism and collects every subprocess outcome.
package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"hotspot/internal/discover"
	"hotspot/internal/display"
	"hotspot/internal/logging"
)

// Result is the raw outcome of one analyzer invocation. Exactly one of
// ExitCode and Signal is meaningful when the process terminated; both may be
// absent only when the process could not be started at all.
type Result struct {
	Project discover.Project

	// Stdout and Stderr are the fully captured, whitespace-trimmed streams.
	Stdout string
	Stderr string

	// ExitCode is set when the process exited normally.
	ExitCode *int

	// Signal is the name of the terminating signal ("SIGKILL"), empty when
	// the process exited normally.
	Signal string
}

// Runner invokes the analyzer once per project.
type Runner struct {
	// Analyzer is the path to the analyzer executable.
	Analyzer string

	// ExtraArgs are forwarded to every invocation after the positional
	// trace/types arguments.
	ExtraArgs []string

	// Workers bounds concurrent subprocesses. Zero or negative means one per
	// available CPU.
	Workers int
}

// Run analyzes every project and returns all results, indexed like projects.
// The call returns only once every subprocess has exited; a failing project
// never cancels its siblings.
func (r *Runner) Run(ctx context.Context, projects []discover.Project) []Result {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger := logging.New("batch")
	logger.Debug("starting analyzer pool", "projects", len(projects), "workers", workers)

	results := make([]Result, len(projects))

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, p := range projects {
		i, p := i, p
		g.Go(func() error {
			results[i] = r.runOne(ctx, p)
			return nil
		})
	}
	_ = g.Wait() // outcomes, including failures, live in results

	return results
}

// runOne spawns the analyzer for a single project and assembles its Result.
// Arguments are [tracePath, typesPath-if-present, extraArgs...]; the streams
// are captured in full rather than streamed so concurrent workers never
// interleave on the console.
func (r *Runner) runOne(ctx context.Context, p discover.Project) Result {
	args := []string{p.TracePath}
	if _, err := os.Stat(p.TypesPath); err == nil {
		args = append(args, p.TypesPath)
	}
	args = append(args, r.ExtraArgs...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Analyzer, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := Result{
		Project: p,
		Stdout:  strings.TrimSpace(stdout.String()),
		Stderr:  strings.TrimSpace(stderr.String()),
	}

	switch {
	case err == nil:
		code := 0
		res.ExitCode = &code
	default:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Spawn failure (binary missing, permission). Surface it like
			// analyzer stderr so classification treats it as an error.
			if res.Stderr == "" {
				res.Stderr = err.Error()
			}
			return res
		}
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			res.Signal = display.SignalName(ws.Signal())
			return res
		}
		code := exitErr.ExitCode()
		res.ExitCode = &code
	}
	return res
}
