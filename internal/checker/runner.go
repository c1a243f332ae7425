// Package checker runs an external static type checker and turns its
// output into structured results.
package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/typeview/typeview/internal/model"
)

// ProgressFunc receives scan progress. done never exceeds total and
// never decreases across calls within one scan.
type ProgressFunc func(done, total int)

// Options configure a Runner.
type Options struct {
	Command string   // checker executable; default "mypy"
	Args    []string // extra arguments placed before the file list
	Batch   int      // files per invocation; <=0 checks everything at once
	Dir     string   // working directory for the checker process
}

// Runner invokes the checker over batches of files.
type Runner struct {
	opts Options
}

// New returns a Runner with defaults applied.
func New(opts Options) *Runner {
	if opts.Command == "" {
		opts.Command = "mypy"
	}
	return &Runner{opts: opts}
}

// Run checks the given files and reports progress through fn, which may
// be nil. fn is first called with (0, total) so the caller can size its
// progress indicator before any work happens. The returned Results hold
// entries only for files with at least one problem.
//
// A checker exit status of 1 means problems were found and is not an
// error; any other failure aborts the scan.
func (r *Runner) Run(ctx context.Context, files []string, fn ProgressFunc) (model.Results, error) {
	total := len(files)
	report := fn
	if report == nil {
		report = func(int, int) {}
	}
	report(0, total)

	batch := r.opts.Batch
	if batch <= 0 {
		batch = total
	}

	results := make(model.Results)
	done := 0
	for start := 0; start < total; start += batch {
		end := start + batch
		if end > total {
			end = total
		}

		part, err := r.runOnce(ctx, files[start:end])
		if err != nil {
			return nil, err
		}
		for file, probs := range part {
			results[file] = append(results[file], probs...)
		}

		done += end - start
		if done > total {
			done = total
		}
		report(done, total)
	}
	return results, nil
}

func (r *Runner) runOnce(ctx context.Context, files []string) (model.Results, error) {
	args := append([]string(nil), r.opts.Args...)
	args = append(args, files...)

	cmd := exec.CommandContext(ctx, r.opts.Command, args...)
	cmd.Dir = r.opts.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil && !exitedWithProblems(err) {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("running %s: %s", r.opts.Command, detail)
	}

	return ParseOutput(&stdout)
}

// exitedWithProblems reports whether the checker exited with status 1,
// its way of saying "scan succeeded, problems found".
func exitedWithProblems(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && exitErr.ExitCode() == 1
}
