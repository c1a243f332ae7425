// Package model defines the core data types shared across typeview.
package model

import (
	"sort"
	"strings"
)

// Severity classifies a single problem reported by the checker.
type Severity int

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// ParseSeverity maps a checker output keyword to a Severity.
func ParseSeverity(word string) (Severity, bool) {
	switch strings.ToLower(word) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "note":
		return SeverityNote, true
	default:
		return 0, false
	}
}

// Problem is one diagnostic from the checker.
type Problem struct {
	Line     int
	Column   int // 0 when the checker printed no column
	Message  string
	Severity Severity
	Code     string // e.g. "arg-type"; empty if the checker printed none
}

// Results maps a file path to the problems reported in it. Iteration
// order is irrelevant; callers needing stable order use Files.
type Results map[string][]Problem

// Count returns the total number of problems across all files.
func (r Results) Count() int {
	n := 0
	for _, ps := range r {
		n += len(ps)
	}
	return n
}

// CountBySeverity tallies problems per severity.
func (r Results) CountBySeverity() (errors, warnings, notes int) {
	for _, ps := range r {
		for _, p := range ps {
			switch p.Severity {
			case SeverityError:
				errors++
			case SeverityWarning:
				warnings++
			case SeverityNote:
				notes++
			}
		}
	}
	return
}

// Files returns the file paths in sorted order.
func (r Results) Files() []string {
	files := make([]string, 0, len(r))
	for f := range r {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Worst returns the highest severity present, or false when empty.
func (r Results) Worst() (Severity, bool) {
	found := false
	worst := SeverityNote
	for _, ps := range r {
		for _, p := range ps {
			if !found || p.Severity > worst {
				worst = p.Severity
			}
			found = true
		}
	}
	return worst, found
}

// Filter selects which severities are displayed. The zero value hides
// everything; AllSeverities is the usual starting point.
type Filter struct {
	Errors   bool
	Warnings bool
	Notes    bool
}

// AllSeverities returns a filter with every severity displayed.
func AllSeverities() Filter {
	return Filter{Errors: true, Warnings: true, Notes: true}
}

// Allows reports whether a problem of the given severity is displayed.
func (f Filter) Allows(s Severity) bool {
	switch s {
	case SeverityError:
		return f.Errors
	case SeverityWarning:
		return f.Warnings
	case SeverityNote:
		return f.Notes
	default:
		return false
	}
}

// None reports whether every severity is hidden.
func (f Filter) None() bool {
	return !f.Errors && !f.Warnings && !f.Notes
}
