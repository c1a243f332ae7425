// Package report renders scan results for non-interactive output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/typeview/typeview/internal/model"
)

// Entry is one problem in flat, export-friendly form.
type Entry struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
}

// Flatten orders results by file, then line, then column.
func Flatten(results model.Results) []Entry {
	var entries []Entry
	for _, file := range results.Files() {
		probs := append([]model.Problem(nil), results[file]...)
		sort.SliceStable(probs, func(i, j int) bool {
			if probs[i].Line != probs[j].Line {
				return probs[i].Line < probs[j].Line
			}
			return probs[i].Column < probs[j].Column
		})
		for _, p := range probs {
			entries = append(entries, Entry{
				File:     file,
				Line:     p.Line,
				Column:   p.Column,
				Severity: p.Severity.String(),
				Message:  p.Message,
				Code:     p.Code,
			})
		}
	}
	return entries
}

// WriteTable renders the results as an aligned table with a summary
// footer line.
func WriteTable(w io.Writer, results model.Results) error {
	entries := Flatten(results)
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No problems found.")
		return err
	}

	table := tablewriter.NewTable(w)
	table.Header([]string{"Severity", "Location", "Message", "Code"})
	for _, e := range entries {
		loc := fmt.Sprintf("%s:%d", e.File, e.Line)
		if e.Column > 0 {
			loc = fmt.Sprintf("%s:%d", loc, e.Column)
		}
		if err := table.Append([]string{e.Severity, loc, e.Message, e.Code}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	errs, warns, notes := results.CountBySeverity()
	_, err := fmt.Fprintf(w, "%d error(s), %d warning(s), %d note(s) in %d file(s)\n",
		errs, warns, notes, len(results.Files()))
	return err
}

// WriteJSON renders the results as a JSON array of entries.
func WriteJSON(w io.Writer, results model.Results) error {
	entries := Flatten(results)
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
