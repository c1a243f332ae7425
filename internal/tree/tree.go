// Package tree builds the file → problem results tree shown in the panel.
//
// The tree retains the full scan results so the visible structure can be
// re-derived when the severity filter changes, without re-running the
// checker.
package tree

import (
	"fmt"
	"sort"

	"github.com/typeview/typeview/internal/model"
)

// NodeKind discriminates what a tree node wraps.
type NodeKind int

const (
	KindRoot NodeKind = iota
	KindFile
	KindProblem
)

// Node is one entry in the results tree.
type Node struct {
	Kind     NodeKind
	Text     string
	File     string         // set for file and problem nodes
	Problem  *model.Problem // set for problem nodes only
	Children []*Node
}

// Row is a flattened, display-ready tree entry.
type Row struct {
	Node     *Node
	Depth    int
	Expanded bool // meaningful for file rows only
}

// Tree holds the full scan results plus the visible projection for the
// active severity filter.
type Tree struct {
	results model.Results
	root    *Node
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: &Node{Kind: KindRoot}}
}

// SetResults installs a fresh scan result and derives the visible tree
// for the given filter. The previous results are discarded.
func (t *Tree) SetResults(results model.Results, visible model.Filter) {
	t.results = results
	t.root = build(results, visible)
}

// Filter re-derives the visible tree from the retained results. Calling
// it repeatedly with the same filter yields the same visible structure.
func (t *Tree) Filter(visible model.Filter) {
	t.root = build(t.results, visible)
}

// SetMessage clears the results and shows a root-only message, used for
// in-progress, warning, and failure states.
func (t *Tree) SetMessage(text string) {
	t.results = nil
	t.root = &Node{Kind: KindRoot, Text: text}
}

// Summary returns the root summary line for the visible results, or ""
// when nothing is displayed.
func (t *Tree) Summary() string {
	if len(t.root.Children) == 0 {
		return ""
	}
	return t.root.Text
}

// Message returns the root message, or "" when results are displayed.
func (t *Tree) Message() string {
	if len(t.root.Children) > 0 {
		return ""
	}
	return t.root.Text
}

// HasResults reports whether any file nodes are visible.
func (t *Tree) HasResults() bool {
	return len(t.root.Children) > 0
}

// VisibleCount returns the number of problems currently displayed.
func (t *Tree) VisibleCount() int {
	n := 0
	for _, fn := range t.root.Children {
		n += len(fn.Children)
	}
	return n
}

// Rows flattens the visible tree. File rows whose path is present in
// collapsed hide their problem rows.
func (t *Tree) Rows(collapsed map[string]bool) []Row {
	var rows []Row
	for _, fn := range t.root.Children {
		expanded := !collapsed[fn.File]
		rows = append(rows, Row{Node: fn, Depth: 0, Expanded: expanded})
		if !expanded {
			continue
		}
		for _, pn := range fn.Children {
			rows = append(rows, Row{Node: pn, Depth: 1})
		}
	}
	return rows
}

func build(results model.Results, visible model.Filter) *Node {
	root := &Node{Kind: KindRoot}
	if len(results) == 0 || visible.None() {
		return root
	}

	for _, file := range results.Files() {
		var probs []model.Problem
		for _, p := range results[file] {
			if visible.Allows(p.Severity) {
				probs = append(probs, p)
			}
		}
		if len(probs) == 0 {
			continue
		}

		sort.SliceStable(probs, func(i, j int) bool {
			if probs[i].Line != probs[j].Line {
				return probs[i].Line < probs[j].Line
			}
			return probs[i].Column < probs[j].Column
		})

		fileNode := &Node{
			Kind: KindFile,
			File: file,
			Text: fmt.Sprintf("%s (%d)", file, len(probs)),
		}
		for i := range probs {
			p := &probs[i]
			fileNode.Children = append(fileNode.Children, &Node{
				Kind:    KindProblem,
				File:    file,
				Problem: p,
				Text:    problemText(p),
			})
		}
		root.Children = append(root.Children, fileNode)
	}

	root.Text = summary(root)
	return root
}

func problemText(p *model.Problem) string {
	loc := fmt.Sprintf("%d", p.Line)
	if p.Column > 0 {
		loc = fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if p.Code != "" {
		return fmt.Sprintf("%s  %s  [%s]", loc, p.Message, p.Code)
	}
	return fmt.Sprintf("%s  %s", loc, p.Message)
}

func summary(root *Node) string {
	problems := 0
	for _, fn := range root.Children {
		problems += len(fn.Children)
	}
	if problems == 0 {
		return ""
	}
	plural := "s"
	if problems == 1 {
		plural = ""
	}
	return fmt.Sprintf("%d problem%s in %d file(s)", problems, plural, len(root.Children))
}
