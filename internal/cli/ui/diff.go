package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 2

type diffLine struct {
	op   diffpatch.Operation
	text string
}

// lineDiff compares before and after line by line.
func lineDiff(before, after string) []diffLine {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []diffLine
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, l := range strings.Split(text, "\n") {
			out = append(out, diffLine{op: d.Type, text: l})
		}
	}
	return out
}

// Diff prints a line diff of before and after, keeping diffContext unchanged
// lines around each change. It reports whether anything changed.
func (r *Reporter) Diff(before, after string) bool {
	lines := lineDiff(before, after)
	keep := make([]bool, len(lines))
	changed := false
	for i, l := range lines {
		if l.op == diffpatch.DiffEqual {
			continue
		}
		changed = true
		for j := max(0, i-diffContext); j <= min(len(lines)-1, i+diffContext); j++ {
			keep[j] = true
		}
	}
	if !changed {
		return false
	}

	del := r.color(color.FgRed)
	ins := r.color(color.FgGreen)
	gap := r.color(color.FgCyan)
	skipping := false
	for i, l := range lines {
		if !keep[i] {
			if !skipping {
				gap.Fprintln(r.w, "@@")
				skipping = true
			}
			continue
		}
		skipping = false
		switch l.op {
		case diffpatch.DiffDelete:
			del.Fprintf(r.w, "- %s\n", l.text)
		case diffpatch.DiffInsert:
			ins.Fprintf(r.w, "+ %s\n", l.text)
		default:
			fmt.Fprintf(r.w, "  %s\n", l.text)
		}
	}
	return true
}
