// Package diff compares serialized style documents.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	contextLines    = 3
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

type line struct {
	op   byte
	text string
}

// GenerateUnifiedDiff generates a unified diff comparing expected and actual content.
// Returns empty string if content is identical.
// Truncates diffs exceeding 10,000 lines with a truncation marker.
func GenerateUnifiedDiff(expected, actual []byte, expectedLabel, actualLabel string) string {
	if bytes.Equal(expected, actual) {
		return ""
	}

	lines := diffLines(string(expected), string(actual))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", expectedLabel)
	fmt.Fprintf(&buf, "+++ %s\n", actualLabel)
	for _, h := range hunks(lines) {
		writeHunk(&buf, lines, h)
	}

	result := buf.String()
	split := strings.Split(result, "\n")
	if len(split) > maxDiffLines {
		truncated := strings.Join(split[:maxDiffLines], "\n")
		return truncated + "\n" + truncateMessage + "\n"
	}
	return result
}

// diffLines runs a line-mode diff and flattens it into one entry per line.
func diffLines(a, b string) []line {
	dmp := diffmatchpatch.New()
	ca, cb, table := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), table)

	var out []line
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		op := byte(' ')
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = '-'
		case diffmatchpatch.DiffInsert:
			op = '+'
		}
		text := strings.TrimSuffix(d.Text, "\n")
		for _, l := range strings.Split(text, "\n") {
			out = append(out, line{op: op, text: l})
		}
	}
	return out
}

type hunk struct{ start, end int }

// hunks groups changed lines with their surrounding context. Changes closer
// than twice the context share a hunk.
func hunks(lines []line) []hunk {
	var out []hunk
	for i, l := range lines {
		if l.op == ' ' {
			continue
		}
		start := max(0, i-contextLines)
		end := min(len(lines), i+contextLines+1)
		if n := len(out); n > 0 && start <= out[n-1].end {
			out[n-1].end = max(out[n-1].end, end)
			continue
		}
		out = append(out, hunk{start: start, end: end})
	}
	return out
}

func writeHunk(buf *bytes.Buffer, lines []line, h hunk) {
	oldStart, newStart := 1, 1
	for _, l := range lines[:h.start] {
		if l.op != '+' {
			oldStart++
		}
		if l.op != '-' {
			newStart++
		}
	}
	oldLen, newLen := 0, 0
	for _, l := range lines[h.start:h.end] {
		if l.op != '+' {
			oldLen++
		}
		if l.op != '-' {
			newLen++
		}
	}

	fmt.Fprintf(buf, "@@ -%d,%d +%d,%d @@\n", oldStart, oldLen, newStart, newLen)
	for _, l := range lines[h.start:h.end] {
		buf.WriteByte(l.op)
		buf.WriteString(l.text)
		buf.WriteByte('\n')
	}
}

// MergePatch returns the RFC 7386 merge patch turning original into modified.
// Both inputs must be JSON objects.
func MergePatch(original, modified []byte) ([]byte, error) {
	patch, err := jsonpatch.CreateMergePatch(original, modified)
	if err != nil {
		return nil, fmt.Errorf("create merge patch: %w", err)
	}
	return patch, nil
}

// ApplyMergePatch applies a merge patch produced by MergePatch.
func ApplyMergePatch(doc, patch []byte) ([]byte, error) {
	out, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, fmt.Errorf("apply merge patch: %w", err)
	}
	return out, nil
}

// ApplyPatch applies an RFC 6902 JSON patch document.
func ApplyPatch(doc, patch []byte) ([]byte, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("decode json patch: %w", err)
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("apply json patch: %w", err)
	}
	return out, nil
}
