package content

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff operations
const (
	DiffEqual  = "equal"
	DiffInsert = "insert"
	DiffDelete = "delete"
)

type (
	DiffLine struct {
		Op   string `json:"op"`
		Text string `json:"text"`
	}

	DiffResult struct {
		Lines   []DiffLine `json:"lines"`
		Added   int        `json:"added"`
		Removed int        `json:"removed"`
	}
)

// DiffText computes a line diff between two texts. Unchanged lines are
// matched by content, not by line number, so an insertion near the top
// does not mark every following line as changed.
func DiffText(old, new string) DiffResult {
	a := splitLines(old)
	b := splitLines(new)

	var res DiffResult
	appendLines := func(op string, lines []string) {
		for _, line := range lines {
			res.Lines = append(res.Lines, DiffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}

	for _, opc := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch opc.Tag {
		case 'e':
			appendLines(DiffEqual, a[opc.I1:opc.I2])
		case 'd':
			appendLines(DiffDelete, a[opc.I1:opc.I2])
			res.Removed += opc.I2 - opc.I1
		case 'i':
			appendLines(DiffInsert, b[opc.J1:opc.J2])
			res.Added += opc.J2 - opc.J1
		case 'r':
			appendLines(DiffDelete, a[opc.I1:opc.I2])
			appendLines(DiffInsert, b[opc.J1:opc.J2])
			res.Removed += opc.I2 - opc.I1
			res.Added += opc.J2 - opc.J1
		}
	}
	return res
}

// splitLines keeps line terminators so that a missing trailing newline
// still diffs as a change; unlike difflib.SplitLines it does not append
// a phantom empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
