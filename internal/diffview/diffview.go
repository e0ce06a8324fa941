// Package diffview prints a unified diff between an exported snapshot copy
// and the live file. It is the fallback when no external viewer is configured.
package diffview

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

const contextLines = 3

// Files writes the unified diff of oldPath → newPath to w under the given display names.
func Files(w io.Writer, oldPath, newPath, oldName, newName string) error {
	a, err := os.ReadFile(oldPath)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(newPath)
	if err != nil {
		return err
	}
	return Unified(w, oldName, newName, a, b)
}

// Unified writes a classic unified patch for a ↦ b. Binary input is
// summarized instead of diffed.
func Unified(w io.Writer, aName, bName string, a, b []byte) error {
	if isBinary(a) || isBinary(b) {
		_, err := fmt.Fprintf(w, "Binary files %s and %s differ\n", aName, bName)
		return err
	}

	return difflib.WriteUnifiedDiff(w, difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: aName,
		ToFile:   bName,
		Context:  contextLines,
	})
}

func isBinary(data []byte) bool {
	head := data
	if len(head) > 8000 {
		head = head[:8000]
	}
	return bytes.IndexByte(head, 0) >= 0
}
