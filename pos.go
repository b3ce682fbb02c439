package airyc

import (
	"fmt"
	"sort"
)

// Range is a half-open byte span [Start, End) within a single file's
// source text. It is two ints (16 bytes on 64-bit systems) and
// carries no line/column data, matching the CST's requirement
// that offsets are computed rather than stored per node.
type Range struct{ Start, End int }

func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

func (r Range) Len() int { return r.End - r.Start }

func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Str slices the raw source bytes covered by r.
func (r Range) Str(src []byte) string {
	return string(src[r.Start:r.End])
}

func (r Range) Contains(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Cover returns the smallest range containing both r and other.
func (r Range) Cover(other Range) Range {
	start, end := r.Start, r.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Range{Start: start, End: end}
}

// Location is a human-facing line/column/byte-offset triple.
type Location struct {
	Line   int32
	Column int32
	Cursor int
}

// Span pairs two Locations, the boundaries of a Range once resolved
// against a particular file's line index.
type Span struct {
	Start Location
	End   Location
}

func (s Span) String() string {
	sl, sc := int(s.Start.Line), int(s.Start.Column)
	el, ec := int(s.End.Line), int(s.End.Column)
	if sl == el && sc == ec {
		return fmt.Sprintf("%d:%d", sl, sc)
	}
	if sl == el {
		return fmt.Sprintf("%d:%d..%d", sl, sc, ec)
	}
	return fmt.Sprintf("%d:%d..%d:%d", sl, sc, el, ec)
}

// FileID identifies a source file within a compilation's module
// graph. unknownFileID marks the absence of a file; module loading
// numbers real files from 0, so the zero value is the first loaded
// file.
type FileID int32

const unknownFileID FileID = -1

// SourceLocation anchors a Span to the file it was taken from, so
// diagnostics remain meaningful once modules are merged across files.
type SourceLocation struct {
	File FileID
	Span Span
}

func NewSourceLocation(f FileID, s Span) SourceLocation {
	return SourceLocation{File: f, Span: s}
}

// LineIndex allows fast conversion from byte cursor offsets to
// line/column pairs.
//
// It stores the start byte offset of each line (0-based). Given a
// cursor, it finds the line by binary searching line starts (O(log
// lines)) and computes the column as (bytes since lineStart + 1).
// Airyc source is required to be UTF-8 but columns are counted in
// bytes, matching the lexer's byte-oriented cursor.
//
// Construction is O(n) over the input. Indexes are not cached:
// Analyzer.locOf builds a fresh one for each location it resolves.
type LineIndex struct {
	input     []byte
	lineStart []int
}

func NewLineIndex(input []byte) *LineIndex {
	lineStart := make([]int, 1, 64)
	lineStart[0] = 0
	for i, b := range input {
		if b == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &LineIndex{input: input, lineStart: lineStart}
}

func (li *LineIndex) Span(r Range) Span {
	return Span{
		Start: li.LocationAt(r.Start),
		End:   li.LocationAt(r.End),
	}
}

// LineText returns the text of the given 1-based line number, without
// its trailing newline. Used by the diagnostic renderer's context
// line (diagnostics.go).
func (li *LineIndex) LineText(line int32) string {
	idx := int(line) - 1
	if idx < 0 || idx >= len(li.lineStart) {
		return ""
	}
	start := li.lineStart[idx]
	end := len(li.input)
	if idx+1 < len(li.lineStart) {
		end = li.lineStart[idx+1] - 1 // exclude the newline
	}
	if end < start {
		end = start
	}
	if end > len(li.input) {
		end = len(li.input)
	}
	return string(li.input[start:end])
}

func (li *LineIndex) LocationAt(cursor int) Location {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(li.input) {
		cursor = len(li.input)
	}

	lineIdx := sort.Search(len(li.lineStart), func(i int) bool {
		return li.lineStart[i] > cursor
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}

	lineStart := li.lineStart[lineIdx]
	col := int32(cursor-lineStart) + 1

	return Location{
		Line:   int32(lineIdx + 1),
		Column: col,
		Cursor: cursor,
	}
}
