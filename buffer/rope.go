// Package buffer implements the rope backed text storage used by the
// editor. The document is kept as a weight-indexed binary tree of byte
// chunks together with an index of the byte offset at which every line
// starts, giving logarithmic lookups and edits while keeping line
// addressing cheap.
package buffer

import (
	"io"
	"sort"
)

// Leaves are split once they grow past this size.
const maxLeafSize = 1024

// Rope is the main data structure for the text buffer.
type Rope struct {
	root       *node
	lineStarts []int // byte offset of the start of each line
}

// node is a node in the rope's binary tree.
type node struct {
	left, right *node
	weight      int    // byte length of the left subtree
	data        []byte // nil for internal nodes, non-nil for leaves
}

func (n *node) isLeaf() bool { return n.data != nil }

func (n *node) length() int {
	if n == nil {
		return 0
	}
	if n.isLeaf() {
		return len(n.data)
	}
	return n.weight + n.right.length()
}

// New creates a Rope initialized with the given text.
func New(text string) *Rope {
	r := &Rope{root: build([]byte(text))}
	r.rebuildLineIndex()
	return r
}

// build constructs a balanced subtree over a copy of data.
func build(data []byte) *node {
	if len(data) <= maxLeafSize {
		chunk := make([]byte, len(data))
		copy(chunk, data)
		return &node{data: chunk}
	}
	mid := len(data) / 2
	left := build(data[:mid])
	return &node{left: left, right: build(data[mid:]), weight: left.length()}
}

// rebuildLineIndex scans the entire rope and rebuilds the line index.
// Only used at construction time; edits maintain the index in place.
func (r *Rope) rebuildLineIndex() {
	r.lineStarts = []int{0} // line 0 always starts at offset 0
	off := 0
	r.root.each(func(chunk []byte) {
		for i, b := range chunk {
			if b == '\n' {
				r.lineStarts = append(r.lineStarts, off+i+1)
			}
		}
		off += len(chunk)
	})
}

// each walks the leaves left to right.
func (n *node) each(fn func([]byte)) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		fn(n.data)
		return
	}
	n.left.each(fn)
	n.right.each(fn)
}

// Len returns the total byte length of the buffer.
func (r *Rope) Len() int { return r.root.length() }

// LineCount returns the number of lines in the buffer. A trailing
// newline terminates the last line rather than opening an empty one,
// so the empty buffer has zero lines.
func (r *Rope) LineCount() int {
	n := len(r.lineStarts)
	if r.lineStarts[n-1] == r.Len() {
		n--
	}
	return n
}

// OffsetOfLine returns the byte offset at which line i (0-based)
// starts. Out of bounds lines report offset 0.
func (r *Rope) OffsetOfLine(i int) int {
	if i < 0 || i >= r.LineCount() {
		return 0
	}
	return r.lineStarts[i]
}

// LineLen returns the byte length of line i, excluding its newline.
func (r *Rope) LineLen(i int) int {
	start, end, ok := r.lineSpan(i)
	if !ok {
		return 0
	}
	return end - start
}

// Line returns the content of line i as an independent string, without
// its trailing newline. Out of bounds lines yield the empty string.
func (r *Rope) Line(i int) string {
	start, end, ok := r.lineSpan(i)
	if !ok {
		return ""
	}
	buf := make([]byte, 0, end-start)
	r.root.report(start, end, &buf)
	return string(buf)
}

// lineSpan computes the byte span of line i, newline excluded.
func (r *Rope) lineSpan(i int) (start, end int, ok bool) {
	if i < 0 || i >= r.LineCount() {
		return 0, 0, false
	}
	start = r.lineStarts[i]
	if i+1 < len(r.lineStarts) {
		end = r.lineStarts[i+1] - 1 // drop the newline
	} else {
		end = r.Len()
	}
	return start, end, true
}

// Insert inserts text at the given byte offset and updates the line
// index in the same operation.
func (r *Rope) Insert(off int, text string) {
	if text == "" {
		return
	}
	off = min(max(off, 0), r.Len())
	r.root = r.root.insert(off, []byte(text))
	r.updateLineIndexOnInsert(off, text)
}

// Delete removes the byte span [start, end) and updates the line index
// in the same operation.
func (r *Rope) Delete(start, end int) {
	start = min(max(start, 0), r.Len())
	end = min(max(end, start), r.Len())
	if start == end {
		return
	}
	r.root = r.root.delete(start, end)
	if r.root == nil {
		r.root = &node{data: []byte{}}
	}
	r.updateLineIndexOnDelete(start, end)
}

// Replace swaps the byte span [start, end) for text as one operation;
// callers never observe the buffer between the delete and the insert.
func (r *Rope) Replace(start, end int, text string) {
	r.Delete(start, end)
	r.Insert(start, text)
}

// WriteTo writes the entire contents of the buffer to w.
func (r *Rope) WriteTo(w io.Writer) (int64, error) {
	var written int64
	var err error
	r.root.each(func(chunk []byte) {
		if err != nil {
			return
		}
		var n int
		n, err = w.Write(chunk)
		written += int64(n)
	})
	return written, err
}

// String returns the full buffer content.
func (r *Rope) String() string {
	buf := make([]byte, 0, r.Len())
	r.root.report(0, r.Len(), &buf)
	return string(buf)
}

// report appends the bytes in [start, end) to buf.
func (n *node) report(start, end int, buf *[]byte) {
	if n == nil || start >= end {
		return
	}
	if n.isLeaf() {
		*buf = append(*buf, n.data[start:end]...)
		return
	}
	if start < n.weight {
		n.left.report(start, min(end, n.weight), buf)
	}
	if end > n.weight {
		n.right.report(max(start-n.weight, 0), end-n.weight, buf)
	}
}

func (n *node) insert(off int, text []byte) *node {
	if n.isLeaf() {
		data := make([]byte, 0, len(n.data)+len(text))
		data = append(data, n.data[:off]...)
		data = append(data, text...)
		data = append(data, n.data[off:]...)
		if len(data) > maxLeafSize {
			return build(data)
		}
		n.data = data
		return n
	}
	if off <= n.weight {
		n.left = n.left.insert(off, text)
		n.weight += len(text)
	} else {
		n.right = n.right.insert(off-n.weight, text)
	}
	return n
}

// delete is the recursive helper for span deletion.
func (n *node) delete(start, end int) *node {
	if n.isLeaf() {
		n.data = append(n.data[:start], n.data[end:]...)
		return n
	}
	w := n.weight
	if start < w {
		e := min(end, w)
		n.left = n.left.delete(start, e)
		n.weight -= e - start
	}
	if end > w {
		n.right = n.right.delete(max(start-w, 0), end-w)
	}
	// Promote the sibling when a side empties out.
	if n.left.length() == 0 {
		return n.right
	}
	if n.right.length() == 0 {
		return n.left
	}
	return n
}

// updateLineIndexOnInsert incrementally updates lineStarts after text
// was inserted at off: starts past the insertion point shift right and
// every newline in text opens a line of its own.
func (r *Rope) updateLineIndexOnInsert(off int, text string) {
	idx := sort.SearchInts(r.lineStarts, off+1)
	for i := idx; i < len(r.lineStarts); i++ {
		r.lineStarts[i] += len(text)
	}
	var starts []int
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, off+i+1)
		}
	}
	if len(starts) > 0 {
		r.lineStarts = append(r.lineStarts[:idx], append(starts, r.lineStarts[idx:]...)...)
	}
}

// updateLineIndexOnDelete drops the starts that lived inside the
// removed span [start, end) and shifts the rest left.
func (r *Rope) updateLineIndexOnDelete(start, end int) {
	lo := sort.SearchInts(r.lineStarts, start+1)
	hi := sort.SearchInts(r.lineStarts, end+1)
	r.lineStarts = append(r.lineStarts[:lo], r.lineStarts[hi:]...)
	for i := lo; i < len(r.lineStarts); i++ {
		r.lineStarts[i] -= end - start
	}
}
