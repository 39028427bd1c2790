package vtkxml

import (
	"bufio"
	"strings"
)

// tagWriter emits indented, well-formed XML tags to the primary output.
// Start tags increase the indent by two spaces after emission and end tags
// decrease it before emission, so matching tags align. The first write error
// sticks and suppresses all further output.
type tagWriter struct {
	w      *bufio.Writer
	indent int
	err    error
}

func newTagWriter(w *bufio.Writer) *tagWriter {
	return &tagWriter{w: w}
}

// line writes indentation, the given text, and a newline.
func (t *tagWriter) line(s string) {
	if t.err != nil {
		return
	}
	if _, err := t.w.WriteString(strings.Repeat(" ", t.indent)); err != nil {
		t.err = err
		return
	}
	if _, err := t.w.WriteString(s); err != nil {
		t.err = err
		return
	}
	if err := t.w.WriteByte('\n'); err != nil {
		t.err = err
	}
}

// openTag emits <name attrs> and indents the block it opens.
func (t *tagWriter) openTag(name, attrs string) {
	if attrs == "" {
		t.line("<" + name + ">")
	} else {
		t.line("<" + name + " " + attrs + ">")
	}
	t.indent += 2
}

// closeTag emits </name> aligned with its matching start tag.
func (t *tagWriter) closeTag(name string) {
	t.indent -= 2
	if t.indent < 0 {
		t.indent = 0
	}
	t.line("</" + name + ">")
}

// emptyTag emits a self-closing <name attrs/>. The indent is unchanged.
func (t *tagWriter) emptyTag(name, attrs string) {
	if attrs == "" {
		t.line("<" + name + "/>")
	} else {
		t.line("<" + name + " " + attrs + "/>")
	}
}

// contentTag emits a start tag, one content line indented inside it, and
// the matching end tag.
func (t *tagWriter) contentTag(name, attrs, content string) {
	t.openTag(name, attrs)
	t.line(content)
	t.closeTag(name)
}

// raw writes bytes verbatim, with no indentation or newline. Used for the
// AppendedData payload stream.
func (t *tagWriter) raw(b []byte) {
	if t.err != nil {
		return
	}
	if _, err := t.w.Write(b); err != nil {
		t.err = err
	}
}

// rawString writes a string verbatim, with no indentation or newline.
func (t *tagWriter) rawString(s string) {
	if t.err != nil {
		return
	}
	if _, err := t.w.WriteString(s); err != nil {
		t.err = err
	}
}

// lastErr returns the sticky write error, if any.
func (t *tagWriter) lastErr() error { return t.err }
