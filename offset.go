package vtkxml

// offsetTracker computes the offset attribute of appended DataArray tags.
// The offset must be known when the tag is emitted, long before the
// referenced bytes are written, so the tracker advances by exactly the
// number of bytes the finalize drain will later produce for each payload.
// Any disagreement between the two corrupts the file for downstream
// readers.
type offsetTracker struct {
	mode   OutputFormat
	offset int64
}

// current returns the offset the next appended payload will begin at.
func (t *offsetTracker) current() int64 { return t.offset }

// reset rewinds the tracker to the start of the appended section.
func (t *offsetTracker) reset() { t.offset = 0 }

// advance accounts for one staged payload of nbyte raw bytes. Every payload
// is preceded by a 4-byte length header; in base64 mode the header and
// payload are encoded as one unit, expanding to 4 output characters per 3
// input bytes with standard padding. The +2 makes the integer division
// round up, matching base64.StdEncoding.EncodedLen(nbyte+4) exactly.
func (t *offsetTracker) advance(nbyte int) {
	switch t.mode {
	case FormatRaw:
		t.offset += int64(4 + nbyte)
	case FormatAppended:
		t.offset += int64((nbyte+4+2)/3) * 4
	}
}
