package fastaio

import "io"

// SliceReader serves Records from an in-memory slice, implementing Reader
// without touching the filesystem — used by tests that exercise the
// assembly driver against synthetic input.
type SliceReader struct {
	records []Record
	pos     int
}

func NewSliceReader(records []Record) *SliceReader {
	return &SliceReader{records: records}
}

func (r *SliceReader) Read() (Record, error) {
	if r.pos >= len(r.records) {
		return Record{}, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

// SliceWriter collects written Records in memory for assertions.
type SliceWriter struct {
	Records []Record
}

func (w *SliceWriter) Write(r Record) error {
	w.Records = append(w.Records, r)
	return nil
}
