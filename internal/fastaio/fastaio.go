// Package fastaio implements the FASTA stream collaborators of spec.md §6:
// a sequential record reader (case-folded to upper-case, EOF-observable)
// and a writer that emits the exact two-line contig record format. Reading
// is grounded on constructdbg/mapDBG.go's biogo fasta.Reader usage; writing
// follows the teacher's own idiom of a plain fmt.Fprintf(">id\n%s\n", seq)
// rather than biogo's line-wrapping fasta.Writer, since spec.md §6 requires
// an unwrapped two-line record.
package fastaio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/klauspost/compress/gzip"

	"bloomdbg/internal/bnt"
)

// Record is the {id, seq} pair spec.md §6 describes.
type Record struct {
	ID  string
	Seq []byte
}

// Reader yields FASTA records in file order, returning io.EOF once
// exhausted.
type Reader interface {
	Read() (Record, error)
}

// Writer emits one FASTA record per call.
type Writer interface {
	Write(Record) error
}

// fileReader wraps a biogo fasta.Reader, folding every base to upper-case
// as it is read.
type fileReader struct {
	fa     *fasta.Reader
	closer io.Closer
}

// Open opens fn for FASTA reading, transparently gunzipping if fn ends in
// ".gz".
func Open(fn string) (Reader, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	var r io.Reader = f
	closer := io.Closer(f)
	if strings.HasSuffix(fn, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		r = gz
		closer = multiCloser{gz, f}
	}
	return NewReader(r, closer), nil
}

// NewReader wraps an already-open io.Reader of FASTA data. closer may be
// nil if the caller manages the underlying resource's lifetime itself.
func NewReader(r io.Reader, closer io.Closer) Reader {
	return &fileReader{
		fa:     fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)),
		closer: closer,
	}
}

func (fr *fileReader) Read() (Record, error) {
	s, err := fr.fa.Read()
	if err != nil {
		if err == io.EOF && fr.closer != nil {
			fr.closer.Close()
		}
		return Record{}, err
	}
	l := s.(*linear.Seq)
	seq := make([]byte, len(l.Seq))
	for i, letter := range l.Seq {
		seq[i] = bnt.FoldUpper(byte(letter))
	}
	return Record{ID: l.Name(), Seq: seq}, nil
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// fileWriter writes the §6 two-line record format through a buffered
// writer, flushing after every record. It does not close the underlying
// file or compressor; Create returns an io.Closer for that.
type fileWriter struct {
	w *bufio.Writer
}

// Create opens fn for FASTA writing, transparently gzipping if fn ends in
// ".gz".
func Create(fn string) (io.Closer, Writer, error) {
	f, err := os.Create(fn)
	if err != nil {
		return nil, nil, err
	}
	if strings.HasSuffix(fn, ".gz") {
		gz := gzip.NewWriter(f)
		w := NewWriter(gz)
		return multiCloser{gz, f}, w, nil
	}
	return f, NewWriter(f), nil
}

// NewWriter wraps an already-open io.Writer for FASTA output.
func NewWriter(w io.Writer) Writer {
	return &fileWriter{w: bufio.NewWriter(w)}
}

func (fw *fileWriter) Write(r Record) error {
	if _, err := fmt.Fprintf(fw.w, ">%s\n%s\n", r.ID, r.Seq); err != nil {
		return err
	}
	return fw.w.Flush()
}
