package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// SpareTimeLayout formats the timestamp suffix of spare saves (MM-DD_HH-MM-SS).
const SpareTimeLayout = "01-02_15-04-05"

// Open reads the file at path into a new document. An empty file yields a
// single empty line; a missing trailing newline is accepted.
func Open(path string, tabWidth int) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	d, err := Read(f, path, tabWidth)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return d, nil
}

// Read builds a document from r, splitting on '\n'.
func Read(r io.Reader, path string, tabWidth int) (*Document, error) {
	d := New(path, tabWidth)
	d.lines = d.lines[:0]

	br := bufio.NewReader(r)
	for {
		chars, err := br.ReadBytes('\n')
		if len(chars) > 0 && chars[len(chars)-1] == '\n' {
			chars = chars[:len(chars)-1]
			d.lines = append(d.lines, newLine(chars, d.tabWidth))
		} else if len(chars) > 0 {
			// Last line without a trailing newline.
			d.lines = append(d.lines, newLine(chars, d.tabWidth))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if len(d.lines) == 0 {
		d.lines = append(d.lines, &Line{})
	}
	return d, nil
}

// WriteTo writes every line followed by '\n'.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for i, l := range d.lines {
		wrote, err := bw.Write(l.chars)
		n += int64(wrote)
		if err != nil {
			return n, fmt.Errorf("writing line %d: %w", i, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, fmt.Errorf("writing newline after line %d: %w", i, err)
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flushing: %w", err)
	}
	return n, nil
}

// Save writes the document to path, or to the document's own path when
// path is empty. It returns the number of bytes written; 0 and an error
// when the destination cannot be opened. The dirty flag is cleared only
// after a complete write.
func (d *Document) Save(path string) (int, error) {
	if path == "" {
		path = d.path
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("opening %s for save: %w", path, err)
	}

	n, err := d.WriteTo(f)
	if err != nil {
		f.Close()
		return int(n), fmt.Errorf("saving %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return int(n), fmt.Errorf("closing %s: %w", path, err)
	}

	d.dirty = false
	return int(n), nil
}

// SparePath builds the spare save destination for the document:
// dir/<base name>_<MM-DD_HH-MM-SS>.
func (d *Document) SparePath(dir string, now time.Time) string {
	return filepath.Join(dir, filepath.Base(d.path)+"_"+now.Format(SpareTimeLayout))
}

// SaveToSpareDir saves into dir under a timestamped name. It is meant for
// files the user has no permission to overwrite.
func (d *Document) SaveToSpareDir(dir string, now time.Time) (string, int, error) {
	path := d.SparePath(dir, now)
	n, err := d.Save(path)
	return path, n, err
}
