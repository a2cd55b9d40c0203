// SPDX-License-Identifier: MIT

package uncertainty

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/uncertainty/phase"
)

// rowMarker precedes every value row in the text encoding.
const rowMarker = "#"

// maxLineBytes bounds a single text line; one value row per line can be long.
const maxLineBytes = 16 << 20

// textReader tokenizes whitespace-delimited input while tracking the line
// number of the last token for error messages.
type textReader struct {
	sc   *bufio.Scanner
	name string
	line int
	toks []string
}

func newTextReader(r io.Reader, name string) *textReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &textReader{sc: sc, name: name}
}

func (r *textReader) errorf(format string, args ...any) error {
	return fmt.Errorf("%s line %d: %s: %w", r.name, r.line, fmt.Sprintf(format, args...), ErrParse)
}

func (r *textReader) next(what string) (string, error) {
	for len(r.toks) == 0 {
		if !r.sc.Scan() {
			if err := r.sc.Err(); err != nil {
				return "", fmt.Errorf("%s line %d: reading %s: %w: %w", r.name, r.line, what, ErrParse, err)
			}
			return "", r.errorf("unexpected end of input reading %s", what)
		}
		r.line++
		r.toks = strings.Fields(r.sc.Text())
	}
	tok := r.toks[0]
	r.toks = r.toks[1:]

	return tok, nil
}

func (r *textReader) readInt(what string) (int, error) {
	tok, err := r.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, r.errorf("%s: %q is not an integer", what, tok)
	}

	return v, nil
}

func (r *textReader) readFloats(what string, dst []float64) error {
	for i := range dst {
		tok, err := r.next(what)
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return r.errorf("%s[%d]: %q is not a number", what, i, tok)
		}
		dst[i] = v
	}

	return nil
}

// trailing reports the line of the first token left after a complete
// table, consuming the rest of the input.
func (r *textReader) trailing() (int, bool) {
	if len(r.toks) > 0 {
		return r.line, true
	}
	for r.sc.Scan() {
		r.line++
		if len(strings.Fields(r.sc.Text())) > 0 {
			return r.line, true
		}
	}

	return 0, false
}

func (r *textReader) skipMarker() error {
	_, err := r.next("row marker")
	return err
}

// textWriter lays out one field group per line.
type textWriter struct {
	w   *bufio.Writer
	buf []byte
}

func (w *textWriter) writeInts(v ...int) error {
	w.buf = w.buf[:0]
	for i, n := range v {
		if i > 0 {
			w.buf = append(w.buf, ' ')
		}
		w.buf = strconv.AppendInt(w.buf, int64(n), 10)
	}
	w.buf = append(w.buf, '\n')
	_, err := w.w.Write(w.buf)

	return err
}

func (w *textWriter) writeFloats(v []float64, decimals int) error {
	w.buf = w.buf[:0]
	for i, x := range v {
		if i > 0 {
			w.buf = append(w.buf, ' ')
		}
		if decimals < 0 {
			w.buf = strconv.AppendFloat(w.buf, x, 'g', -1, 64)
		} else {
			w.buf = strconv.AppendFloat(w.buf, x, 'f', decimals, 64)
		}
	}
	w.buf = append(w.buf, '\n')
	_, err := w.w.Write(w.buf)

	return err
}

func (w *textWriter) writeMarker() error {
	_, err := w.w.WriteString(rowMarker + "\n")
	return err
}

// ReadText decodes a text table from r. name identifies the source in
// error messages and becomes the grid's Source. Angular values are
// converted from file units to internal units according to a.
//
// Content after the last value row is ignored; the first such line is
// reported at debug level through WithLogger.
//
// Errors:
//   - ErrParse (wrapped with name and line) on any malformed token or
//     structure. No grid is returned on error.
func ReadText(r io.Reader, name string, p phase.Phase, a phase.Attribute, opts ...Option) (*Grid, error) {
	o := gatherOptions(opts...)
	tr := newTextReader(r, name)
	t, err := decode(tr, a.ToInternal(), o)
	if err != nil {
		return nil, fmt.Errorf("ReadText: %w", err)
	}
	if line, ok := tr.trailing(); ok {
		o.logger.Debug("trailing content ignored", zap.String("source", name), zap.Int("line", line))
	}

	return newGrid(p, a, t.distances, t.depths, t.values, name), nil
}

// ReadFile opens path and decodes it with ReadText. The file is closed
// before returning on every path.
//
// Errors:
//   - ErrOpen (together with the os error) when the file cannot be opened.
//   - ErrParse when the content is malformed.
func ReadFile(path string, p phase.Phase, a phase.Attribute, opts ...Option) (*Grid, error) {
	o := gatherOptions(opts...)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadFile(%s): %w: %w", path, ErrOpen, err)
	}
	defer f.Close()

	g, err := ReadText(f, path, p, a, opts...)
	if err != nil {
		o.logger.Debug("uncertainty table rejected", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	o.logger.Debug("uncertainty table loaded",
		zap.String("path", path),
		zap.Stringer("phase", p),
		zap.Stringer("attribute", a),
		zap.Int("distances", g.Len()),
		zap.Int("depths", len(g.depths)),
	)

	return g, nil
}

// LoadDir reads the canonical table for (p, a) from dir, i.e.
// filepath.Join(dir, FileName(p, a)).
func LoadDir(dir string, p phase.Phase, a phase.Attribute, opts ...Option) (*Grid, error) {
	return ReadFile(filepath.Join(dir, FileName(p, a)), p, a, opts...)
}

// OpenFile is the optional form of ReadFile: a missing file, or a file with
// no distance samples, yields (nil, nil). Other failures are returned.
func OpenFile(path string, p phase.Phase, a phase.Attribute, opts ...Option) (*Grid, error) {
	o := gatherOptions(opts...)
	g, err := ReadFile(path, p, a, opts...)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		o.logger.Debug("no uncertainty table", zap.String("path", path))
		return nil, nil
	case err != nil:
		return nil, err
	case g.IsEmpty():
		o.logger.Debug("empty uncertainty table", zap.String("path", path))
		return nil, nil
	}

	return g, nil
}

// OpenDir is the optional form of LoadDir.
func OpenDir(dir string, p phase.Phase, a phase.Attribute, opts ...Option) (*Grid, error) {
	return OpenFile(filepath.Join(dir, FileName(p, a)), p, a, opts...)
}

// WriteText encodes g as text. Distances and depths are written in their
// shortest exact form; values are converted to file units and written with
// the attribute's fixed precision (4 decimals for slowness, 3 otherwise).
func (g *Grid) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := encode(&textWriter{w: bw}, g, g.attribute.ToFile(), g.attribute.Precision()); err != nil {
		return fmt.Errorf("WriteText: %w: %w", ErrWrite, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("WriteText: %w: %w", ErrWrite, err)
	}

	return nil
}

// WriteFile writes g as text to path, replacing any existing file.
func (g *Grid) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WriteFile(%s): %w: %w", path, ErrWrite, err)
	}
	if err := g.WriteText(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("WriteFile(%s): %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("WriteFile(%s): %w: %w", path, ErrWrite, err)
	}

	return nil
}

// WriteDir writes g into dir under its canonical file name and returns the
// path written.
func (g *Grid) WriteDir(dir string) (string, error) {
	path := filepath.Join(dir, FileName(g.phase, g.attribute))

	return path, g.WriteFile(path)
}
