// SPDX-License-Identifier: MIT

// Package fileio opens table files for the uncertainty command, inflating
// and deflating compressed paths on the fly. The compression is chosen by
// extension: ".gz" for gzip, ".lz4" for the LZ4 frame format.
package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies a stream compression.
type Compression int

const (
	None Compression = iota
	Gzip
	LZ4
)

// String returns the compression's file extension, "" for None.
func (c Compression) String() string {
	switch c {
	case Gzip:
		return ".gz"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// Detect returns the compression implied by path's extension.
func Detect(path string) Compression {
	switch filepath.Ext(path) {
	case Gzip.String():
		return Gzip
	case LZ4.String():
		return LZ4
	default:
		return None
	}
}

// TrimExt strips a compression extension from path, leaving the name that
// describes the payload, e.g. "Pn_TT.bin.gz" becomes "Pn_TT.bin".
func TrimExt(path string) string {
	if c := Detect(path); c != None {
		return path[:len(path)-len(c.String())]
	}
	return path
}

// Open opens path for reading and returns the decompressed stream.
// Closing the returned reader closes the file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch Detect(path) {
	case Gzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &readCloser{Reader: zr, close: zr.Close, f: f}, nil
	case LZ4:
		return &readCloser{Reader: lz4.NewReader(f), f: f}, nil
	default:
		return f, nil
	}
}

// Create creates or truncates path for writing, compressing as Detect
// dictates. Close must be called to flush the stream; its error matters.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	switch Detect(path) {
	case Gzip:
		return &writeCloser{w: gzip.NewWriter(f), f: f}, nil
	case LZ4:
		return &writeCloser{w: lz4.NewWriter(f), f: f}, nil
	default:
		return f, nil
	}
}

// readCloser closes an optional decompressor, then the file.
type readCloser struct {
	io.Reader
	close func() error
	f     *os.File
}

func (r *readCloser) Close() error {
	var zerr error
	if r.close != nil {
		zerr = r.close()
	}
	if err := r.f.Close(); err != nil {
		return err
	}

	return zerr
}

// writeCloser flushes the compressor before closing the file.
type writeCloser struct {
	w io.WriteCloser
	f *os.File
}

func (w *writeCloser) Write(p []byte) (int, error) { return w.w.Write(p) }

func (w *writeCloser) Close() error {
	if err := w.w.Close(); err != nil {
		_ = w.f.Close()
		return err
	}

	return w.f.Close()
}
