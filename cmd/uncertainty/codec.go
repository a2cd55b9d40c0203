// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/katalvlaran/uncertainty/internal/fileio"
	"github.com/katalvlaran/uncertainty/phase"
	"github.com/katalvlaran/uncertainty/uncertainty"
)

// Table encodings accepted by --from and --to.
const (
	formatText   = "text"
	formatBinary = "binary"
	formatBuffer = "buffer"
)

var formats = []string{formatText, formatBinary, formatBuffer}

// resolveFormat returns format, or infers it from the extension of path
// (".bin" binary, ".buf" buffer, anything else text) when format is empty.
// A trailing ".gz" is ignored.
func resolveFormat(format, path string) (string, error) {
	if format != "" {
		if !slices.Contains(formats, format) {
			return "", fmt.Errorf("unknown format %q: want one of %v", format, formats)
		}
		return format, nil
	}
	switch filepath.Ext(fileio.TrimExt(path)) {
	case ".bin":
		return formatBinary, nil
	case ".buf":
		return formatBuffer, nil
	default:
		return formatText, nil
	}
}

// readGrid loads a table from path. Buffer files carry their own phase; p
// is used by the other encodings only.
func readGrid(path, format string, p phase.Phase, a phase.Attribute, opts ...uncertainty.Option) (*uncertainty.Grid, error) {
	format, err := resolveFormat(format, path)
	if err != nil {
		return nil, err
	}
	r, err := fileio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, uncertainty.ErrOpen, err)
	}
	defer r.Close()

	switch format {
	case formatBinary:
		return uncertainty.ReadBinary(r, path, p, a, opts...)
	case formatBuffer:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		g, err := uncertainty.Deserialize(uncertainty.NewBuffer(data), a, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if g == nil {
			return nil, fmt.Errorf("%s: buffer holds no table", path)
		}
		return g, nil
	default:
		return uncertainty.ReadText(r, path, p, a, opts...)
	}
}

// writeGrid stores g at path.
func writeGrid(g *uncertainty.Grid, path, format string) error {
	format, err := resolveFormat(format, path)
	if err != nil {
		return err
	}
	w, err := fileio.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w: %w", path, uncertainty.ErrWrite, err)
	}

	switch format {
	case formatBinary:
		err = g.WriteBinary(w)
	case formatBuffer:
		b := uncertainty.NewBuffer(nil)
		if err = uncertainty.Serialize(b, g); err == nil {
			_, err = w.Write(b.Bytes())
		}
	default:
		err = g.WriteText(w)
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
