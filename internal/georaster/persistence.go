package georaster

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
)

// File is the on-disk form of a raster: attributes followed by the grid,
// gob-encoded and gzip-compressed in a single .dgr file.
type File struct {
	Attrs Attrs
	Data  []float64
}

// encode compresses a raster using gob encoding and gzip compression.
func encode(f *File) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	enc := gob.NewEncoder(gz)
	if err := enc.Encode(f); err != nil {
		gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decode decompresses and decodes a raster blob.
func decode(blob []byte) (*File, error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("empty raster blob")
	}
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	var f File
	dec := gob.NewDecoder(gz)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode raster: %w", err)
	}
	return &f, nil
}

// Write stores a grid and its attributes at path. The grid length must match
// attrs.Width*attrs.Length.
func Write(data []float64, attrs Attrs, path string) error {
	if len(data) != attrs.Width*attrs.Length {
		return fmt.Errorf("data length %d does not match %dx%d grid",
			len(data), attrs.Width, attrs.Length)
	}
	blob, err := encode(&File{Attrs: attrs, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode raster: %w", err)
	}
	if err := os.WriteFile(path, blob, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Read loads a complete raster file.
func Read(path string) (*Raster, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	f, err := decode(blob)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(f.Data) != f.Attrs.Width*f.Attrs.Length {
		return nil, fmt.Errorf("%s: data length %d does not match %dx%d grid",
			path, len(f.Data), f.Attrs.Width, f.Attrs.Length)
	}
	return &Raster{Attrs: f.Attrs, Data: f.Data}, nil
}

// ReadAttrs loads only the attribute set of a raster file.
// The whole file is still decoded; .dgr files are small enough that a
// separate header codec is not worth the format complexity.
func ReadAttrs(path string) (*Attrs, error) {
	r, err := Read(path)
	if err != nil {
		return nil, err
	}
	return &r.Attrs, nil
}

// ReadWindow loads the pixel sub-window w of the raster at path as a
// row-major grid of w.Length() rows by w.Width() columns.
func ReadWindow(path string, w Window) ([]float64, error) {
	r, err := Read(path)
	if err != nil {
		return nil, err
	}
	vals, err := r.Extract(w)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vals, nil
}
