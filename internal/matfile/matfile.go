// SPDX-License-Identifier: MIT

// Package matfile reads and writes matrices as small YAML documents:
//
//	rows: 2
//	cols: 3
//	data:
//	  - [5, 0, 0]
//	  - [0, 0, 9]
//
// rows and cols may be omitted; they are then taken from data.
package matfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/libmatrix/matrix"
	"gopkg.in/yaml.v3"
)

// ErrShape is returned when data disagrees with the declared rows/cols.
var ErrShape = errors.New("matfile: data does not match rows/cols")

type document struct {
	Rows int         `yaml:"rows"`
	Cols int         `yaml:"cols"`
	Data [][]float64 `yaml:"data,flow"`
}

// Decode reads one YAML matrix document from r.
// Allocation failures surface as matrix.ErrAllocation.
func Decode(r io.Reader, opts ...matrix.Option) (*matrix.Matrix, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("matfile: decode: %w", err)
	}
	if doc.Rows == 0 && doc.Cols == 0 && len(doc.Data) > 0 {
		doc.Rows, doc.Cols = len(doc.Data), len(doc.Data[0])
	}
	if len(doc.Data) != doc.Rows {
		return nil, fmt.Errorf("%w: %d rows declared, %d present", ErrShape, doc.Rows, len(doc.Data))
	}
	for i, row := range doc.Data {
		if len(row) != doc.Cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrShape, i, len(row), doc.Cols)
		}
	}

	m, err := matrix.New(doc.Rows, doc.Cols, opts...)
	if err != nil {
		return nil, err
	}
	for i, row := range doc.Data {
		for j, v := range row {
			if err = m.Set(i, j, v); err != nil {
				_ = m.Release()
				return nil, err
			}
		}
	}

	return m, nil
}

// Load decodes the matrix stored at path.
func Load(path string, opts ...matrix.Option) (*matrix.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, opts...)
}

// Encode writes m to w. An empty matrix fails with matrix.ErrInvalidMatrix.
func Encode(w io.Writer, m *matrix.Matrix) error {
	rows, cols, err := m.Shape()
	if err != nil {
		return err
	}
	doc := document{Rows: rows, Cols: cols, Data: make([][]float64, rows)}
	for i := range doc.Data {
		doc.Data[i] = make([]float64, cols)
		for j := range doc.Data[i] {
			if doc.Data[i][j], err = m.At(i, j); err != nil {
				return err
			}
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err = enc.Encode(&doc); err != nil {
		return fmt.Errorf("matfile: encode: %w", err)
	}

	return enc.Close()
}

// Save writes m to path, replacing any existing file.
func Save(path string, m *matrix.Matrix) error {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
