// Package libmatrix is a dense matrix value type for Go built on gonum.
//
// What is it?
//
//	A small library that gives a gonum-backed float64 buffer value semantics:
//		• matrix/   : Matrix: New, NewFrom/Clone, Assign, Swap, Release,
//		              Rows/Cols/Shape, At/Set/Ref
//		• buffer/   : the allocator behind it: alloc/calloc/free, element
//		              access, copy, memory ceiling and accounting
//
// Guarantees:
//
//   - One owner per buffer; copies are deep, swaps are free.
//   - Assign either fully succeeds or leaves the receiver untouched.
//   - Empty matrices fail loudly (matrix.ErrInvalidMatrix), never silently.
//
// The command in cmd/libmatrix demonstrates the package and reads/writes
// matrices as YAML.
//
//	go get github.com/katalvlaran/libmatrix
package libmatrix
