package simmatrix

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a symmetric similarity table over deduplicated sentences.
type Matrix struct {
	// sym is nil for an empty matrix; gonum rejects zero-sized matrices.
	sym       *mat.SymDense
	sentences []string
}

// NewIdentity returns an n×n matrix with 1 on the diagonal and 0 elsewhere.
// Node labels are their decimal indices.
func NewIdentity(n int) (*Matrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrInvalidArgument, n)
	}
	sentences := make([]string, n)
	for i := range sentences {
		sentences[i] = strconv.Itoa(i)
	}
	return newMatrix(sentences), nil
}

func newMatrix(sentences []string) *Matrix {
	m := &Matrix{sentences: sentences}
	if n := len(sentences); n > 0 {
		m.sym = mat.NewSymDense(n, nil)
		for i := 0; i < n; i++ {
			m.sym.SetSym(i, i, 1)
		}
	}
	return m
}

// Size returns the number of nodes.
func (m *Matrix) Size() int {
	return len(m.sentences)
}

// At returns the similarity between nodes i and j and panics when either
// index is out of range. Use Similarity for checked access.
func (m *Matrix) At(i, j int) float64 {
	if err := m.checkIndex(i, j); err != nil {
		panic(err)
	}
	return m.sym.At(i, j)
}

// Similarity returns the similarity between nodes i and j.
func (m *Matrix) Similarity(i, j int) (float64, error) {
	if err := m.checkIndex(i, j); err != nil {
		return 0, err
	}
	return m.sym.At(i, j), nil
}

// SetSimilarity stores value for both (i, j) and (j, i). Values must lie in
// [0,1]; the diagonal only accepts 1.
func (m *Matrix) SetSimilarity(i, j int, value float64) error {
	if err := m.checkIndex(i, j); err != nil {
		return err
	}
	if math.IsNaN(value) || value < 0 || value > 1 {
		return fmt.Errorf("%w: %v not in [0,1]", ErrInvalidScore, value)
	}
	if i == j {
		if value != 1 {
			return fmt.Errorf("%w: diagonal (%d,%d) must stay 1, got %v", ErrInvalidScore, i, j, value)
		}
		return nil
	}
	m.sym.SetSym(i, j, value)
	return nil
}

// Sentence returns the signature of node i.
func (m *Matrix) Sentence(i int) (string, error) {
	if i < 0 || i >= len(m.sentences) {
		return "", fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, i, len(m.sentences))
	}
	return m.sentences[i], nil
}

// Sentences returns a copy of all node signatures in index order.
func (m *Matrix) Sentences() []string {
	out := make([]string, len(m.sentences))
	copy(out, m.sentences)
	return out
}

// Rows returns a dense copy of the matrix.
func (m *Matrix) Rows() [][]float64 {
	n := m.Size()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			rows[i][j] = m.sym.At(i, j)
		}
	}
	return rows
}

// String renders the lower triangle of the matrix with node indices as row
// and column headers and "-" on the diagonal.
func (m *Matrix) String() string {
	n := m.Size()
	var b strings.Builder
	b.WriteString("      ")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%-5d ", i)
	}
	b.WriteByte('\n')
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%-5d ", i)
		for j := 0; j < i; j++ {
			fmt.Fprintf(&b, "%1.3f ", m.sym.At(i, j))
		}
		b.WriteString("  -   ")
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *Matrix) checkIndex(i, j int) error {
	n := len(m.sentences)
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, i, n)
	}
	if j < 0 || j >= n {
		return fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, j, n)
	}
	return nil
}
