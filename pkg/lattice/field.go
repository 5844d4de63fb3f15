package lattice

// Cell addresses a lattice point.
type Cell struct {
	Col, Row int
}

// Field is a dense cols×rows buffer of heights stored column by column.
type Field struct {
	cols, rows int
	data       []float64
}

// NewField returns a zeroed field.
func NewField(cols, rows int) *Field {
	return &Field{cols: cols, rows: rows, data: make([]float64, cols*rows)}
}

// In reports whether (col,row) lies on the lattice.
func (f *Field) In(col, row int) bool {
	return 0 <= col && col < f.cols && 0 <= row && row < f.rows
}

// Index returns the offset of (col,row) in Values.
func (f *Field) Index(col, row int) int {
	return col*f.rows + row
}

// At returns the value at (col,row), which must lie on the lattice.
func (f *Field) At(col, row int) float64 {
	return f.data[f.Index(col, row)]
}

// AtOrZero returns the value at (col,row), or 0 off the lattice.
func (f *Field) AtOrZero(col, row int) float64 {
	if !f.In(col, row) {
		return 0
	}
	return f.data[f.Index(col, row)]
}

// Set stores v at (col,row).
func (f *Field) Set(col, row int, v float64) {
	f.data[f.Index(col, row)] = v
}

// Fill sets every value to v.
func (f *Field) Fill(v float64) {
	for i := range f.data {
		f.data[i] = v
	}
}

// Max returns the largest value, or 0 for an empty field.
func (f *Field) Max() float64 {
	m := 0.0
	for i, v := range f.data {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// Values exposes the backing buffer.
func (f *Field) Values() []float64 {
	return f.data
}

// Swap exchanges the buffers of two same-shaped fields without copying.
func (f *Field) Swap(g *Field) {
	f.data, g.data = g.data, f.data
}

// Mask marks the lattice points that lie inside the polygon.
type Mask struct {
	cols, rows int
	data       []bool
}

// NewMask returns a mask with every cell outside.
func NewMask(cols, rows int) *Mask {
	return &Mask{cols: cols, rows: rows, data: make([]bool, cols*rows)}
}

// Inside reports whether (col,row) is on the lattice and marked.
func (m *Mask) Inside(col, row int) bool {
	return 0 <= col && col < m.cols && 0 <= row && row < m.rows && m.data[col*m.rows+row]
}

// Set marks or clears (col,row).
func (m *Mask) Set(col, row int, inside bool) {
	m.data[col*m.rows+row] = inside
}

// Count returns the number of marked cells.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.data {
		if b {
			n++
		}
	}
	return n
}

// Points returns the marked cells, column by column.
func (m *Mask) Points() []Cell {
	var out []Cell
	for col := 0; col < m.cols; col++ {
		for row := 0; row < m.rows; row++ {
			if m.data[col*m.rows+row] {
				out = append(out, Cell{Col: col, Row: row})
			}
		}
	}
	return out
}
