// Package grid holds the multi-select model shown before the viewer: a list of
// containers split into fixed-size pages of cols x rows cells.
package grid

import "math"

// Default layout of a page.
const (
	DefaultColumns = 4
	DefaultRows    = 3
)

// Entry is one selectable container.
type Entry struct {
	Path     string
	Selected bool
}

// Model is the grid selection state. It is not safe for concurrent use.
type Model struct {
	entries   []Entry
	pageIndex int
	cols      int
	rows      int
}

// NewModel creates a model over paths laid out cols x rows per page.
// Non-positive dimensions fall back to the defaults.
func NewModel(paths []string, cols, rows int) *Model {
	if cols <= 0 {
		cols = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}

	entries := make([]Entry, len(paths))
	for i, p := range paths {
		entries[i] = Entry{Path: p}
	}
	return &Model{
		entries: entries,
		cols:    cols,
		rows:    rows,
	}
}

// Columns returns the number of cells per row.
func (m *Model) Columns() int { return m.cols }

// Rows returns the number of rows per page.
func (m *Model) Rows() int { return m.rows }

// PageSize returns the number of cells on a page.
func (m *Model) PageSize() int {
	return m.cols * m.rows
}

// Len returns the total number of entries.
func (m *Model) Len() int {
	return len(m.entries)
}

// PageCount returns ceil(Len / PageSize). It is zero for an empty model.
func (m *Model) PageCount() int {
	size := m.PageSize()
	return (len(m.entries) + size - 1) / size
}

// PageIndex returns the zero-based index of the current page.
func (m *Model) PageIndex() int {
	return m.pageIndex
}

// PageOffset returns the flat index of the first entry on the current page.
func (m *Model) PageOffset() int {
	return m.pageIndex * m.PageSize()
}

// NextPage moves to the following page; no-op on the last page.
func (m *Model) NextPage() bool {
	if m.pageIndex >= m.PageCount()-1 {
		return false
	}
	m.pageIndex++
	return true
}

// PreviousPage moves to the preceding page; no-op on the first page.
func (m *Model) PreviousPage() bool {
	if m.pageIndex == 0 {
		return false
	}
	m.pageIndex--
	return true
}

// CurrentPage returns the entries on the current page. The slice aliases the
// model and must not be retained across mutations.
func (m *Model) CurrentPage() []Entry {
	start := min(m.PageOffset(), len(m.entries))
	end := min(start+m.PageSize(), len(m.entries))
	return m.entries[start:end]
}

// CurrentPagePaths returns the paths on the current page in cell order.
func (m *Model) CurrentPagePaths() []string {
	page := m.CurrentPage()
	paths := make([]string, len(page))
	for i, e := range page {
		paths[i] = e.Path
	}
	return paths
}

// IndexAt maps a pointer position inside a width x height viewport to the flat
// index of the entry under it. ok is false when the position is outside the
// grid or the cell is empty.
func (m *Model) IndexAt(x, y float64, width, height int) (index int, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, false
	}

	col := int(math.Floor(x / float64(width) * float64(m.cols)))
	row := int(math.Floor(y / float64(height) * float64(m.rows)))
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return 0, false
	}

	index = m.PageOffset() + row*m.cols + col
	if index >= len(m.entries) {
		return 0, false
	}
	return index, true
}

// ToggleAt flips the selection of the entry under the pointer. It reports
// whether an entry was toggled.
func (m *Model) ToggleAt(x, y float64, width, height int) bool {
	index, ok := m.IndexAt(x, y, width, height)
	if !ok {
		return false
	}
	m.Toggle(index)
	return true
}

// Toggle flips the selection of the entry at flat index i. Out of range
// indices are ignored.
func (m *Model) Toggle(i int) {
	if i < 0 || i >= len(m.entries) {
		return
	}
	m.entries[i].Selected = !m.entries[i].Selected
}

// Entry returns the entry at flat index i.
func (m *Model) Entry(i int) Entry {
	return m.entries[i]
}

// SelectedCount returns how many entries are selected.
func (m *Model) SelectedCount() int {
	n := 0
	for _, e := range m.entries {
		if e.Selected {
			n++
		}
	}
	return n
}

// SelectedPaths returns the selected paths in list order, regardless of the
// order in which they were selected.
func (m *Model) SelectedPaths() []string {
	var paths []string
	for _, e := range m.entries {
		if e.Selected {
			paths = append(paths, e.Path)
		}
	}
	return paths
}
