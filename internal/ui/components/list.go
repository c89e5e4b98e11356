package components

// List is a cursor over string items that scrolls a fixed-height window.
type List struct {
	Items    []string
	Cursor   int
	Offset   int
	PageSize int
}

// NewList returns an empty list showing pageSize items at a time.
func NewList(pageSize int) *List {
	return &List{PageSize: pageSize}
}

// SetItems replaces the items and rewinds the cursor.
func (l *List) SetItems(items []string) {
	l.Items = items
	l.Cursor, l.Offset = 0, 0
}

// Up moves the cursor one item up.
func (l *List) Up() { l.Move(-1) }

// Down moves the cursor one item down.
func (l *List) Down() { l.Move(1) }

// Move shifts the cursor by delta, stopping at either end.
func (l *List) Move(delta int) {
	l.Select(l.Cursor + delta)
}

// Select places the cursor on idx, clamped to the items, and scrolls the
// window so the cursor stays visible.
func (l *List) Select(idx int) {
	if len(l.Items) == 0 {
		l.Cursor, l.Offset = 0, 0
		return
	}
	l.Cursor = min(max(idx, 0), len(l.Items)-1)
	switch {
	case l.Cursor < l.Offset:
		l.Offset = l.Cursor
	case l.PageSize > 0 && l.Cursor >= l.Offset+l.PageSize:
		l.Offset = l.Cursor - l.PageSize + 1
	}
}

// Selected returns the cursor index.
func (l *List) Selected() int {
	return l.Cursor
}

// Visible returns the items inside the scroll window.
func (l *List) Visible() []string {
	if len(l.Items) == 0 {
		return nil
	}
	end := len(l.Items)
	if l.PageSize > 0 {
		end = min(l.Offset+l.PageSize, end)
	}
	return l.Items[l.Offset:end]
}
