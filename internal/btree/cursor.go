package btree

import (
	"github.com/tinybase/tinybase/internal/pager"
	"github.com/tinybase/tinybase/internal/row"
	"github.com/tinybase/tinybase/internal/storage"
)

// Cursor is a logical position (page, cell) inside the tree. It never
// pins a page frame: it re-borrows the frame from the pager on every
// access, so it is safe to hold across operations that might touch other
// pages (there is only ever one page today, but the discipline matters
// once a multi-leaf tree exists).
type Cursor struct {
	pager      *pager.Pager
	pageNum    uint32
	cellNum    uint32
	EndOfTable bool // one past the last element
}

// Value returns the row-value region the cursor currently points at.
func (c *Cursor) Value() ([]byte, error) {
	page, err := c.pager.GetPage(c.pageNum)
	if err != nil {
		return nil, err
	}
	return storage.Value(page, c.cellNum), nil
}

// Row decodes the row the cursor currently points at.
func (c *Cursor) Row() (row.Row, error) {
	v, err := c.Value()
	if err != nil {
		return row.Row{}, err
	}
	return row.Deserialize(v)
}

// Advance moves the cursor to the next cell, setting EndOfTable once the
// cell count on the current leaf is exhausted. With a single leaf there
// is no sibling to chase, so advancing past the last cell always ends
// the scan.
func (c *Cursor) Advance() error {
	page, err := c.pager.GetPage(c.pageNum)
	if err != nil {
		return err
	}
	c.cellNum++
	c.EndOfTable = c.cellNum >= storage.NumCells(page)
	return nil
}

// CellNum exposes the cursor's current cell position, used by the
// executor to detect a duplicate key after Find.
func (c *Cursor) CellNum() uint32 { return c.cellNum }

// Key returns the key stored at the cursor's current cell. The caller
// must have already established cellNum < NumCells (e.g. just after
// Find), since this does not itself bounds-check against the cell count.
func (c *Cursor) Key() (uint32, error) {
	page, err := c.pager.GetPage(c.pageNum)
	if err != nil {
		return 0, err
	}
	return storage.Key(page, c.cellNum), nil
}
