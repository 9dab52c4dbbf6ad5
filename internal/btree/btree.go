// Package btree implements key-ordered search and insertion over leaf
// nodes. Only a single-leaf root is supported: splitting, either of a
// leaf that has filled up or of an internal node, is not implemented and
// is a documented fatal condition rather than an oversight (see
// SPEC_FULL.md §4.3 and the Non-goals in §1).
package btree

import (
	"github.com/tinybase/tinybase/internal/dberrors"
	"github.com/tinybase/tinybase/internal/format"
	"github.com/tinybase/tinybase/internal/pager"
	"github.com/tinybase/tinybase/internal/row"
	"github.com/tinybase/tinybase/internal/storage"
)

// Table is the tree's entry point: a pager plus the fixed root page
// number. There is exactly one table in this system (see Non-goals).
type Table struct {
	Pager       *pager.Pager
	RootPageNum uint32
}

// Open wraps an already-opened pager in a Table rooted at
// format.RootPageNum, initializing page 0 as an empty leaf if the pager
// reports no pages yet (a brand new database file).
func Open(p *pager.Pager) (*Table, error) {
	t := &Table{Pager: p, RootPageNum: format.RootPageNum}
	if p.NumPages() == 0 {
		root, err := p.GetPage(format.RootPageNum)
		if err != nil {
			return nil, err
		}
		storage.InitializeLeaf(root)
	}
	return t, nil
}

// NumCells reports the root leaf's current cell count, used by the
// executor to detect a full table before attempting an insert.
func NumCells(t *Table) (uint32, error) {
	page, err := t.Pager.GetPage(t.RootPageNum)
	if err != nil {
		return 0, err
	}
	return storage.NumCells(page), nil
}

// KeyAt returns the key stored in the root leaf's cell i, used by the
// REPL's ".btree" diagnostic to print the tree without reaching past
// this package into the node codec.
func KeyAt(t *Table, i uint32) (uint32, error) {
	page, err := t.Pager.GetPage(t.RootPageNum)
	if err != nil {
		return 0, err
	}
	return storage.Key(page, i), nil
}

// Start returns a cursor at the first cell of the tree.
func Start(t *Table) (*Cursor, error) {
	page, err := t.Pager.GetPage(t.RootPageNum)
	if err != nil {
		return nil, err
	}
	return &Cursor{
		pager:      t.Pager,
		pageNum:    t.RootPageNum,
		cellNum:    0,
		EndOfTable: storage.NumCells(page) == 0,
	}, nil
}

// Find returns a cursor positioned at key, or at the cell key would
// occupy if inserted (the caller checks CellNum against NumCells and the
// key there to detect a duplicate). The root must be a leaf: this B-tree
// never creates internal nodes, so a root of any other type means the
// on-disk format has been corrupted by something outside this package.
func Find(t *Table, key uint32) (*Cursor, error) {
	root, err := t.Pager.GetPage(t.RootPageNum)
	if err != nil {
		return nil, err
	}
	if storage.NodeType(root) != format.NodeLeaf {
		return nil, dberrors.NewFatal("Need to implement searching an internal node")
	}
	return leafFind(t, t.RootPageNum, key)
}

// leafFind performs a binary search over the leaf's cells for key,
// narrowing the half-open interval [min, onePastMax) until it collapses
// to the insertion point.
func leafFind(t *Table, pageNum uint32, key uint32) (*Cursor, error) {
	page, err := t.Pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	numCells := storage.NumCells(page)

	min, onePastMax := uint32(0), numCells
	for min != onePastMax {
		mid := (min + onePastMax) / 2
		keyAtMid := storage.Key(page, mid)
		switch {
		case key == keyAtMid:
			return &Cursor{pager: t.Pager, pageNum: pageNum, cellNum: mid}, nil
		case key < keyAtMid:
			onePastMax = mid
		default:
			min = mid + 1
		}
	}

	return &Cursor{pager: t.Pager, pageNum: pageNum, cellNum: min}, nil
}

// LeafInsert writes (key, r) into the cell cursor points at, shifting
// every following cell one slot right first. The caller is responsible
// for having already rejected a duplicate key at this position: this
// function only enforces capacity, not uniqueness.
func LeafInsert(cursor *Cursor, key uint32, r row.Row) error {
	page, err := cursor.pager.GetPage(cursor.pageNum)
	if err != nil {
		return err
	}
	numCells := storage.NumCells(page)

	if numCells >= format.LeafNodeMaxCells {
		return dberrors.NewFatal("Need to implement splitting a leaf node")
	}

	for i := numCells; i > cursor.cellNum; i-- {
		copy(storage.Cell(page, i), storage.Cell(page, i-1))
	}

	storage.SetNumCells(page, numCells+1)
	storage.SetKey(page, cursor.cellNum, key)
	if err := row.Serialize(r, storage.Value(page, cursor.cellNum)); err != nil {
		return err
	}
	return nil
}
