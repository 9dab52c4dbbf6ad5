package btree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinybase/tinybase/internal/dberrors"
	"github.com/tinybase/tinybase/internal/format"
	"github.com/tinybase/tinybase/internal/pager"
	"github.com/tinybase/tinybase/internal/row"
)

func openTable(t *testing.T) *Table {
	p, err := pager.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	table, err := Open(p)
	require.NoError(t, err)
	return table
}

func insert(t *testing.T, table *Table, id uint32) {
	cursor, err := Find(table, id)
	require.NoError(t, err)
	require.NoError(t, LeafInsert(cursor, id, row.Row{ID: id, Username: "u", Email: "e"}))
}

func keys(t *testing.T, table *Table) []uint32 {
	n, err := NumCells(table)
	require.NoError(t, err)
	out := make([]uint32, n)
	for i := uint32(0); i < n; i++ {
		k, err := KeyAt(table, i)
		require.NoError(t, err)
		out[i] = k
	}
	return out
}

func TestOpenInitializesEmptyLeaf(t *testing.T) {
	table := openTable(t)
	n, err := NumCells(table)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), n)

	cursor, err := Start(table)
	require.NoError(t, err)
	assert.True(t, cursor.EndOfTable)
}

// TestInsertOrderPreservation is P7: regardless of insertion order, the
// resulting leaf's keys are sorted ascending.
func TestInsertOrderPreservation(t *testing.T) {
	table := openTable(t)
	for _, id := range []uint32{3, 1, 2} {
		insert(t, table, id)
	}
	assert.Equal(t, []uint32{1, 2, 3}, keys(t, table))
}

func TestFindLocatesExistingKey(t *testing.T) {
	table := openTable(t)
	for _, id := range []uint32{10, 20, 30} {
		insert(t, table, id)
	}

	cursor, err := Find(table, 20)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), cursor.CellNum())
}

func TestFindReturnsInsertionPointForMissingKey(t *testing.T) {
	table := openTable(t)
	for _, id := range []uint32{10, 30} {
		insert(t, table, id)
	}

	cursor, err := Find(table, 20)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), cursor.CellNum())
}

// TestCapacityFatal is the unit-level analogue of P5: inserting one past
// format.LeafNodeMaxCells distinct keys is fatal at the B-tree layer
// (the executor in internal/vm turns this into ExecuteTableFull before
// ever reaching here, by checking NumCells first).
func TestCapacityFatal(t *testing.T) {
	table := openTable(t)
	for id := uint32(0); id < format.LeafNodeMaxCells; id++ {
		insert(t, table, id)
	}

	cursor, err := Find(table, format.LeafNodeMaxCells)
	require.NoError(t, err)
	err = LeafInsert(cursor, format.LeafNodeMaxCells, row.Row{ID: format.LeafNodeMaxCells})
	require.Error(t, err)
	var fatal *dberrors.Fatal
	assert.ErrorAs(t, err, &fatal)
}

func TestCursorAdvanceReachesEndOfTable(t *testing.T) {
	table := openTable(t)
	for _, id := range []uint32{1, 2} {
		insert(t, table, id)
	}

	cursor, err := Start(table)
	require.NoError(t, err)

	var seen []uint32
	for !cursor.EndOfTable {
		r, err := cursor.Row()
		require.NoError(t, err)
		seen = append(seen, r.ID)
		require.NoError(t, cursor.Advance())
	}
	assert.Equal(t, []uint32{1, 2}, seen)
}
