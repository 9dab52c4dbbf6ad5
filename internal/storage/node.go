// Package storage is the node codec: pure accessors over a single
// 4096-byte page frame that read and write the typed fields of a leaf
// node's header and cell array. It never touches the pager or the file;
// it only knows how to interpret bytes it is handed.
package storage

import (
	"encoding/binary"

	"github.com/tinybase/tinybase/internal/format"
)

// NodeType returns the node-type byte at the start of the common header.
func NodeType(page []byte) format.NodeType {
	return format.NodeType(page[format.NodeTypeOffset])
}

// SetNodeType writes the node-type byte at the start of the common
// header.
func SetNodeType(page []byte, t format.NodeType) {
	page[format.NodeTypeOffset] = byte(t)
}

// NumCells returns the leaf header's cell count.
func NumCells(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[format.LeafNodeNumCellsOffset:])
}

// SetNumCells overwrites the leaf header's cell count.
func SetNumCells(page []byte, n uint32) {
	binary.LittleEndian.PutUint32(page[format.LeafNodeNumCellsOffset:], n)
}

// cellOffset returns the byte offset of cell i within the page.
func cellOffset(i uint32) int {
	return format.LeafNodeHeaderSize + int(i)*format.LeafNodeCellSize
}

// Cell returns the full (key, value) region for cell i: a
// format.LeafNodeCellSize-byte slice aliasing the page.
func Cell(page []byte, i uint32) []byte {
	off := cellOffset(i)
	return page[off : off+format.LeafNodeCellSize]
}

// Key returns the key stored in cell i.
func Key(page []byte, i uint32) uint32 {
	cell := Cell(page, i)
	return binary.LittleEndian.Uint32(cell[format.LeafNodeKeyOffset:])
}

// SetKey overwrites the key stored in cell i.
func SetKey(page []byte, i uint32, key uint32) {
	cell := Cell(page, i)
	binary.LittleEndian.PutUint32(cell[format.LeafNodeKeyOffset:], key)
}

// Value returns the row-value region of cell i: a format.RowSize-byte
// slice aliasing the page, ready for row.Serialize/row.Deserialize.
func Value(page []byte, i uint32) []byte {
	cell := Cell(page, i)
	return cell[format.LeafNodeValueOffset : format.LeafNodeValueOffset+format.LeafNodeValueSize]
}

// InitializeLeaf marks page as an empty leaf node: node type Leaf, zero
// cells. Other header fields (is_root, parent pointer) are left as-is,
// which is zero for a freshly allocated frame.
func InitializeLeaf(page []byte) {
	SetNodeType(page, format.NodeLeaf)
	SetNumCells(page, 0)
}
