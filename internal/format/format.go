// Package format pins the on-disk byte layout shared by the pager, the
// node codec, and the row codec. Every size below is part of the file
// format: changing one changes what bytes already on disk mean.
package format

// NodeType distinguishes an internal node from a leaf node in the common
// node header. Internal nodes are never constructed by this version of
// the B-tree; the type byte exists so the layout has room for them later.
type NodeType uint8

const (
	NodeInternal NodeType = iota
	NodeLeaf
)

const (
	// PageSize is the frame size the pager reads and writes. It is also
	// the unit files grow by: file length is always a multiple of it.
	PageSize = 4096

	// TableMaxPages bounds how many page frames the pager will ever cache.
	// Requesting a page number at or beyond this is fatal.
	TableMaxPages = 100

	// RootPageNum is the fixed entry point of the tree. There is no
	// free-page list or root relocation; page 0 is always the root.
	RootPageNum = 0
)

// Row field widths. USERNAME_SIZE and EMAIL_SIZE each include one byte of
// headroom beyond the advertised column capacity (32 and 255 respectively),
// matching the reference tutorial's struct layout.
const (
	IDSize       = 4
	UsernameSize = 32 + 1
	EmailSize    = 255 + 1

	IDOffset       = 0
	UsernameOffset = IDOffset + IDSize
	EmailOffset    = UsernameOffset + UsernameSize

	RowSize = IDSize + UsernameSize + EmailSize // 293

	// UsernameCap and EmailCap are the validated column capacities: one
	// byte less than the storage width, so a zero terminator always fits.
	UsernameCap = UsernameSize - 1
	EmailCap    = EmailSize - 1
)

// Common node header: node type, root flag, parent page pointer.
const (
	NodeTypeSize         = 1
	NodeTypeOffset       = 0
	IsRootSize           = 1
	IsRootOffset         = NodeTypeOffset + NodeTypeSize
	ParentPointerSize    = 4
	ParentPointerOffset  = IsRootOffset + IsRootSize
	CommonNodeHeaderSize = NodeTypeSize + IsRootSize + ParentPointerSize // 6
)

// Leaf node header: cell count, immediately after the common header.
const (
	LeafNodeNumCellsSize   = 4
	LeafNodeNumCellsOffset = CommonNodeHeaderSize
	LeafNodeHeaderSize     = CommonNodeHeaderSize + LeafNodeNumCellsSize // 10
)

// Leaf node body: a packed array of (key, value) cells.
const (
	LeafNodeKeySize     = 4
	LeafNodeKeyOffset   = 0
	LeafNodeValueSize   = RowSize
	LeafNodeValueOffset = LeafNodeKeySize
	LeafNodeCellSize    = LeafNodeKeySize + LeafNodeValueSize // 297

	LeafNodeSpaceForCells = PageSize - LeafNodeHeaderSize
	LeafNodeMaxCells      = LeafNodeSpaceForCells / LeafNodeCellSize // 13
)
