// Package pager is the sole gateway between page numbers and bytes on
// disk. It enforces the page-frame cache and never interprets page
// contents — that is the node codec's job (internal/storage).
package pager

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/tinybase/tinybase/internal/config"
	"github.com/tinybase/tinybase/internal/dberrors"
	"github.com/tinybase/tinybase/internal/format"
)

// Pager owns a single file's descriptor and a demand-populated cache of
// fixed-size page frames. It never tracks a dirty bit: every cached
// frame is written back unconditionally on Close, since the working set
// in this system is always small.
type Pager struct {
	file       *os.File
	fileLength int64
	numPages   uint32
	frames     [][]byte // nil entry == cache miss, not yet loaded
	log        *zap.Logger
}

// Open opens filename for read/write, creating it if absent, and
// initializes numPages from the file's current length. A file length
// that is not a whole number of pages is fatal: the format guarantees
// (see internal/format) that a cleanly closed database is always a
// multiple of format.PageSize.
func Open(filename string, log *zap.Logger) (*Pager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, dberrors.WrapFatal("Unable to open file", err)
	}

	length, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return nil, dberrors.WrapFatal("Unable to open file", err)
	}

	if length%format.PageSize != 0 {
		f.Close()
		return nil, dberrors.NewFatal("DB file is not a whole number of pages. Corrupt file.")
	}

	p := &Pager{
		file:       f,
		fileLength: length,
		numPages:   uint32(length / format.PageSize),
		frames:     make([][]byte, config.TableMaxPages),
		log:        log,
	}
	log.Debug("pager opened", zap.String("file", filename), zap.Uint32("num_pages", p.numPages))
	return p, nil
}

// NumPages reports how many pages logically exist, including any pages
// that exist only because GetPage extended the table but have not been
// flushed yet.
func (p *Pager) NumPages() uint32 { return p.numPages }

// GetPage returns the frame for pageNum, loading it from disk on first
// access. Bytes beyond the current end of file are left zeroed. The
// returned slice is owned by the pager and aliases the cached frame:
// callers must not retain it across operations that might evict or
// mutate another frame (this pager never evicts, but the contract is the
// same one a real buffer pool would enforce).
func (p *Pager) GetPage(pageNum uint32) ([]byte, error) {
	if pageNum >= uint32(config.TableMaxPages) {
		return nil, dberrors.NewFatal("Tried to fetch page number out of bounds. Table full.")
	}

	if p.frames[pageNum] == nil {
		frame := make([]byte, format.PageSize)

		totalPagesOnDisk := uint32(p.fileLength / format.PageSize)
		if p.fileLength%format.PageSize != 0 {
			totalPagesOnDisk++
		}

		if pageNum < totalPagesOnDisk {
			if _, err := p.file.Seek(int64(pageNum)*format.PageSize, io.SeekStart); err != nil {
				return nil, dberrors.WrapFatal("Error seeking", err)
			}
			if _, err := io.ReadFull(p.file, frame); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
				return nil, dberrors.WrapFatal("Error reading file", err)
			}
		}

		p.frames[pageNum] = frame
		if pageNum >= p.numPages {
			p.numPages = pageNum + 1
		}
		p.log.Debug("page cache miss", zap.Uint32("page", pageNum))
	}

	return p.frames[pageNum], nil
}

// Flush writes frame pageNum back to its offset in the file. The frame
// must already be cached; flushing an unloaded page is a programming
// error in this pager (there is never a reason to flush something that
// was never read or written) and is fatal, matching the reference.
func (p *Pager) Flush(pageNum uint32) error {
	if p.frames[pageNum] == nil {
		return dberrors.NewFatal("Tried to flush null page")
	}
	if _, err := p.file.Seek(int64(pageNum)*format.PageSize, io.SeekStart); err != nil {
		return dberrors.WrapFatal("Error seeking", err)
	}
	if _, err := p.file.Write(p.frames[pageNum]); err != nil {
		return dberrors.WrapFatal("Error writing", err)
	}
	if int64(pageNum)*format.PageSize+format.PageSize > p.fileLength {
		p.fileLength = int64(pageNum)*format.PageSize + format.PageSize
	}
	return nil
}

// Close flushes every cached page with a page number below NumPages,
// then closes the underlying file. Frames cached past NumPages (there is
// no such path in this version of the pager, since GetPage always
// advances numPages to cover whatever it loads) would be released
// without flushing.
func (p *Pager) Close() error {
	for i := uint32(0); i < p.numPages; i++ {
		if p.frames[i] == nil {
			continue
		}
		if err := p.Flush(i); err != nil {
			return err
		}
		p.frames[i] = nil
	}
	if err := p.file.Close(); err != nil {
		return dberrors.WrapFatal("Error closing db file", err)
	}
	p.log.Debug("pager closed", zap.Uint32("num_pages", p.numPages))
	return nil
}
