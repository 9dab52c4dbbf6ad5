package pager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinybase/tinybase/internal/config"
	"github.com/tinybase/tinybase/internal/dberrors"
	"github.com/tinybase/tinybase/internal/format"
)

func tempDBPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "test.db")
}

func TestOpenFreshFileHasZeroPages(t *testing.T) {
	p, err := Open(tempDBPath(t), nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), p.NumPages())
}

func TestGetPageAllocatesZeroedFrame(t *testing.T) {
	p, err := Open(tempDBPath(t), nil)
	require.NoError(t, err)

	page, err := p.GetPage(0)
	require.NoError(t, err)
	require.Len(t, page, format.PageSize)
	for _, b := range page {
		assert.Equal(t, byte(0), b)
	}
	assert.Equal(t, uint32(1), p.NumPages())
}

func TestFlushThenReopenPersistsBytes(t *testing.T) {
	path := tempDBPath(t)

	p, err := Open(path, nil)
	require.NoError(t, err)
	page, err := p.GetPage(0)
	require.NoError(t, err)
	page[0] = 0x42
	require.NoError(t, p.Close())

	p2, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), p2.NumPages())

	reloaded, err := p2.GetPage(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), reloaded[0])
}

func TestOpenRejectsPartialPageFile(t *testing.T) {
	path := tempDBPath(t)
	require.NoError(t, os.WriteFile(path, make([]byte, format.PageSize+1), 0644))

	_, err := Open(path, nil)
	require.Error(t, err)
	var fatal *dberrors.Fatal
	assert.ErrorAs(t, err, &fatal)
}

func TestGetPageOutOfBoundsIsFatal(t *testing.T) {
	original := config.TableMaxPages
	config.TableMaxPages = 2
	t.Cleanup(func() { config.TableMaxPages = original })

	p, err := Open(tempDBPath(t), nil)
	require.NoError(t, err)

	_, err = p.GetPage(0)
	require.NoError(t, err)
	_, err = p.GetPage(1)
	require.NoError(t, err)

	_, err = p.GetPage(2)
	require.Error(t, err)
	var fatal *dberrors.Fatal
	assert.ErrorAs(t, err, &fatal)
}

func TestFlushNullPageIsFatal(t *testing.T) {
	p, err := Open(tempDBPath(t), nil)
	require.NoError(t, err)

	err = p.Flush(5)
	require.Error(t, err)
	var fatal *dberrors.Fatal
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, "Tried to flush null page", fatal.Diag)
}

func TestCloseFlushesAllCachedPages(t *testing.T) {
	path := tempDBPath(t)
	p, err := Open(path, nil)
	require.NoError(t, err)

	for i := uint32(0); i < 3; i++ {
		page, err := p.GetPage(i)
		require.NoError(t, err)
		page[0] = byte(i + 1)
	}
	require.NoError(t, p.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3*format.PageSize), info.Size())
}
