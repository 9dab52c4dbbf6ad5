// Package row implements the fixed three-column record this store
// knows how to persist, and its serialization into a leaf cell's value
// region.
package row

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/tinybase/tinybase/internal/format"
)

// Row is a single record: an id plus two fixed-capacity strings. Values
// longer than their capacity are rejected by the statement parser in
// internal/vm before they ever reach the B-tree.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// Validate reports whether r fits the on-disk column capacities. It does
// not touch disk. The statement parser in internal/vm does not call it;
// it applies the same format.UsernameCap/format.EmailCap limits itself.
func (r Row) Validate() error {
	if len(r.Username) > format.UsernameCap {
		return ErrStringTooLong
	}
	if len(r.Email) > format.EmailCap {
		return ErrStringTooLong
	}
	return nil
}

// ErrStringTooLong is returned by Validate when a column exceeds its
// fixed capacity.
var ErrStringTooLong = fmt.Errorf("string is too long")

// Serialize writes r into dst, which must be exactly format.RowSize
// bytes. Username and Email are zero-padded to their full field width.
func Serialize(r Row, dst []byte) error {
	if len(dst) != format.RowSize {
		return errors.Errorf("row: serialize destination must be %d bytes, got %d", format.RowSize, len(dst))
	}
	binary.LittleEndian.PutUint32(dst[format.IDOffset:], r.ID)

	usernameField := dst[format.UsernameOffset : format.UsernameOffset+format.UsernameSize]
	clear(usernameField)
	copy(usernameField, r.Username)

	emailField := dst[format.EmailOffset : format.EmailOffset+format.EmailSize]
	clear(emailField)
	copy(emailField, r.Email)

	return nil
}

// Deserialize reads a Row back out of src, which must be exactly
// format.RowSize bytes, the inverse of Serialize.
func Deserialize(src []byte) (Row, error) {
	if len(src) != format.RowSize {
		return Row{}, errors.Errorf("row: deserialize source must be %d bytes, got %d", format.RowSize, len(src))
	}
	var r Row
	r.ID = binary.LittleEndian.Uint32(src[format.IDOffset:])
	r.Username = trimZero(src[format.UsernameOffset : format.UsernameOffset+format.UsernameSize])
	r.Email = trimZero(src[format.EmailOffset : format.EmailOffset+format.EmailSize])
	return r, nil
}

// String renders a row the way `select` prints it: "(id, username, email)".
func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.Username, r.Email)
}

func trimZero(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}
