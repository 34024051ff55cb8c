package storage

import (
	"context"
	"errors"
)

// Имена документов, в которых хранятся коллекции.
const (
	LinesDocument = "lines"
	UsersDocument = "users"
)

var ErrNotFound = errors.New("document not found")

// Documents reads and overwrites whole named documents. Implementations must
// replace the previous content of a document entirely on Write.
type Documents interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Close() error
}
