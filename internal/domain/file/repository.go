package file

import (
	"io"
	"os"
)

// Repository defines the contract for the managed directory. Names passed in
// must already be canonical (see CleanName).
type Repository interface {
	List() ([]Info, error)
	Stat(name string) (Info, error)
	Open(name string) (*os.File, Info, error)
	Save(name string, content io.Reader, limit int64) (int64, error)
	Delete(name string) error
	Usage() (int64, error)
}
