package fileutil

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// MaxFileSize bounds ReadFileWithLimit. Config files are a few hundred bytes.
const MaxFileSize = 1 << 20

// ErrFileTooLarge is returned for files larger than MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads path, refusing files larger than MaxFileSize.
// A missing file yields an error matching os.ErrNotExist.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "reading %s", path)
	}

	// The size can change between Stat and ReadAll
	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(data) > MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "reading %s", path)
	}
	return data, nil
}
