package codec

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/spritestrip/pkg/errors"
)

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place. On failure the temporary file is removed and path is untouched.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "create output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "create temp file for %s", path)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "write %s", path)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "sync %s", path)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "close %s", path)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "chmod %s", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "rename into %s", path)
	}
	return nil
}
