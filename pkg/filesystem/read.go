package filesystem

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dynmacros/pkg/types"
)

// ReadIfExists reads name and reports whether it existed. A missing file is
// not an error; any other read failure is.
func ReadIfExists(fsys types.FS, name string) ([]byte, bool, error) {
	data, err := fsys.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// WriteFileAll writes data to name, creating parent directories first
func WriteFileAll(fsys types.FS, name string, data []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
	return fsys.WriteFile(name, data, 0644)
}

// WriteIfChanged writes data to name only when the current content differs,
// creating parent directories as needed. It reports whether it wrote.
func WriteIfChanged(fsys types.FS, name string, data []byte) (bool, error) {
	current, existed, err := ReadIfExists(fsys, name)
	if err != nil {
		return false, err
	}
	if existed && bytes.Equal(current, data) {
		return false, nil
	}
	if err := WriteFileAll(fsys, name, data); err != nil {
		return false, err
	}
	return true, nil
}
