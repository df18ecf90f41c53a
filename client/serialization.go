package client

import (
	"fmt"
	"io"
	"os"
)

// Serialize writes object to a freshly created file at path. The file is
// closed on every exit path.
func Serialize(object io.WriterTo, path string) (err error) {

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s): %w", path, err)
	}

	if _, err = object.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("%T.WriteTo(%s): %w", object, path, err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	return nil
}

// Deserialize populates object from the file at path.
func Deserialize(object io.ReaderFrom, path string) (err error) {

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("os.Open(%s): %w", path, err)
	}

	defer f.Close()

	if _, err = object.ReadFrom(f); err != nil {
		return fmt.Errorf("%T.ReadFrom(%s): %w", object, path, err)
	}

	return nil
}
