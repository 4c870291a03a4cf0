package io

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/matzehuels/csrstore/pkg/errors"
)

// writeFile writes path through a temporary sibling file and renames it into
// place, so readers never observe a half-written file.
func writeFile(path string, write func(io.Writer) error) (err error) {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	dir, base := filepath.Split(path)
	tmp := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	f, err := os.Create(tmp)
	if err != nil {
		return errors.NewIOError("create", tmp, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if err := write(f); err != nil {
		return errors.NewIOError("write", path, err)
	}
	if err := f.Sync(); err != nil {
		return errors.NewIOError("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.NewIOError("write", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.NewIOError("rename", path, err)
	}
	return nil
}

// WriteFile atomically replaces the file at path with data. Failures are
// reported as [errors.IOError].
func WriteFile(path string, data []byte) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("open", path, err)
	}
	return f, nil
}
