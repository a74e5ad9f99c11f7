// Package filestore keeps uploaded evidence and generated QR code images on disk.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Namespace is a flat directory of files addressed by name.
type Namespace string

const (
	Evidence Namespace = "evidence"
	QRCodes  Namespace = "qrcodes"
)

var (
	ErrExists           = errors.New("a file with this name already exists")
	ErrInvalidName      = errors.New("the file name is not valid")
	ErrUnknownNamespace = errors.New("the file namespace is unknown")
)

// Store maps namespaces to directories.
type Store struct {
	dirs map[Namespace]string
}

// New returns a Store keeping evidence in evidenceDir and QR codes in qrDir.
func New(evidenceDir, qrDir string) *Store {
	return &Store{
		dirs: map[Namespace]string{
			Evidence: evidenceDir,
			QRCodes:  qrDir,
		},
	}
}

// Ensure creates the directories for all namespaces if they do not exist.
func (s *Store) Ensure() error {
	for ns, dir := range s.dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create directory for %s: %w", ns, err)
		}
	}

	return nil
}

// Dir returns the directory of a namespace.
func (s *Store) Dir(ns Namespace) (string, error) {
	dir, ok := s.dirs[ns]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownNamespace, ns)
	}

	return dir, nil
}

// Path returns the path of the file with the given name.
//
// The name must be a plain file name, anything that would resolve
// outside of the namespace directory is rejected.
func (s *Store) Path(ns Namespace, name string) (string, error) {
	dir, err := s.Dir(ns)
	if err != nil {
		return "", err
	}

	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return filepath.Join(dir, name), nil
}

// Save writes the content of r to a new file. Existing files are never overwritten.
func (s *Store) Save(ns Namespace, name string, r io.Reader) (err error) {
	path, err := s.Path(ns, name)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}
	if err != nil {
		return fmt.Errorf("could not create %s file: %w", ns, err)
	}

	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}

		// Do not leave truncated files behind
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if _, err = io.Copy(f, r); err != nil {
		return fmt.Errorf("could not write %s file: %w", ns, err)
	}

	return nil
}

// Remove deletes the file with the given name. A file that does not exist is not an error.
func (s *Store) Remove(ns Namespace, name string) error {
	path, err := s.Path(ns, name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not remove %s file: %w", ns, err)
	}

	return nil
}

// Exists reports whether a file with the given name exists.
func (s *Store) Exists(ns Namespace, name string) bool {
	path, err := s.Path(ns, name)
	if err != nil {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
