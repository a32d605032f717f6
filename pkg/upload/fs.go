package upload

import "os"

// FS is the filesystem surface the stager needs. Kept minimal so tests can
// substitute an in-memory implementation and instrument failures.
type FS interface {
	MkdirAll(path string) error
	WriteFile(path string, data []byte) error
	Exists(path string) bool
	Remove(path string) error
}

// osFS is the real-disk implementation.
type osFS struct{}

func (osFS) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (osFS) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFS) Remove(path string) error {
	return os.Remove(path)
}
