// Package inbound supplies the files to be uploaded. Sources answer a
// "what changed after T" query; the upload pipeline decides eligibility.
package inbound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/shuttle/pkg/upload"
)

// Source supplies inbound files modified after a given time.
type Source interface {
	ChangesSince(t time.Time) ([]upload.InboundFile, error)
}

// DirSource reads inbound files from a local directory, non-recursively.
type DirSource struct {
	Dir string
}

// ChangesSince returns every regular file in the directory whose
// modification time is after t, with its content loaded.
func (s *DirSource) ChangesSince(t time.Time) ([]upload.InboundFile, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read inbound directory %s: %w", s.Dir, err)
	}

	var files []upload.InboundFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		if !info.ModTime().After(t) {
			continue
		}

		path := filepath.Join(s.Dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		files = append(files, upload.InboundFile{
			FileName:  entry.Name(),
			FilePath:  path,
			Type:      strings.TrimPrefix(filepath.Ext(entry.Name()), "."),
			Data:      data,
			UpdatedAt: info.ModTime(),
		})
	}

	return files, nil
}
