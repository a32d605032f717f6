package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ErrStaging means an inbound file could not be materialized on disk. It
// fails the whole batch before any browser work begins.
var ErrStaging = errors.New("staging failed")

// Stager writes inbound byte buffers to uniquely named temporary files and
// removes them once the attempt concludes.
type Stager struct {
	fs  FS
	dir string
}

// NewStager creates a stager writing under the system temp directory.
func NewStager() *Stager {
	return &Stager{
		fs:  osFS{},
		dir: filepath.Join(os.TempDir(), "shuttle-staging"),
	}
}

// StageBatch materializes every file in the batch. A file with no byte
// content, or a write failure, aborts the batch: files already staged are
// removed and ErrStaging is returned, leaving nothing behind.
func (s *Stager) StageBatch(files []InboundFile) ([]StagedFile, error) {
	if err := s.fs.MkdirAll(s.dir); err != nil {
		return nil, fmt.Errorf("%w: create staging directory: %v", ErrStaging, err)
	}

	staged := make([]StagedFile, 0, len(files))
	for _, file := range files {
		if len(file.Data) == 0 {
			s.Cleanup(staged)
			return nil, fmt.Errorf("%w: file %q has no content", ErrStaging, file.FileName)
		}

		// Unique prefix keeps concurrent callers staging same-named
		// reports from colliding.
		path := filepath.Join(s.dir, uuid.NewString()+"-"+file.FileName)
		if err := s.fs.WriteFile(path, file.Data); err != nil {
			s.Cleanup(staged)
			return nil, fmt.Errorf("%w: write %q: %v", ErrStaging, file.FileName, err)
		}

		staged = append(staged, StagedFile{
			Name: file.FileName,
			Path: path,
			Size: int64(len(file.Data)),
		})
	}

	log.Debug("staged batch", "files", len(staged), "dir", s.dir)
	return staged, nil
}

// Cleanup removes staged files. Each removal is independently best-effort;
// a file that will not delete is logged and left for the OS temp reaper.
func (s *Stager) Cleanup(staged []StagedFile) {
	for _, file := range staged {
		if !s.fs.Exists(file.Path) {
			continue
		}
		if err := s.fs.Remove(file.Path); err != nil {
			log.Warn("failed to remove staged file", "path", file.Path, "err", err)
		}
	}
}
