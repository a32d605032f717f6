package upload

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageBatch_WritesEveryFile(t *testing.T) {
	dir := t.TempDir()
	s := &Stager{fs: osFS{}, dir: dir}

	staged, err := s.StageBatch([]InboundFile{
		{FileName: "a_Report.docx", Data: []byte("alpha")},
		{FileName: "a_Report.docx", Data: []byte("bravo")},
	})
	require.NoError(t, err)
	require.Len(t, staged, 2)

	for _, f := range staged {
		assert.Contains(t, f.Path, dir)
		assert.True(t, strings.HasSuffix(f.Path, f.Name))

		data, readErr := os.ReadFile(f.Path)
		require.NoError(t, readErr)
		assert.Equal(t, int64(len(data)), f.Size)
	}

	// Same-named files stage to distinct paths.
	assert.NotEqual(t, staged[0].Path, staged[1].Path)
}

func TestStageBatch_EmptyDataAbortsAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	s := &Stager{fs: osFS{}, dir: dir}

	_, err := s.StageBatch([]InboundFile{
		{FileName: "a_Report.docx", Data: []byte("alpha")},
		{FileName: "hollow_Report.docx"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStaging))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "partial staged files must not be left behind")
}

func TestCleanup_RemovesStagedFiles(t *testing.T) {
	dir := t.TempDir()
	s := &Stager{fs: osFS{}, dir: dir}

	staged, err := s.StageBatch([]InboundFile{
		{FileName: "a_Report.docx", Data: []byte("alpha")},
	})
	require.NoError(t, err)

	s.Cleanup(staged)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCleanup_ToleratesAlreadyRemovedFiles(t *testing.T) {
	dir := t.TempDir()
	s := &Stager{fs: osFS{}, dir: dir}

	staged, err := s.StageBatch([]InboundFile{
		{FileName: "a_Report.docx", Data: []byte("alpha")},
	})
	require.NoError(t, err)
	require.NoError(t, os.Remove(staged[0].Path))

	assert.NotPanics(t, func() { s.Cleanup(staged) })
}

func TestCleanup_RemovalFailureIsNotFatal(t *testing.T) {
	fs := &failingFS{removeErr: fmt.Errorf("device busy")}
	s := &Stager{fs: fs, dir: "staging"}

	staged, err := s.StageBatch([]InboundFile{
		{FileName: "a_Report.docx", Data: []byte("alpha")},
		{FileName: "b_Report.docx", Data: []byte("bravo")},
	})
	require.NoError(t, err)

	assert.NotPanics(t, func() { s.Cleanup(staged) })

	// Every removal was attempted despite the first one failing.
	assert.Equal(t, 2, fs.removeCalls)
}

func TestStageBatch_WriteFailureCleansUpEarlierFiles(t *testing.T) {
	fs := &failingFS{failWriteAfter: 1}
	s := &Stager{fs: fs, dir: "staging"}

	_, err := s.StageBatch([]InboundFile{
		{FileName: "a_Report.docx", Data: []byte("alpha")},
		{FileName: "b_Report.docx", Data: []byte("bravo")},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStaging))
	assert.Empty(t, fs.files, "the first staged file must be removed")
}

// failingFS is an in-memory FS with configurable failure points.
type failingFS struct {
	files          map[string][]byte
	failWriteAfter int
	writeCalls     int
	removeErr      error
	removeCalls    int
}

func (f *failingFS) MkdirAll(path string) error { return nil }

func (f *failingFS) WriteFile(path string, data []byte) error {
	f.writeCalls++
	if f.failWriteAfter > 0 && f.writeCalls > f.failWriteAfter {
		return fmt.Errorf("disk full")
	}
	if f.files == nil {
		f.files = map[string][]byte{}
	}
	f.files[path] = data
	return nil
}

func (f *failingFS) Exists(path string) bool {
	if f.removeErr != nil {
		return true
	}
	_, ok := f.files[path]
	return ok
}

func (f *failingFS) Remove(path string) error {
	f.removeCalls++
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.files, path)
	return nil
}
