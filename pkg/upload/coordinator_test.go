package upload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/shuttle/pkg/portal"
)

// spyRunner records the batches it was asked to transfer and replays a
// canned result.
type spyRunner struct {
	result portal.AttemptResult
	calls  [][]string
}

func (r *spyRunner) Run(paths []string) portal.AttemptResult {
	batch := make([]string, len(paths))
	copy(batch, paths)
	r.calls = append(r.calls, batch)
	return r.result
}

func testCoordinator(t *testing.T, runner AttemptRunner) *Coordinator {
	t.Helper()
	return &Coordinator{
		runner: runner,
		stager: &Stager{fs: osFS{}, dir: t.TempDir()},
		suffix: DefaultEligibleSuffix,
	}
}

func resultFor(t *testing.T, results []PerFileResult, name string) PerFileResult {
	t.Helper()
	for _, r := range results {
		if r.FileName == name {
			return r
		}
	}
	t.Fatalf("no result for %q in %v", name, results)
	return PerFileResult{}
}

func TestUpload_OneResultPerInputFile(t *testing.T) {
	runner := &spyRunner{result: portal.AttemptResult{Success: true}}
	c := testCoordinator(t, runner)

	files := []InboundFile{
		{FileName: "a_Report.docx", Data: []byte("a")},
		{FileName: "notes.txt", Data: []byte("n")},
		{FileName: "b_Report.docx", Data: []byte("b")},
		{FileName: "image.png", Data: []byte("p")},
	}

	results, err := c.Upload(files)
	require.NoError(t, err)
	require.Len(t, results, len(files))

	seen := map[string]int{}
	for _, r := range results {
		seen[r.FileName]++
	}
	for _, f := range files {
		assert.Equal(t, 1, seen[f.FileName], "file %s", f.FileName)
	}
}

func TestUpload_SkippedFilesNeverReachThePortal(t *testing.T) {
	runner := &spyRunner{result: portal.AttemptResult{Success: true}}
	c := testCoordinator(t, runner)

	results, err := c.Upload([]InboundFile{
		{FileName: "notes.txt", Data: []byte("n")},
		{FileName: "image.png", Data: []byte("p")},
	})
	require.NoError(t, err)

	// No eligible files means no browser session at all.
	assert.Empty(t, runner.calls)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Success)
		assert.True(t, r.Skipped)
		assert.Empty(t, r.Error)
	}
}

func TestUpload_SuccessfulBatch(t *testing.T) {
	runner := &spyRunner{result: portal.AttemptResult{Success: true}}
	c := testCoordinator(t, runner)

	results, err := c.Upload([]InboundFile{
		{FileName: "x_Report.docx", Data: []byte("report body")},
		{FileName: "notes.txt", Data: []byte("n")},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	report := resultFor(t, results, "x_Report.docx")
	assert.True(t, report.Success)
	assert.False(t, report.Skipped)

	notes := resultFor(t, results, "notes.txt")
	assert.True(t, notes.Success)
	assert.True(t, notes.Skipped)

	// Exactly one portal call carrying the eligible file.
	require.Len(t, runner.calls, 1)
	require.Len(t, runner.calls[0], 1)
	assert.Contains(t, filepath.Base(runner.calls[0][0]), "x_Report.docx")
}

func TestUpload_BatchIsAttachedAtomically(t *testing.T) {
	runner := &spyRunner{result: portal.AttemptResult{Success: true}}
	c := testCoordinator(t, runner)

	_, err := c.Upload([]InboundFile{
		{FileName: "a_Report.docx", Data: []byte("a")},
		{FileName: "b_Report.docx", Data: []byte("b")},
		{FileName: "c_Report.docx", Data: []byte("c")},
	})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Len(t, runner.calls[0], 3)
}

func TestUpload_FailureBroadcastToEligibleOnly(t *testing.T) {
	runner := &spyRunner{result: portal.AttemptResult{
		Success: false,
		Error:   "authentication failed: still on sign-in page",
	}}
	c := testCoordinator(t, runner)

	results, err := c.Upload([]InboundFile{
		{FileName: "a_Report.docx", Data: []byte("a")},
		{FileName: "b_Report.docx", Data: []byte("b")},
		{FileName: "notes.txt", Data: []byte("n")},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, name := range []string{"a_Report.docx", "b_Report.docx"} {
		r := resultFor(t, results, name)
		assert.False(t, r.Success)
		assert.Equal(t, "authentication failed: still on sign-in page", r.Error)
	}

	notes := resultFor(t, results, "notes.txt")
	assert.True(t, notes.Success)
	assert.True(t, notes.Skipped)
}

func TestUpload_StagedFilesRemovedAfterSuccess(t *testing.T) {
	dir := t.TempDir()
	var sawStaged []string
	runner := runnerFunc(func(paths []string) portal.AttemptResult {
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				sawStaged = append(sawStaged, p)
			}
		}
		return portal.AttemptResult{Success: true}
	})
	c := &Coordinator{
		runner: runner,
		stager: &Stager{fs: osFS{}, dir: dir},
		suffix: DefaultEligibleSuffix,
	}

	_, err := c.Upload([]InboundFile{{FileName: "a_Report.docx", Data: []byte("a")}})
	require.NoError(t, err)

	// The staged file existed during the attempt and is gone afterwards.
	require.Len(t, sawStaged, 1)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpload_StagedFilesRemovedAfterFailure(t *testing.T) {
	dir := t.TempDir()
	runner := &spyRunner{result: portal.AttemptResult{Success: false, Error: "transfer did not complete"}}
	c := &Coordinator{
		runner: runner,
		stager: &Stager{fs: osFS{}, dir: dir},
		suffix: DefaultEligibleSuffix,
	}

	_, err := c.Upload([]InboundFile{{FileName: "a_Report.docx", Data: []byte("a")}})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpload_MissingContentFailsFast(t *testing.T) {
	dir := t.TempDir()
	runner := &spyRunner{result: portal.AttemptResult{Success: true}}
	c := &Coordinator{
		runner: runner,
		stager: &Stager{fs: osFS{}, dir: dir},
		suffix: DefaultEligibleSuffix,
	}

	_, err := c.Upload([]InboundFile{
		{FileName: "a_Report.docx", Data: []byte("a")},
		{FileName: "empty_Report.docx"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStaging))
	assert.Contains(t, err.Error(), "empty_Report.docx")

	// No browser work and no partial temp files left behind.
	assert.Empty(t, runner.calls)
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestUpload_EmptyInput(t *testing.T) {
	runner := &spyRunner{result: portal.AttemptResult{Success: true}}
	c := testCoordinator(t, runner)

	results, err := c.Upload(nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, runner.calls)
}

// runnerFunc adapts a function to AttemptRunner.
type runnerFunc func(paths []string) portal.AttemptResult

func (f runnerFunc) Run(paths []string) portal.AttemptResult {
	return f(paths)
}
