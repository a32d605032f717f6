// Package upload selects eligible report files, stages them on disk, and
// maps one portal transfer onto per-file results.
package upload

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/entrhq/shuttle/pkg/portal"
)

// DefaultEligibleSuffix is the report-file naming convention. Only files
// ending in it are sent to the portal; everything else is skipped.
const DefaultEligibleSuffix = "_Report.docx"

// AttemptRunner runs one portal transfer for a batch of staged file paths.
// Implemented by portal.Orchestrator.
type AttemptRunner interface {
	Run(paths []string) portal.AttemptResult
}

// Coordinator turns a batch of inbound files into per-file upload results.
// The portal call is all-or-nothing, so every eligible file in a batch
// shares one outcome.
type Coordinator struct {
	runner AttemptRunner
	stager *Stager
	suffix string
}

// NewCoordinator creates a coordinator with the default staging location and
// eligibility suffix.
func NewCoordinator(runner AttemptRunner) *Coordinator {
	return &Coordinator{
		runner: runner,
		stager: NewStager(),
		suffix: DefaultEligibleSuffix,
	}
}

// Upload stages the eligible files, runs one transfer for the whole batch,
// and returns one PerFileResult per input file. Eligible results come first,
// skipped results are appended after them. Portal-side failures never return
// an error; every eligible file is marked failed with the shared message.
// Only a staging fault aborts the call, before any browser work happens.
func (c *Coordinator) Upload(files []InboundFile) ([]PerFileResult, error) {
	var eligible, skipped []InboundFile
	for _, file := range files {
		if strings.HasSuffix(file.FileName, c.suffix) {
			eligible = append(eligible, file)
		} else {
			skipped = append(skipped, file)
		}
	}

	results := make([]PerFileResult, 0, len(files))

	if len(eligible) > 0 {
		staged, err := c.stager.StageBatch(eligible)
		if err != nil {
			return nil, err
		}
		defer c.stager.Cleanup(staged)

		paths := make([]string, len(staged))
		for i, file := range staged {
			paths[i] = file.Path
		}

		log.Info("uploading report batch", "eligible", len(eligible), "skipped", len(skipped))
		attempt := c.runner.Run(paths)

		for _, file := range eligible {
			results = append(results, PerFileResult{
				FileName: file.FileName,
				Success:  attempt.Success,
				Error:    attempt.Error,
			})
		}
	} else if len(files) > 0 {
		log.Info("no eligible report files in batch", "skipped", len(skipped))
	}

	for _, file := range skipped {
		results = append(results, PerFileResult{
			FileName: file.FileName,
			Success:  true,
			Skipped:  true,
		})
	}

	return results, nil
}
