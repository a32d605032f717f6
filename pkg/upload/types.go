package upload

import "time"

// InboundFile is a record supplied by an inbound file source. The upload
// pipeline consumes only FileName and Data; the rest travels through for the
// caller's benefit.
type InboundFile struct {
	FileName  string
	FilePath  string
	Type      string
	Data      []byte
	UpdatedAt time.Time
}

// StagedFile is an inbound file's byte content materialized on local disk,
// so the browser's file-attachment control can read it. Staged files live
// only for the duration of one attempt.
type StagedFile struct {
	Name string
	Path string
	Size int64
}

// PerFileResult reports the outcome for a single inbound file. Every input
// file gets exactly one, whether it was uploaded, failed, or skipped.
type PerFileResult struct {
	FileName string `json:"fileName"`
	Success  bool   `json:"success"`
	Skipped  bool   `json:"skipped,omitempty"`
	Error    string `json:"error,omitempty"`
}
