package services

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

type Stage string

const (
	StageIdle       Stage = "IDLE"
	StageFileParsed Stage = "FILE_PARSED"
	StageGrouped    Stage = "GROUPED"
	StageValidated  Stage = "VALIDATED"
	StageUploading  Stage = "UPLOADING"
	StageCompleted  Stage = "COMPLETED"
)

var (
	// ErrBatchInvalid blocks an upload while any draft has violations.
	ErrBatchInvalid = errors.New("batch has validation errors")
	// ErrUploadInProgress rejects changes to a batch that is uploading.
	ErrUploadInProgress = errors.New("batch upload is in progress")
	// ErrBatchEmpty blocks an upload with nothing to submit.
	ErrBatchEmpty = errors.New("batch has no products to upload")
	// ErrRunAlreadyStarted marks a second attempt to run the same upload.
	ErrRunAlreadyStarted = errors.New("batch upload run already started")
)

// InterruptedError is the result error of drafts an interrupted run never
// finished.
const InterruptedError = "upload was interrupted before a result was recorded"

// TransitionError reports a transition attempted from the wrong stage.
type TransitionError struct {
	From   Stage
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a batch in stage %s", e.Action, e.From)
}

// BatchState is one bulk upload run. It is a value: every transition
// returns a new state and leaves the receiver untouched.
type BatchState struct {
	ID        uuid.UUID         `json:"id"`
	Stage     Stage             `json:"stage"`
	FileName  string            `json:"file_name,omitempty"`
	CreatedBy string            `json:"created_by,omitempty"`
	Rows      []SourceRow       `json:"rows,omitempty"`
	Drafts    []ProductDraft    `json:"drafts,omitempty"`
	Warnings  []CoercionWarning `json:"warnings,omitempty"`
	Report    ValidationReport  `json:"report,omitempty"`
	Valid     bool              `json:"valid"`
	Results   []UploadResult    `json:"results,omitempty"`
	Progress  int               `json:"progress"`

	CreatedAt         time.Time  `json:"created_at"`
	UploadStartedAt   *time.Time `json:"upload_started_at,omitempty"`
	RunStartedAt      *time.Time `json:"run_started_at,omitempty"`
	UploadCompletedAt *time.Time `json:"upload_completed_at,omitempty"`
}

// NewBatch returns an idle batch.
func NewBatch(id uuid.UUID, createdBy string, now time.Time) BatchState {
	return BatchState{
		ID:        id,
		Stage:     StageIdle,
		CreatedBy: createdBy,
		CreatedAt: now,
	}
}

// Parsed replaces whatever the batch held with freshly parsed rows.
func (s BatchState) Parsed(fileName string, rows []SourceRow) (BatchState, error) {
	if s.Stage == StageUploading {
		return s, ErrUploadInProgress
	}
	next := s.reset()
	next.Stage = StageFileParsed
	next.FileName = fileName
	next.Rows = slices.Clone(rows)
	return next, nil
}

// Grouped consumes the parsed rows.
func (s BatchState) Grouped(drafts []ProductDraft, warnings []CoercionWarning) (BatchState, error) {
	if s.Stage != StageFileParsed {
		return s, &TransitionError{From: s.Stage, Action: "group"}
	}
	next := s
	next.Stage = StageGrouped
	next.Rows = nil
	next.Drafts = slices.Clone(drafts)
	next.Warnings = slices.Clone(warnings)
	return next, nil
}

// Validated stores a full report. Re-validating a validated batch replaces
// the previous report.
func (s BatchState) Validated(report ValidationReport) (BatchState, error) {
	if s.Stage != StageGrouped && s.Stage != StageValidated {
		return s, &TransitionError{From: s.Stage, Action: "validate"}
	}
	next := s
	next.Stage = StageValidated
	next.Report = maps.Clone(report)
	if next.Report == nil {
		next.Report = ValidationReport{}
	}
	next.Valid = report.Valid()
	return next, nil
}

// Uploading gates the upload on a clean report.
func (s BatchState) Uploading(now time.Time) (BatchState, error) {
	switch s.Stage {
	case StageValidated:
	case StageUploading:
		return s, ErrUploadInProgress
	default:
		return s, &TransitionError{From: s.Stage, Action: "upload"}
	}
	if !s.Valid {
		return s, ErrBatchInvalid
	}
	if len(s.Drafts) == 0 {
		return s, ErrBatchEmpty
	}
	next := s
	next.Stage = StageUploading
	next.Results = nil
	next.Progress = 0
	next.UploadStartedAt = &now
	next.RunStartedAt = nil
	return next, nil
}

// RunStarted claims an uploading batch for one worker run. A batch can be
// claimed once per Uploading transition.
func (s BatchState) RunStarted(now time.Time) (BatchState, error) {
	if s.Stage != StageUploading {
		return s, &TransitionError{From: s.Stage, Action: "start a run for"}
	}
	if s.RunStartedAt != nil {
		return s, ErrRunAlreadyStarted
	}
	next := s
	next.RunStartedAt = &now
	return next, nil
}

// Interrupted completes a run that stopped part way. Recorded results are
// kept and every remaining draft fails with InterruptedError; none of them
// is submitted again.
func (s BatchState) Interrupted(now time.Time) (BatchState, error) {
	if s.Stage != StageUploading {
		return s, &TransitionError{From: s.Stage, Action: "interrupt"}
	}
	results := slices.Clone(s.Results)
	for _, d := range s.Drafts[min(len(results), len(s.Drafts)):] {
		results = append(results, UploadResult{ProductName: d.ProductName, Error: InterruptedError})
	}
	return s.Uploaded(results, now)
}

// Progressed appends one completed draft's result.
func (s BatchState) Progressed(event ProgressEvent) (BatchState, error) {
	if s.Stage != StageUploading {
		return s, &TransitionError{From: s.Stage, Action: "record progress on"}
	}
	next := s
	next.Results = append(slices.Clone(s.Results), event.Result)
	if event.Percent > next.Progress {
		next.Progress = event.Percent
	}
	return next, nil
}

// Uploaded finishes the run with the orchestrator's full result list.
func (s BatchState) Uploaded(results []UploadResult, now time.Time) (BatchState, error) {
	if s.Stage != StageUploading {
		return s, &TransitionError{From: s.Stage, Action: "complete"}
	}
	next := s
	next.Stage = StageCompleted
	next.Results = slices.Clone(results)
	next.Progress = 100
	next.UploadCompletedAt = &now
	return next, nil
}

// Cleared discards everything except the batch identity.
func (s BatchState) Cleared() (BatchState, error) {
	if s.Stage == StageUploading {
		return s, ErrUploadInProgress
	}
	return s.reset(), nil
}

func (s BatchState) reset() BatchState {
	return BatchState{
		ID:        s.ID,
		Stage:     StageIdle,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
	}
}

// Succeeded counts successful results.
func (s BatchState) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Success {
			n++
		}
	}
	return n
}

// Failed counts failed results.
func (s BatchState) Failed() int {
	return len(s.Results) - s.Succeeded()
}
