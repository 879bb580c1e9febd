package services

import (
	"context"
	"time"
)

// Ingest runs a freshly selected file through parse, group and validate,
// replacing everything the batch held before. A parse error leaves the
// batch unchanged and is returned as is.
func Ingest(state BatchState, fileName string, data []byte) (BatchState, error) {
	rows, err := ParseSpreadsheetBytes(data)
	if err != nil {
		return state, err
	}

	next, err := state.Parsed(fileName, rows)
	if err != nil {
		return state, err
	}

	drafts, warnings := GroupRows(next.Rows)
	if next, err = next.Grouped(drafts, warnings); err != nil {
		return state, err
	}

	return next.Validated(ValidateDrafts(next.Drafts))
}

// RunUpload drives an uploading batch to completion. Each progress event is
// folded into the state and handed to onState before the next draft starts.
func RunUpload(ctx context.Context, state BatchState, orchestrator *UploadOrchestrator, onState func(BatchState, ProgressEvent)) (BatchState, error) {
	if state.Stage != StageUploading {
		return state, &TransitionError{From: state.Stage, Action: "run upload for"}
	}

	current := state
	results := orchestrator.Upload(ctx, state.Drafts, func(ev ProgressEvent) {
		next, err := current.Progressed(ev)
		if err != nil {
			return
		}
		current = next
		if onState != nil {
			onState(current, ev)
		}
	})

	return current.Uploaded(results, time.Now())
}
