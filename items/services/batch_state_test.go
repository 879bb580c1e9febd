package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var batchNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func validatedBatch(t *testing.T, drafts ...ProductDraft) BatchState {
	t.Helper()
	s := NewBatch(uuid.New(), "admin@example.com", batchNow)
	s, err := s.Parsed("items.xlsx", []SourceRow{{ColProductName: "x"}})
	require.NoError(t, err)
	s, err = s.Grouped(drafts, nil)
	require.NoError(t, err)
	s, err = s.Validated(ValidateDrafts(drafts))
	require.NoError(t, err)
	return s
}

func TestBatchState_HappyPath(t *testing.T) {
	s := validatedBatch(t, validDraft("Tee"), validDraft("Cap"))
	assert.Equal(t, StageValidated, s.Stage)
	assert.True(t, s.Valid)
	assert.Nil(t, s.Rows)

	s, err := s.Uploading(batchNow)
	require.NoError(t, err)
	assert.Equal(t, StageUploading, s.Stage)
	require.NotNil(t, s.UploadStartedAt)

	s, err = s.Progressed(ProgressEvent{Completed: 1, Total: 2, Percent: 50, Result: UploadResult{ProductName: "Tee", Success: true}})
	require.NoError(t, err)
	assert.Equal(t, 50, s.Progress)
	assert.Len(t, s.Results, 1)

	results := []UploadResult{{ProductName: "Tee", Success: true}, {ProductName: "Cap", Error: "boom"}}
	s, err = s.Uploaded(results, batchNow.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, StageCompleted, s.Stage)
	assert.Equal(t, 100, s.Progress)
	assert.Equal(t, 1, s.Succeeded())
	assert.Equal(t, 1, s.Failed())
}

func TestBatchState_TransitionsDoNotMutateReceiver(t *testing.T) {
	s := validatedBatch(t, validDraft("Tee"))

	uploading, err := s.Uploading(batchNow)
	require.NoError(t, err)
	_, err = uploading.Progressed(ProgressEvent{Percent: 100, Result: UploadResult{ProductName: "Tee"}})
	require.NoError(t, err)

	assert.Equal(t, StageValidated, s.Stage)
	assert.Nil(t, s.UploadStartedAt)
	assert.Empty(t, uploading.Results)
	assert.Equal(t, 0, uploading.Progress)
}

func TestBatchState_UploadBlockedWhileInvalid(t *testing.T) {
	bad := validDraft("Cap")
	bad.Title = ""
	s := validatedBatch(t, validDraft("Tee"), bad)
	require.False(t, s.Valid)

	next, err := s.Uploading(batchNow)
	assert.ErrorIs(t, err, ErrBatchInvalid)
	assert.Equal(t, StageValidated, next.Stage)
}

func TestBatchState_UploadRequiresValidation(t *testing.T) {
	s := NewBatch(uuid.New(), "", batchNow)

	_, err := s.Uploading(batchNow)

	var transitionErr *TransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, StageIdle, transitionErr.From)
}

func TestBatchState_UploadingBatchRejectsChanges(t *testing.T) {
	s, err := validatedBatch(t, validDraft("Tee")).Uploading(batchNow)
	require.NoError(t, err)

	_, err = s.Uploading(batchNow)
	assert.ErrorIs(t, err, ErrUploadInProgress)
	_, err = s.Parsed("other.xlsx", nil)
	assert.ErrorIs(t, err, ErrUploadInProgress)
	_, err = s.Cleared()
	assert.ErrorIs(t, err, ErrUploadInProgress)
}

func TestBatchState_ProgressNeverMovesBackwards(t *testing.T) {
	s, err := validatedBatch(t, validDraft("Tee")).Uploading(batchNow)
	require.NoError(t, err)

	s, err = s.Progressed(ProgressEvent{Percent: 60})
	require.NoError(t, err)
	s, err = s.Progressed(ProgressEvent{Percent: 40})
	require.NoError(t, err)

	assert.Equal(t, 60, s.Progress)
}

func TestBatchState_NewFileReplacesPreviousRun(t *testing.T) {
	s, err := validatedBatch(t, validDraft("Tee")).Uploading(batchNow)
	require.NoError(t, err)
	s, err = s.Uploaded([]UploadResult{{ProductName: "Tee", Success: true}}, batchNow)
	require.NoError(t, err)

	next, err := s.Parsed("second.xlsx", []SourceRow{{ColProductName: "Cap"}})
	require.NoError(t, err)

	assert.Equal(t, s.ID, next.ID)
	assert.Equal(t, StageFileParsed, next.Stage)
	assert.Equal(t, "second.xlsx", next.FileName)
	assert.Empty(t, next.Drafts)
	assert.Empty(t, next.Results)
	assert.Nil(t, next.UploadCompletedAt)
}

func TestBatchState_ClearedKeepsIdentity(t *testing.T) {
	s := validatedBatch(t, validDraft("Tee"))

	cleared, err := s.Cleared()
	require.NoError(t, err)

	assert.Equal(t, s.ID, cleared.ID)
	assert.Equal(t, "admin@example.com", cleared.CreatedBy)
	assert.Equal(t, StageIdle, cleared.Stage)
	assert.Empty(t, cleared.Drafts)
	assert.Empty(t, cleared.Report)
}

func TestBatchState_GroupRequiresParsedFile(t *testing.T) {
	_, err := NewBatch(uuid.New(), "", batchNow).Grouped(nil, nil)

	var transitionErr *TransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestBatchState_UploadRejectsEmptyBatch(t *testing.T) {
	s := validatedBatch(t)
	require.True(t, s.Valid)

	_, err := s.Uploading(batchNow)

	assert.ErrorIs(t, err, ErrBatchEmpty)
}

func TestBatchState_RunCanStartOnce(t *testing.T) {
	s := validatedBatch(t, validDraft("Tee"))

	_, err := s.RunStarted(batchNow)
	var transitionErr *TransitionError
	assert.ErrorAs(t, err, &transitionErr)

	s, err = s.Uploading(batchNow)
	require.NoError(t, err)
	claimed, err := s.RunStarted(batchNow)
	require.NoError(t, err)
	require.NotNil(t, claimed.RunStartedAt)
	assert.Nil(t, s.RunStartedAt)

	_, err = claimed.RunStarted(batchNow)
	assert.ErrorIs(t, err, ErrRunAlreadyStarted)
}

func TestBatchState_InterruptedFailsUnfinishedDrafts(t *testing.T) {
	s := validatedBatch(t, validDraft("Tee"), validDraft("Cap"), validDraft("Hat"))
	s, err := s.Uploading(batchNow)
	require.NoError(t, err)
	s, err = s.Progressed(ProgressEvent{Completed: 1, Total: 3, Percent: 33, Result: UploadResult{ProductName: "Tee", Success: true}})
	require.NoError(t, err)

	done, err := s.Interrupted(batchNow.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, StageCompleted, done.Stage)
	assert.Equal(t, 100, done.Progress)
	assert.Equal(t, []UploadResult{
		{ProductName: "Tee", Success: true},
		{ProductName: "Cap", Error: InterruptedError},
		{ProductName: "Hat", Error: InterruptedError},
	}, done.Results)

	cleared, err := done.Cleared()
	require.NoError(t, err)
	assert.Equal(t, StageIdle, cleared.Stage)

	_, err = done.Interrupted(batchNow)
	var transitionErr *TransitionError
	assert.ErrorAs(t, err, &transitionErr)
}
