package services

import (
	"context"
	"math"

	"items-admin-backend/config"

	"go.uber.org/zap"
)

// ItemCreator creates one catalog item and returns its remote identifier.
type ItemCreator interface {
	CreateItem(ctx context.Context, payload CreateItemPayload) (string, error)
}

// ProgressEvent is published once per attempted draft.
type ProgressEvent struct {
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
	Percent   int          `json:"percent"`
	Result    UploadResult `json:"result"`
}

type ProgressFunc func(ProgressEvent)

type UploadOrchestrator struct {
	creator ItemCreator
}

func NewUploadOrchestrator(creator ItemCreator) *UploadOrchestrator {
	return &UploadOrchestrator{creator: creator}
}

// Upload submits drafts one at a time, in order. A failed draft is recorded
// and the loop moves on. onProgress, when set, is called after every draft.
// The caller must have validated drafts; nothing is re-checked here.
//
// ctx is handed to the creator only: there is no early exit between drafts,
// so every draft gets exactly one result.
func (o *UploadOrchestrator) Upload(ctx context.Context, drafts []ProductDraft, onProgress ProgressFunc) []UploadResult {
	total := len(drafts)
	results := make([]UploadResult, 0, total)

	for i, draft := range drafts {
		result := UploadResult{ProductName: draft.ProductName}

		remoteID, err := o.creator.CreateItem(ctx, BuildCreateItemPayload(draft))
		if err != nil {
			result.Error = err.Error()
			config.Logger.Warn("Bulk item creation failed",
				zap.String("product_name", draft.ProductName),
				zap.Int("position", i+1),
				zap.Error(err),
			)
		} else {
			result.Success = true
			result.RemoteID = remoteID
			config.Logger.Debug("Bulk item created",
				zap.String("product_name", draft.ProductName),
				zap.String("remote_id", remoteID),
			)
		}
		results = append(results, result)

		if onProgress != nil {
			onProgress(ProgressEvent{
				Completed: i + 1,
				Total:     total,
				Percent:   ProgressPercent(i+1, total),
				Result:    result,
			})
		}
	}

	return results
}

// ProgressPercent is round(completed/total*100); an empty run is complete.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
