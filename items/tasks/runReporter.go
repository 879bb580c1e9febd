package tasks

import (
	"fmt"

	"items-admin-backend/items/services"
	"items-admin-backend/utils"
)

// EmailRunReporter mails the uploader a summary with the results workbook.
type EmailRunReporter struct {
	Send func(email, subject, body string, attachment *utils.Attachment) error
}

func NewEmailRunReporter() *EmailRunReporter {
	return &EmailRunReporter{Send: utils.SendEmail}
}

func (r *EmailRunReporter) ReportRun(batch services.BatchState) error {
	if batch.CreatedBy == "" {
		return nil
	}

	workbook, err := services.BuildResultsWorkbook(batch.Results)
	if err != nil {
		return fmt.Errorf("failed to build results workbook: %w", err)
	}

	subject := fmt.Sprintf("Bulk item upload finished: %d of %d created", batch.Succeeded(), len(batch.Results))
	body := fmt.Sprintf("Your bulk upload of %s has finished.\n\nCreated: %d\nFailed: %d\n\nPer-product results are attached.",
		batch.FileName, batch.Succeeded(), batch.Failed())

	return r.Send(batch.CreatedBy, subject, body, &utils.Attachment{
		FileName: services.ResultsFileName(batch.FileName),
		Content:  workbook,
	})
}
