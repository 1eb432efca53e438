package service

import (
	"context"

	"github.com/andresuchdata/material-price-dispatch/internal/cliq"
	"github.com/andresuchdata/material-price-dispatch/internal/domain"
	"github.com/andresuchdata/material-price-dispatch/pkg/logger"
)

// FileDistributor uploads one file to each recipient in turn.
type FileDistributor struct {
	uploader cliq.Uploader
	botName  string
	comments []string
}

func NewFileDistributor(uploader cliq.Uploader, botName string, comments []string) *FileDistributor {
	return &FileDistributor{uploader: uploader, botName: botName, comments: comments}
}

// Distribute attempts every recipient, in order. A failed upload is recorded
// in the report and the loop moves on to the next recipient.
func (d *FileDistributor) Distribute(ctx context.Context, token, path string, recipients []domain.RecipientID) *domain.RunReport {
	report := &domain.RunReport{Results: make([]domain.RecipientResult, 0, len(recipients))}

	for _, recipient := range recipients {
		result := d.uploader.UploadFile(ctx, cliq.UploadRequest{
			Token:    token,
			FilePath: path,
			UserID:   recipient,
			BotName:  d.botName,
			Comments: d.comments,
		})
		report.Add(recipient, result)

		if result.Success {
			logger.Log.Info().Str("user_id", string(recipient)).Msg("uploaded file to user")
			continue
		}
		logger.Log.Error().
			Err(result.AsError(recipient)).
			Str("user_id", string(recipient)).
			Int("status_code", result.StatusCode).
			Str("status", domain.UploadStatusLabel(result)).
			Msg("failed to upload file to user")
	}

	return report
}
