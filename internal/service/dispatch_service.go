package service

import (
	"context"
	"os"

	"github.com/andresuchdata/material-price-dispatch/internal/auth"
	"github.com/andresuchdata/material-price-dispatch/internal/domain"
	"github.com/andresuchdata/material-price-dispatch/pkg/logger"
)

// DispatchOptions is the immutable per-run input of the dispatch job.
type DispatchOptions struct {
	Credentials domain.Credentials
	Source      domain.ObjectLocation
	Recipients  string
}

// DispatchService runs the refresh, download, resolve and upload stages in order.
type DispatchService struct {
	refresher   auth.TokenRefresher
	fetcher     *ObjectFetcher
	distributor *FileDistributor
	removeFile  func(string) error
}

func NewDispatchService(refresher auth.TokenRefresher, fetcher *ObjectFetcher, distributor *FileDistributor) *DispatchService {
	return &DispatchService{
		refresher:   refresher,
		fetcher:     fetcher,
		distributor: distributor,
		removeFile:  os.Remove,
	}
}

// Run executes one dispatch. Configuration, token and download failures abort
// the run and are returned as-is; upload failures only show up in the report.
func (s *DispatchService) Run(ctx context.Context, opts DispatchOptions) (*domain.RunReport, error) {
	logger.Log.Info().Msg("starting material price tracker cliq upload")

	// Configuration problems surface before any network call.
	if err := ValidateLocation(opts.Source); err != nil {
		return nil, err
	}
	recipients, err := ResolveRecipients(opts.Recipients)
	if err != nil {
		return nil, err
	}

	logger.Log.Info().Int("step", 1).Msg("refreshing Zoho access token")
	token, err := s.refresher.Refresh(ctx, opts.Credentials)
	if err != nil {
		return nil, err
	}

	logger.Log.Info().Int("step", 2).Str("source", opts.Source.String()).Msg("downloading file from storage")
	path, err := s.fetcher.Fetch(ctx, opts.Source)
	if err != nil {
		return nil, err
	}
	defer s.cleanup(path)

	logger.Log.Info().Int("step", 3).Int("users", len(recipients)).Msg("found users to notify")

	logger.Log.Info().Int("step", 4).Int("users", len(recipients)).Msg("uploading file to users")
	report := s.distributor.Distribute(ctx, token, path, recipients)

	logger.Log.Info().
		Int("successful", report.Successful()).
		Int("total", report.Total()).
		Msgf("successful uploads: %d/%d", report.Successful(), report.Total())
	return report, nil
}

func (s *DispatchService) cleanup(path string) {
	if err := s.removeFile(path); err != nil {
		logger.Log.Warn().Err(err).Str("path", path).Msg("could not delete temp file")
		return
	}
	logger.Log.Info().Str("path", path).Msg("cleaned up temporary file")
}
