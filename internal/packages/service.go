package packages

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PassFetcher interface for the remote booking store (to avoid circular dependency)
type PassFetcher interface {
	UserPackages(ctx context.Context, userID uuid.UUID) ([]PackagePass, error)
}

// Service interface defines the contract for package pass operations
type Service interface {
	ListPasses(ctx context.Context, userID uuid.UUID) ([]PackagePass, error)
	UsablePasses(ctx context.Context, userID uuid.UUID, now time.Time) ([]PackagePass, error)
}

type service struct {
	fetcher PassFetcher
}

// NewService creates a new package pass service instance
func NewService(fetcher PassFetcher) Service {
	return &service{fetcher: fetcher}
}

// ListPasses returns every pass the user owns, spent or not
func (s *service) ListPasses(ctx context.Context, userID uuid.UUID) ([]PackagePass, error) {
	passes, err := s.fetcher.UserPackages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user packages: %w", err)
	}
	return passes, nil
}

// UsablePasses filters to passes that can cover a booking made now
func (s *service) UsablePasses(ctx context.Context, userID uuid.UUID, now time.Time) ([]PackagePass, error) {
	passes, err := s.ListPasses(ctx, userID)
	if err != nil {
		return nil, err
	}

	var usable []PackagePass
	for _, pass := range passes {
		if pass.Usable(now) {
			usable = append(usable, pass)
		}
	}
	return usable, nil
}
