package repository

import (
	"context"
	"errors"
	"time"

	"freightflow/models"
)

// LRCopyRepository gathers what an LR copy needs: the trip and the
// carrier's letterhead.
type LRCopyRepository struct {
	TripRepo    TripRepository
	ProfileRepo ProfileRepository
}

func NewLRCopyRepository(tripRepo TripRepository, profileRepo ProfileRepository) *LRCopyRepository {
	return &LRCopyRepository{
		TripRepo:    tripRepo,
		ProfileRepo: profileRepo,
	}
}

func (r *LRCopyRepository) GetTripForLRCopy(ctx context.Context, id string) (*models.Trip, error) {
	return r.TripRepo.GetTrip(ctx, id)
}

// GetProfileForLRCopy returns the saved profile, or a blank one when none
// has been saved yet so a copy can still be printed.
func (r *LRCopyRepository) GetProfileForLRCopy(ctx context.Context) (*models.CompanyProfile, error) {
	p, err := r.ProfileRepo.GetProfile(ctx)
	if errors.Is(err, ErrNotFound) {
		return &models.CompanyProfile{}, nil
	}
	return p, err
}

func (r *LRCopyRepository) SaveLRCopy(ctx context.Context, tripID string, url string, at time.Time) error {
	return r.TripRepo.UpdateLRCopy(ctx, tripID, url, at)
}
