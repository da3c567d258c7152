package repository

import (
	"context"
	"sync"
	"time"

	"freightflow/models"
)

type MemoryProfileRepo struct {
	mu      sync.RWMutex
	profile *models.CompanyProfile
}

func NewMemoryProfileRepo() *MemoryProfileRepo {
	return &MemoryProfileRepo{}
}

func (r *MemoryProfileRepo) SaveProfile(_ context.Context, p *models.CompanyProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.ID == 0 {
		p.ID = 1
	}
	c := *p
	c.Mobile = append([]models.MobileEntry(nil), p.Mobile...)
	r.profile = &c
	return nil
}

func (r *MemoryProfileRepo) GetProfile(_ context.Context) (*models.CompanyProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.profile == nil {
		return nil, ErrNotFound
	}
	c := *r.profile
	c.Mobile = append([]models.MobileEntry(nil), r.profile.Mobile...)
	return &c, nil
}
