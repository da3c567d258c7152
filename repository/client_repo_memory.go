package repository

import (
	"context"
	"time"

	"freightflow/models"
)

type MemoryClientRepo struct {
	t *memTable[models.Client]
}

func NewMemoryClientRepo() *MemoryClientRepo {
	return &MemoryClientRepo{t: newMemTable(shallow[models.Client], func(c *models.Client) time.Time { return c.CreatedAt })}
}

func (r *MemoryClientRepo) CreateClient(_ context.Context, c *models.Client) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return r.t.insert(c.ID, c, nil)
}

func (r *MemoryClientRepo) UpdateClient(_ context.Context, c *models.Client) error {
	return r.t.replace(c.ID, c)
}

func (r *MemoryClientRepo) GetClient(_ context.Context, id string) (*models.Client, error) {
	return r.t.get(id)
}

func (r *MemoryClientRepo) ListClients(_ context.Context) ([]*models.Client, error) {
	return r.t.find(nil), nil
}

func (r *MemoryClientRepo) DeleteClient(_ context.Context, id string) error {
	return r.t.remove(id)
}
