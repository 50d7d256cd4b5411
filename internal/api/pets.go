package api

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ListPets fetches every pet listed for adoption.
func (c *Client) ListPets(ctx context.Context) ([]Pet, error) {
	var pets []Pet
	if err := c.get(ctx, "/pets", &pets); err != nil {
		return nil, fmt.Errorf("fetching pets: %w", err)
	}
	return pets, nil
}

// GetPet fetches a single pet by ID.
func (c *Client) GetPet(ctx context.Context, id string) (*Pet, error) {
	var pet Pet
	if err := c.get(ctx, "/pets/"+url.PathEscape(id), &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

// BatchGetPets fetches multiple pets concurrently with a concurrency limit.
// Returns pets in the same order as the input IDs. Failed fetches are nil;
// the error is set only when ctx ended before every fetch finished.
func (c *Client) BatchGetPets(ctx context.Context, ids []string) ([]*Pet, error) {
	results := make([]*Pet, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, id := range ids {
		g.Go(func() error {
			pet, err := c.GetPet(gctx, id)
			if err != nil {
				// Non-fatal: individual pets can fail.
				return nil
			}
			mu.Lock()
			results[i] = pet
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("fetching pets: %w", err)
	}
	return results, nil
}
