// Package service caches the formatted listing and refreshes it from the
// feed on a TTL, deduplicating concurrent refreshes.
package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"propertychat_backend/internal/catalog/transport"
	"propertychat_backend/platform/logger"
)

// ListingFetcher is the upstream feed dependency.
type ListingFetcher interface {
	FetchListing(ctx context.Context) (*transport.ListingPayload, error)
}

type Service struct {
	fetcher ListingFetcher
	ttl     time.Duration
	log     *logger.Logger

	group singleflight.Group

	mu        sync.RWMutex
	cached    *transport.Property
	fetchedAt time.Time
}

func New(fetcher ListingFetcher, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		ttl:     ttl,
		log:     log,
	}
}

// CurrentListing returns the cached listing, refreshing it when stale.
// A stale cache is served when the refresh fails; the second return is
// false only when no listing has ever been fetched.
func (s *Service) CurrentListing(ctx context.Context) (*transport.Property, bool) {
	s.mu.RLock()
	cached, fresh := s.cached, time.Since(s.fetchedAt) < s.ttl
	s.mu.RUnlock()

	if cached != nil && fresh {
		return cached, true
	}

	refreshed, err, _ := s.group.Do("listing", func() (any, error) {
		return s.refresh(ctx)
	})
	if err != nil {
		s.log.Warn("listing refresh failed", "error", err)
		if cached != nil {
			return cached, true
		}
		return nil, false
	}

	return refreshed.(*transport.Property), true
}

func (s *Service) refresh(ctx context.Context) (*transport.Property, error) {
	payload, err := s.fetcher.FetchListing(ctx)
	if err != nil {
		return nil, err
	}

	property := transport.FormatListing(payload)

	s.mu.Lock()
	s.cached = property
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	s.log.Info("listing refreshed", "title", property.Title)
	return property, nil
}
