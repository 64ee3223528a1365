package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/suchimauz/pet-clinic-core/internal/config"
	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
	"github.com/suchimauz/pet-clinic-core/internal/core/ports/out"
)

type CacheAdapter struct {
	memberships *expirable.LRU[int64, domain.MembershipSummary]
	logger      out.LoggerPort
}

// NewCacheAdapter возвращает nil, если кэш выключен
func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) *CacheAdapter {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil
	}

	return newCacheAdapter(cfg.Cache.MembershipSize, cfg.Cache.MembershipTTL, logger)
}

func newCacheAdapter(size int, ttl time.Duration, logger out.LoggerPort) *CacheAdapter {
	if size <= 0 {
		size = 1000
	}

	return &CacheAdapter{
		memberships: expirable.NewLRU[int64, domain.MembershipSummary](size, nil, ttl),
		logger:      logger,
	}
}

func (c *CacheAdapter) GetMembership(ctx context.Context, customerID int64, year int) (*domain.MembershipSummary, bool) {
	entry, exists := c.memberships.Get(customerID)
	if !exists {
		c.logger.Debug("cache.membership.get.miss", out.LogFields{
			"customerId": customerID,
		})
		return nil, false
	}

	// Новый год - считаем заново
	if entry.Year != year {
		c.logger.Debug("cache.membership.get.year_mismatch", out.LogFields{
			"customerId": customerID,
			"cachedYear": entry.Year,
			"year":       year,
		})
		c.memberships.Remove(customerID)
		return nil, false
	}

	c.logger.Debug("cache.membership.get.hit", out.LogFields{
		"customerId": customerID,
	})
	return &entry, true
}

func (c *CacheAdapter) StoreMembership(ctx context.Context, summary domain.MembershipSummary) {
	c.logger.Debug("cache.membership.store", out.LogFields{
		"customerId": summary.CustomerID,
		"level":      summary.Level,
	})

	c.memberships.Add(summary.CustomerID, summary)
}

func (c *CacheAdapter) InvalidateMembership(ctx context.Context, customerID int64) {
	c.memberships.Remove(customerID)
}

func (c *CacheAdapter) InvalidateAllMemberships(ctx context.Context) {
	c.memberships.Purge()
}

func (c *CacheAdapter) Len() int {
	return c.memberships.Len()
}
