package dashboard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/thermo"
)

// keyMaterial is everything a dashboard depends on besides the table.
type keyMaterial struct {
	Params      domain.Params `json:"params"`
	Grid        thermo.Grid   `json:"grid"`
	Strategy    string        `json:"strategy"`
	CurvePoints int           `json:"curve_points"`
}

// cacheKey returns "" when the result must not be cached.
func (s *Service) cacheKey(p domain.Params) string {
	if s.cache == nil {
		return ""
	}
	b, err := json.Marshal(keyMaterial{
		Params:      p,
		Grid:        s.finder.Grid,
		Strategy:    s.finder.Strategy.String(),
		CurvePoints: s.curvePoints,
	})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return "dashboard:" + s.table.Fingerprint() + ":" + hex.EncodeToString(sum[:12])
}

func (s *Service) lookup(ctx context.Context, key string) (*domain.Dashboard, bool) {
	if key == "" {
		return nil, false
	}

	hit := false
	var d domain.Dashboard
	data, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &d); err != nil {
			s.logger.WarnContext(ctx, "discarding unreadable cache entry", "key", key, "error", err)
			_ = s.cache.Delete(ctx, key)
		} else {
			hit = true
		}
	case !errors.Is(err, domain.ErrCacheMiss):
		s.logger.WarnContext(ctx, "result cache read failed", "key", key, "error", err)
	}

	if s.hooks.OnCacheLookup != nil {
		s.hooks.OnCacheLookup(ctx, &domain.CacheEvent{
			EventBase: domain.EventBase{Timestamp: s.now(), Type: domain.EventCacheLookup},
			Key:       key,
			Hit:       hit,
		})
	}
	if !hit {
		return nil, false
	}
	return &d, true
}

func (s *Service) store(ctx context.Context, key string, d *domain.Dashboard) {
	if key == "" {
		return
	}
	data, err := json.Marshal(d)
	if err != nil {
		s.logger.WarnContext(ctx, "cannot encode dashboard for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.logger.WarnContext(ctx, "result cache write failed", "key", key, "error", err)
	}
}
