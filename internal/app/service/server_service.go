package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cublex/internal/common"
	"cublex/internal/domain/model"

	"github.com/gosimple/slug"
)

// ServerService serves the public, read-only site content.
type ServerService struct {
	catalog *Catalog
	now     func() time.Time
}

func NewServerService(catalog *Catalog) *ServerService {
	return &ServerService{catalog: catalog, now: time.Now}
}

func (s *ServerService) Status(ctx context.Context) model.ServerInfo {
	info := s.catalog.Server
	info.Features = append([]string(nil), info.Features...)
	info.LastUpdated = s.now().UTC()
	return info
}

func (s *ServerService) Features(ctx context.Context) []model.Feature {
	return append([]model.Feature(nil), s.catalog.Features...)
}

// Feature looks a feature up by its slug ("tricky-trials") or by the compact
// form used by older clients ("trickyTrials").
func (s *ServerService) Feature(ctx context.Context, key string) (*model.Feature, error) {
	wanted := slug.Make(key)
	compact := strings.ToLower(key)
	for _, f := range s.catalog.Features {
		if f.Key == wanted || strings.ReplaceAll(f.Key, "-", "") == compact {
			feature := f
			return &feature, nil
		}
	}
	return nil, fmt.Errorf("feature %q: %w", key, common.ErrNotFound)
}

func (s *ServerService) Community(ctx context.Context) model.CommunityStats {
	stats := s.catalog.Community
	stats.LastUpdated = s.now().UTC()
	return stats
}

// Timeline returns every phase and the phase currently marked active,
// defaulting to the first phase.
func (s *ServerService) Timeline(ctx context.Context) ([]model.TimelinePhase, *model.TimelinePhase) {
	phases := append([]model.TimelinePhase(nil), s.catalog.Timeline...)
	if len(phases) == 0 {
		return phases, nil
	}
	for i := range phases {
		if phases[i].Status == model.PhaseActive {
			current := phases[i]
			return phases, &current
		}
	}
	current := phases[0]
	return phases, &current
}

func (s *ServerService) Players(ctx context.Context) ([]model.Player, int) {
	return append([]model.Player(nil), s.catalog.Players...), s.catalog.Server.MaxPlayers
}

func (s *ServerService) Rules(ctx context.Context) ([]string, []string) {
	return append([]string(nil), s.catalog.Rules...), append([]string(nil), s.catalog.Consequences...)
}

func (s *ServerService) FAQ(ctx context.Context) []model.FAQEntry {
	return append([]model.FAQEntry(nil), s.catalog.FAQ...)
}

func (s *ServerService) News(ctx context.Context) []model.NewsItem {
	return append([]model.NewsItem(nil), s.catalog.News...)
}
