package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tripshield/backend/internal/models"
	"github.com/tripshield/backend/internal/repository"
)

// TouristStats is the tourists aggregate. Active currently mirrors the total;
// there is no liveness signal to narrow it yet.
type TouristStats struct {
	Total      int64                      `json:"total"`
	Active     int64                      `json:"active"`
	ByLocation []repository.LocationCount `json:"byLocation"`
}

// AlertStats carries one count per alert status.
type AlertStats struct {
	Active   int64 `json:"active"`
	Resolved int64 `json:"resolved"`
	Ongoing  int64 `json:"ongoing"`
}

// UserStats is the users aggregate.
type UserStats struct {
	Total  int64                  `json:"total"`
	ByRole []repository.RoleCount `json:"byRole"`
}

// Overview is the combined dashboard snapshot.
type Overview struct {
	Tourists  TouristStats `json:"tourists"`
	Alerts    AlertStats   `json:"alerts"`
	Users     UserStats    `json:"users"`
	UsageLogs int64        `json:"usageLogs"`
}

// StatsService produces the dashboard aggregates. Independent counts within
// one call are issued concurrently; the call fails if any count fails.
type StatsService interface {
	TouristStats(ctx context.Context) (*TouristStats, error)
	AlertStats(ctx context.Context) (*AlertStats, error)
	UsageSnapshot(ctx context.Context, limit int) ([]models.UsageLog, error)
	UserStats(ctx context.Context) (*UserStats, error)
	Overview(ctx context.Context) (*Overview, error)
}

type statsService struct {
	tourists repository.TouristRepository
	alerts   repository.AlertRepository
	users    repository.UserRepository
	usage    repository.UsageLogRepository
}

func NewStatsService(
	tourists repository.TouristRepository,
	alerts repository.AlertRepository,
	users repository.UserRepository,
	usage repository.UsageLogRepository,
) StatsService {
	return &statsService{tourists: tourists, alerts: alerts, users: users, usage: usage}
}

func (s *statsService) TouristStats(ctx context.Context) (*TouristStats, error) {
	var out TouristStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.tourists.Count(ctx)
		out.Total = n
		return err
	})
	g.Go(func() error {
		rows, err := s.tourists.CountByLocation(ctx)
		out.ByLocation = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.Active = out.Total
	if out.ByLocation == nil {
		out.ByLocation = []repository.LocationCount{}
	}
	return &out, nil
}

func (s *statsService) AlertStats(ctx context.Context) (*AlertStats, error) {
	var out AlertStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.alerts.CountByStatus(ctx, models.AlertActive)
		out.Active = n
		return err
	})
	g.Go(func() error {
		n, err := s.alerts.CountByStatus(ctx, models.AlertResolved)
		out.Resolved = n
		return err
	})
	g.Go(func() error {
		n, err := s.alerts.CountByStatus(ctx, models.AlertOngoing)
		out.Ongoing = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *statsService) UsageSnapshot(ctx context.Context, limit int) ([]models.UsageLog, error) {
	return s.usage.Recent(ctx, limit)
}

func (s *statsService) UserStats(ctx context.Context) (*UserStats, error) {
	var out UserStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.users.Count(ctx)
		out.Total = n
		return err
	})
	g.Go(func() error {
		rows, err := s.users.CountByRole(ctx)
		out.ByRole = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.ByRole == nil {
		out.ByRole = []repository.RoleCount{}
	}
	return &out, nil
}

func (s *statsService) Overview(ctx context.Context) (*Overview, error) {
	var out Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.TouristStats(ctx)
		if err != nil {
			return err
		}
		out.Tourists = *t
		return nil
	})
	g.Go(func() error {
		a, err := s.AlertStats(ctx)
		if err != nil {
			return err
		}
		out.Alerts = *a
		return nil
	})
	g.Go(func() error {
		u, err := s.UserStats(ctx)
		if err != nil {
			return err
		}
		out.Users = *u
		return nil
	})
	g.Go(func() error {
		n, err := s.usage.Count(ctx)
		out.UsageLogs = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
