// Package mcp provides the Model Context Protocol server for consistency.
package mcp

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/consistency/pkg/app"
	"tableflip.dev/consistency/pkg/habit"
)

// DefaultTimelineDays is how many days the timeline tool returns by default.
const DefaultTimelineDays = 7

// Service adapts app.Service to the argument shapes MCP clients send.
type Service struct {
	App *app.Service
}

// AddHabitOptions captures the parameters used to create a habit.
type AddHabitOptions struct {
	Name string
	Type string
	Unit string
}

// NewService builds a service wrapper around the app service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("service is not configured")
	}
	return nil
}

// ListHabits returns every habit in display order.
func (s *Service) ListHabits(ctx context.Context) ([]app.HabitView, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return app.NewHabitViews(s.App.Habits()), nil
}

// HabitByID returns one habit.
func (s *Service) HabitByID(ctx context.Context, id string) (*app.HabitView, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	h, err := s.App.Habit(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	v := app.NewHabitView(h)
	return &v, nil
}

// AddHabit creates a habit. An empty type means yes/no.
func (s *Service) AddHabit(ctx context.Context, opts AddHabitOptions) (*app.HabitView, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	t, err := habit.ParseType(opts.Type)
	if err != nil {
		return nil, err
	}
	h, err := s.App.AddHabit(ctx, opts.Name, t, opts.Unit)
	if err != nil {
		return nil, err
	}
	v := app.NewHabitView(h)
	return &v, nil
}

type entryOp func(ctx context.Context, id string, key habit.DateKey) (habit.Habit, error)

func (s *Service) apply(ctx context.Context, id, date string, op func(*app.Service) entryOp) (*app.HabitView, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	key, err := s.App.ResolveDate(date)
	if err != nil {
		return nil, err
	}
	h, err := op(s.App)(ctx, strings.TrimSpace(id), key)
	if err != nil {
		return nil, err
	}
	v := app.NewHabitView(h)
	return &v, nil
}

// ToggleEntry flips a yes/no habit on date.
func (s *Service) ToggleEntry(ctx context.Context, id, date string) (*app.HabitView, error) {
	return s.apply(ctx, id, date, func(a *app.Service) entryOp { return a.Toggle })
}

// IncrementEntry records a quick completion on date.
func (s *Service) IncrementEntry(ctx context.Context, id, date string) (*app.HabitView, error) {
	return s.apply(ctx, id, date, func(a *app.Service) entryOp { return a.Increment })
}

// DecrementEntry steps a numeric habit down on date.
func (s *Service) DecrementEntry(ctx context.Context, id, date string) (*app.HabitView, error) {
	return s.apply(ctx, id, date, func(a *app.Service) entryOp { return a.Decrement })
}

// ClearEntry unsets date.
func (s *Service) ClearEntry(ctx context.Context, id, date string) (*app.HabitView, error) {
	return s.apply(ctx, id, date, func(a *app.Service) entryOp { return a.Clear })
}

// SetEntry records value, given as text, on date.
func (s *Service) SetEntry(ctx context.Context, id, date, value string) (*app.HabitView, error) {
	return s.apply(ctx, id, date, func(a *app.Service) entryOp {
		return func(ctx context.Context, id string, key habit.DateKey) (habit.Habit, error) {
			return a.SetText(ctx, id, key, value)
		}
	})
}

// Timeline returns the grid for days dates ending at date.
func (s *Service) Timeline(ctx context.Context, date string, days int) (*app.GridView, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	end, err := s.App.ResolveDate(date)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = DefaultTimelineDays
	}
	if days > 366 {
		days = 366
	}
	v := app.NewGridView(s.App.GridAround(end, days))
	return &v, nil
}
