package main

import (
	"context"
	"fmt"

	"github.com/pearcec/todolist/internal/config"
	"github.com/pearcec/todolist/internal/directory"
	"github.com/pearcec/todolist/internal/domain"
)

// eventSource is what the non-interactive commands need from the service.
type eventSource interface {
	Login(ctx context.Context, username, password string) (string, error)
	ListEvents(ctx context.Context, token string) ([]directory.Record, error)
	Logout(ctx context.Context, token string) error
}

// fetchEvents logs in with the given credentials, reads every event and logs
// out again. Records that do not validate are counted in skipped.
func fetchEvents(ctx context.Context, src eventSource, username, password string) (events []domain.Event, skipped int, err error) {
	if username == "" || password == "" {
		return nil, 0, fmt.Errorf("%s and %s must be set", config.EnvUsername, config.EnvPassword)
	}

	token, err := src.Login(ctx, username, password)
	if err != nil {
		return nil, 0, fmt.Errorf("login failed: %w", err)
	}
	defer func() {
		if lerr := src.Logout(ctx, token); lerr != nil {
			logger.Warn("logout failed", "error", lerr)
		}
	}()

	records, err := src.ListEvents(ctx, token)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	for _, r := range records {
		e, err := r.Event()
		if err != nil {
			logger.Warn("skipping event", "id", r.ID, "error", err)
			skipped++
			continue
		}
		events = append(events, e)
	}
	return events, skipped, nil
}
