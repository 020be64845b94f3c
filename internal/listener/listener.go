// Package listener provides a Postgres LISTEN/NOTIFY consumer that tells the
// API when the ingestion job has loaded new statistics. It holds a dedicated
// pgx connection (not from the pool).
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// RefreshEvent is the optional JSON payload of a refresh notification.
type RefreshEvent struct {
	Source string `json:"source"` // e.g. "oracles_elixir"
	Rows   int    `json:"rows"`
	Ts     int64  `json:"ts"`
}

// ParseEvent decodes a notification payload. Empty or non-JSON payloads are
// still valid refresh signals and yield a zero event.
func ParseEvent(payload string) (RefreshEvent, error) {
	var ev RefreshEvent
	if payload == "" {
		return ev, nil
	}
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return RefreshEvent{}, err
	}
	return ev, nil
}

// Start opens a dedicated connection and listens on channel, calling
// onRefresh for every notification. It reconnects automatically on
// connection loss. Blocks until ctx is cancelled. Intended to be called
// with `go`.
func Start(ctx context.Context, dbURL, channel string, onRefresh func(RefreshEvent), logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, channel, onRefresh, logger)
		if ctx.Err() != nil {
			logger.Info("Refresh listener stopped (context cancelled)")
			return
		}

		logger.Error("Refresh listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

func listenLoop(ctx context.Context, dbURL, channel string, onRefresh func(RefreshEvent), logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize())
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", channel, err)
	}
	logger.Info("Refresh listener connected", "channel", channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		ev, err := ParseEvent(notification.Payload)
		if err != nil {
			logger.Warn("Unparseable refresh payload, refreshing anyway",
				"payload", notification.Payload, "error", err)
		}
		logger.Info("Stats refresh received", "source", ev.Source, "rows", ev.Rows)
		onRefresh(ev)
	}
}
