package service

import (
	"context"
	"time"
)

// SyncEvent describes the outcome of one full sync.
type SyncEvent struct {
	RequestID  string         `json:"request_id,omitempty"` // For distributed tracing
	EventID    string         `json:"event_id"`
	Success    bool           `json:"success"`
	Error      string         `json:"error,omitempty"`
	Counts     map[string]int `json:"counts,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// EventPublisher defines the interface for publishing sync events to a message queue
type EventPublisher interface {
	// PublishSyncEvent publishes the outcome of a full sync
	PublishSyncEvent(ctx context.Context, event *SyncEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
