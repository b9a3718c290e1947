package service

import (
	"time"

	"quest/internal/domain/entity"
)

// Label values for the operation label.
const (
	OperationRead  = "read"
	OperationWrite = "write"
)

// Label values for replication outcomes.
const (
	ReplicationStored  = "stored"
	ReplicationSkipped = "skipped"
	ReplicationFailed  = "failed"
	ReplicationDropped = "dropped"
)

// TierMetrics records which tier served each request and how background work went.
type TierMetrics interface {
	RecordServed(kind entity.Kind, operation string, source entity.Source)
	RecordTierFailure(kind entity.Kind, tier entity.Source)
	RecordReplication(kind entity.Kind, status string, n int)
	SetReplicationQueueDepth(n int)
	RecordSync(success bool, duration time.Duration, finishedAt time.Time, counts map[entity.Kind]int)
}
