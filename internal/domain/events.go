package domain

import "time"

// TopicFileVersionCreated is the Kafka topic for version commit events.
const TopicFileVersionCreated = "docstore.file.version-created"

// VersionCommitted is published through the transactional outbox whenever a
// new FileVersion becomes current, for both initial uploads and revisions.
// Downstream consumers (indexing, audit) rely on the event being enqueued in
// the same transaction as the catalog mutation.
type VersionCommitted struct {
	TenantID    string    `json:"tenant_id"`
	FileID      int64     `json:"file_id"`
	VersionID   int64     `json:"version_id"`
	ContentHash string    `json:"content_hash"`
	SizeBytes   int64     `json:"size_bytes"`
	MimeType    string    `json:"mime_type"`
	Initial     bool      `json:"initial"`
	CommittedAt time.Time `json:"committed_at"`
}

// PartitionKey returns the Kafka partition key for the event. Events for the
// same tenant and file stay ordered.
func (e VersionCommitted) PartitionKey() string {
	return e.TenantID
}
