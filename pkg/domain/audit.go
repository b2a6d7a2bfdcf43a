package domain

// AuditLogger records who changed what. Every mutating service call
// appends one record. Services depend on this interface rather than a
// concrete sink.
type AuditLogger interface {
	Log(action string, actor string, metadata map[string]interface{}) error
}

// NopAuditLogger discards all records. Used in tests and read-only
// tooling.
type NopAuditLogger struct{}

func (NopAuditLogger) Log(string, string, map[string]interface{}) error { return nil }
