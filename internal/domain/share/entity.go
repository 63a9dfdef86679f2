package share

import "strings"

// KeyPrefix namespaces shared reports inside the key-value store.
const KeyPrefix = "report_"

// CreatedAtField is stamped on every stored report.
const CreatedAtField = "createdAt"

// Report is a shared report snapshot. Fields posted by the client are kept
// verbatim, so it stays an open JSON object rather than a fixed struct.
type Report map[string]any

// Key returns the store key for a share id.
func Key(id string) string {
	return KeyPrefix + id
}

// IDFromKey strips the namespace from a store key.
func IDFromKey(key string) string {
	return strings.TrimPrefix(key, KeyPrefix)
}
