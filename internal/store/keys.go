package store

import "fmt"

// ProfileKey is the key of a profile blob at a schema version, e.g.
// "linkpage:profile:alice:v2".
func ProfileKey(prefix, handle string, version int) string {
	return fmt.Sprintf("%s:profile:%s:v%d", prefix, handle, version)
}

// AccountKey is the key of an account blob at a schema version.
func AccountKey(prefix, handle string, version int) string {
	return fmt.Sprintf("%s:account:%s:v%d", prefix, handle, version)
}
