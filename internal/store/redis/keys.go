package redis

import (
	"fmt"
	"strings"
)

const (
	// KeyPrefixRevision is the prefix for stored sidebar revisions
	KeyPrefixRevision = "docnav:sidebar:rev:"
	// KeyCurrent holds the digest of the revision being served
	KeyCurrent = "docnav:sidebar:current"
	// KeyRevisions is the list of revision digests, newest first
	KeyRevisions = "docnav:sidebar:revisions"
)

// RevisionKey returns the Redis key for a sidebar revision by digest
func RevisionKey(digest string) string {
	return KeyPrefixRevision + digest
}

// ExtractDigest extracts the revision digest from a Redis key
func ExtractDigest(key string) (string, error) {
	if !strings.HasPrefix(key, KeyPrefixRevision) || len(key) == len(KeyPrefixRevision) {
		return "", fmt.Errorf("invalid revision key: %s", key)
	}
	return key[len(KeyPrefixRevision):], nil
}
