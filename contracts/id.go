package contracts

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// GenerateID builds a contract id from a base-36 millisecond timestamp and a
// base-36 random suffix, optionally prefixed ("event-lx3k9t2a-4f8a1c...").
//
// Uniqueness is best-effort only: it relies on time plus randomness and is
// advisory, not guaranteed. Callers that need hard uniqueness must enforce it
// themselves (the registry rejects duplicate id+version pairs).
func GenerateID(prefix string) string {
	id := strconv.FormatInt(time.Now().UnixMilli(), 36) + strconv.FormatUint(rand.Uint64(), 36)
	if prefix != "" {
		return prefix + "-" + id
	}
	return id
}
