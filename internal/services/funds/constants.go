package funds

import "time"

// Dedup cache settings. A processed marker only suppresses replays within the
// TTL window; after it expires the same key is treated as a fresh transfer.
const (
	DedupKeyPrefix  = "transfer:dedup:"
	ProcessedMarker = "processed"
	DedupTTL        = 30 * time.Second
)
