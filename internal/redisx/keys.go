package redisx

import "time"

const (
	// Session token per profile: catalogctl:session:{profile} -> access token
	KeySession = "catalogctl:session:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLSession time.Duration = 0 // no expiry, logout clears it
	TTLDedup                 = 48 * time.Hour
)
