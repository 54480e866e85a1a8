package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single settle-up or transfer
	// transaction so a stuck statement cannot hold row locks indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// PartyCacheTTL is how long cached party snapshots stay valid. Mutations
	// drop the key eagerly; the TTL only covers writes that bypass the engine.
	PartyCacheTTL = 5 * time.Minute
)
