package db

import (
	"time"

	"github.com/uptrace/bun"
)

type HistorySnapshotModel struct {
	bun.BaseModel `bun:"table:immo_history_snapshot,alias:ihs"`
	ListingId     string    `bun:"listing_id,pk"`
	FirstSeen     time.Time `bun:"first_seen,notnull"`
	LastSeen      time.Time `bun:"last_seen,notnull"`
	LastPrice     float64   `bun:"last_price,notnull"`
	Status        string    `bun:"status,notnull"`
	PriceDropPct  float64   `bun:"price_drop_pct,notnull"`
}
