package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Price is one captured market price for a rider from a pricing source.
type Price struct {
	bun.BaseModel `bun:"table:prices,alias:p"`

	ID         int       `bun:"id,pk,autoincrement" json:"id"`
	RiderID    string    `bun:"rider_id,notnull" json:"riderId"`
	Source     string    `bun:"source,notnull" json:"source"`
	AmountEUR  int       `bun:"amount_eur,notnull" json:"amountEUR"`
	CapturedAt time.Time `bun:"captured_at,notnull,default:current_timestamp" json:"capturedAt"`

	Rider *Rider `bun:"rel:belongs-to,join:rider_id=id" json:"rider,omitempty"`
}
