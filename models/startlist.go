package models

import "github.com/uptrace/bun"

// StartlistEntry joins a race and a rider for one edition. Unique per
// (race_id, rider_id); re-sync overwrites dorsal and team on the existing row.
// Team is frozen as observed at sync time and may diverge from Rider.Team.
type StartlistEntry struct {
	bun.BaseModel `bun:"table:startlist_entries,alias:se"`

	ID      int    `bun:"id,pk,autoincrement" json:"id"`
	RaceID  string `bun:"race_id,notnull" json:"raceId"`
	RiderID string `bun:"rider_id,notnull" json:"riderId"`
	Dorsal  *int   `bun:"dorsal" json:"dorsal,omitempty"`
	Team    string `bun:"team,notnull" json:"team"`

	Race  *Race  `bun:"rel:belongs-to,join:race_id=id" json:"-"`
	Rider *Rider `bun:"rel:belongs-to,join:rider_id=id" json:"rider,omitempty"`
}
