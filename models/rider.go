package models

import "github.com/uptrace/bun"

// Rider is the canonical, deduplicated identity for one cyclist.
// Name holds the source site's normalized "surname firstname" form.
type Rider struct {
	bun.BaseModel `bun:"table:riders,alias:rd"`

	ID          string  `bun:"id,pk" json:"id"`
	Name        string  `bun:"name,notnull" json:"name"`
	PcsID       *string `bun:"pcs_id" json:"pcsId,omitempty"`
	Team        *string `bun:"team" json:"team,omitempty"`
	Nationality *string `bun:"nationality" json:"nationality,omitempty"`
}
