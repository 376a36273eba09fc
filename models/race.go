package models

import "github.com/uptrace/bun"

// Race is one tracked race edition and the page its startlist is scraped from.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	ID        string `bun:"id,pk" json:"id"`
	Slug      string `bun:"slug,notnull,unique" json:"slug"`
	Name      string `bun:"name,notnull" json:"name"`
	Date      string `bun:"date,notnull,type:date" json:"date"`
	SourceURL string `bun:"source_url,notnull" json:"sourceUrl"`
}
