package handlers

import (
	"github.com/uptrace/bun"

	"github.com/padraicbc/classicsapi/config"
	"github.com/padraicbc/classicsapi/syncer"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db     *bun.DB
	sync   *syncer.Orchestrator
	cfg    *config.Config
	JWTKey []byte
}

// New creates a Handler with the given database connection, sync orchestrator
// and application config.
func New(db *bun.DB, sync *syncer.Orchestrator, cfg *config.Config) *Handler {
	return &Handler{db: db, sync: sync, cfg: cfg, JWTKey: cfg.JWTKey()}
}
