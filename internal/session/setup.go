package session

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"propdesk/internal/auth"
	"propdesk/internal/config"
	"propdesk/internal/crud"
	"propdesk/internal/prompt"
	"propdesk/internal/schema"
)

// New wires a controller from configuration: the field tables for the
// configured table names, the admin verifier for the configured hash, and a
// prompter over in/out.
func New(cfg *config.Config, store crud.Store, in io.Reader, out io.Writer, log *zap.Logger) (*Controller, error) {
	catalog := schema.NewCatalog(cfg.Tables)
	if err := catalog.Check(); err != nil {
		return nil, fmt.Errorf("invalid field tables: %w", err)
	}

	verifier, err := auth.FromHash(cfg.AdminPasswordHash)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_PASSWORD_HASH: %w", err)
	}
	if cfg.AdminPasswordHash == "" {
		log.Warn("ADMIN_PASSWORD_HASH is not set; admin access is disabled")
	}

	p := prompt.New(in, out, prompt.WithMaxAttempts(cfg.PromptMaxAttempts))
	engine := crud.New(store, p, catalog, log)

	return NewController(engine, p, catalog, verifier, log), nil
}
