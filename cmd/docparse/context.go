package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/cognicore/docparse/internal/logging"
	"github.com/cognicore/docparse/pkg/docparse"
	"github.com/cognicore/docparse/pkg/docparse/config"
	"github.com/cognicore/docparse/pkg/docparse/store"
	"github.com/cognicore/docparse/pkg/docparse/store/memstore"
	"github.com/cognicore/docparse/pkg/docparse/store/sqlite"
)

var errNoLedger = errors.New("no ledger configured (set ledger_path or DOCPARSE_LEDGER)")

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	components *config.Components
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Components, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		if path == "" {
			path = strings.TrimSpace(os.Getenv("DOCPARSE_CONFIG"))
		}
		comp, err := (&config.Loader{SettingsPath: path}).Load()
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		c.components = comp
	})
	return c.components, c.configErr
}

func (c *commandContext) logger(w io.Writer) *slog.Logger {
	settings := c.components.Settings
	return logging.New(w, logging.Options{Environment: settings.Environment, Level: settings.LogLevel})
}

// openStore opens the sqlite ledger when a path is configured and falls
// back to memory otherwise.
func (c *commandContext) openStore(ctx context.Context) (store.Store, error) {
	path := c.components.Settings.LedgerPath
	if path == "" {
		return memstore.New(), nil
	}
	st, err := sqlite.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}
	return st, nil
}

func (c *commandContext) newService(ctx context.Context, logger *slog.Logger) (*docparse.Service, error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	settings := c.components.Settings
	return docparse.New(docparse.Options{
		Pipeline:       c.components.Pipeline,
		Extractors:     c.components.Extractors,
		Store:          st,
		MaxUploadBytes: settings.MaxUploadBytes,
		MaxTextBytes:   settings.MaxTextBytes,
		Logger:         logger,
	}), nil
}
