package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskhub/taskhub/internal/auth"
	"github.com/taskhub/taskhub/internal/config"
	"github.com/taskhub/taskhub/internal/logger"
	"github.com/taskhub/taskhub/internal/persist"
	"github.com/taskhub/taskhub/internal/store"
)

const taskhubDirName = ".taskhub"

// taskhubPath returns the path to a file inside .taskhub/.
func taskhubPath(parts ...string) string {
	elems := append([]string{taskhubDirName}, parts...)
	return filepath.Join(elems...)
}

// mustConfig loads the project config, returning an error if taskhub is not
// initialized in the current directory.
func mustConfig() (*config.Config, error) {
	cfgPath := taskhubPath("config.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("taskhub not initialized. Run: taskhub init")
	}
	return config.Load(cfgPath)
}

// mustStore opens the document store configured for this project.
func mustStore() (*store.Store, error) {
	cfg, err := mustConfig()
	if err != nil {
		return nil, err
	}
	adapter, err := openAdapter(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	return store.New(adapter, log), nil
}

// openAdapter opens the persistence backend named in the config.
func openAdapter(cfg *config.Config) (persist.Adapter, error) {
	path := taskhubPath(cfg.Storage.Path)
	switch cfg.Storage.Backend {
	case "sqlite":
		return persist.OpenSQLite(path)
	default:
		return persist.OpenBolt(path)
	}
}

// mustProvider opens the local identity provider for this project.
func mustProvider() (*auth.Local, error) {
	cfg, err := mustConfig()
	if err != nil {
		return nil, err
	}
	return auth.NewLocal(taskhubPath("auth"), cfg.Secret())
}
