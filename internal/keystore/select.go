package keystore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/existflow/taskboard/internal/config"
	"github.com/existflow/taskboard/internal/db"
	"github.com/existflow/taskboard/internal/logger"
)

// PassphraseEnv names the variable holding the Secure store passphrase
const PassphraseEnv = "TASKBOARD_PASSPHRASE"

// Backend is a Store that owns resources
type Backend interface {
	Store
	Close() error
}

// Select opens the store configured by kind inside dir. With
// config.StoreAuto the encrypted store is used when a passphrase is present
// in the environment and the sqlite store otherwise.
func Select(kind, dir string) (Backend, error) {
	passphrase := os.Getenv(PassphraseEnv)

	if kind == config.StoreAuto || kind == "" {
		kind = config.StoreLocal
		if passphrase != "" {
			kind = config.StoreSecure
		}
	}

	logger.Debug("Selecting token store", logger.F("kind", kind), logger.F("dir", dir))

	switch kind {
	case config.StoreSecure:
		if passphrase == "" {
			return nil, fmt.Errorf("token_store is secure but %s is not set", PassphraseEnv)
		}
		return NewSecure(filepath.Join(dir, "secure.json"), passphrase)
	case config.StoreLocal:
		database, err := db.Open(filepath.Join(dir, "store.db"))
		if err != nil {
			return nil, err
		}
		return NewLocal(database), nil
	default:
		return nil, fmt.Errorf("unknown token store %q", kind)
	}
}
