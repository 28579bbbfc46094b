package state

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

const (
	appName      = "eko"
	dbFileName   = "eko.db"
	boltFileName = "eko.bolt"
)

// ErrNotFound is returned by Storage.Get for a missing key.
var ErrNotFound = errors.New("key not found")

// Storage is a small durable key-value store.
type Storage interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	// DeleteOthers removes every key starting with prefix except keep.
	DeleteOthers(prefix, keep string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Open opens the storage backend at path. An empty path uses the XDG data
// directory.
func Open(backend, path string) (Storage, error) {
	switch backend {
	case BackendSQLite, "":
		if path == "" {
			p, err := dataFile(dbFileName)
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenSQLite(path)
	case BackendBolt:
		if path == "" {
			p, err := dataFile(boltFileName)
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenBolt(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, errors.Newf("unknown state backend %q", backend)
	}
}

func dataFile(name string) (string, error) {
	p, err := xdg.DataFile(filepath.Join(appName, name))
	if err != nil {
		return "", errors.Wrap(err, "resolve data file")
	}
	return p, nil
}
