package state

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/llehouerou/eko/internal/playback"
)

// Snapshots live under a versioned key. A version bump makes older
// snapshots unreadable by design: they are ignored and pruned, never
// migrated.
const (
	KeyPrefix = "eko.playback."
	Key       = KeyPrefix + "v1"
)

// Hydrator accepts the restored state once at startup.
type Hydrator interface {
	Hydrate(r *playback.Restore)
}

// Bridge connects the playback service to durable storage.
type Bridge struct {
	store Storage
	log   zerolog.Logger
}

var _ playback.Persister = (*Bridge)(nil)

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithLogger sets the bridge logger.
func WithLogger(log zerolog.Logger) BridgeOption {
	return func(b *Bridge) { b.log = log.With().Str("component", "state").Logger() }
}

// NewBridge creates a bridge over store.
func NewBridge(store Storage, opts ...BridgeOption) *Bridge {
	b := &Bridge{store: store, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Persist writes the snapshot synchronously.
func (b *Bridge) Persist(s playback.Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := b.store.Put(Key, data); err != nil {
		return errors.Wrap(err, "write snapshot")
	}
	return nil
}

// Load reads the stored snapshot. A missing snapshot returns nil, nil.
func (b *Bridge) Load() (*playback.Restore, error) {
	data, err := b.store.Get(Key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot")
	}

	r, skipped, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		b.log.Warn().Strs("fields", skipped).Msg("ignored unreadable snapshot fields")
	}
	return r, nil
}

// Hydrate restores the stored snapshot into h. Read failures fall back to
// defaults; h is always marked hydrated. Snapshots of other versions are
// pruned afterwards.
func (b *Bridge) Hydrate(h Hydrator) {
	r, err := b.Load()
	if err != nil {
		b.log.Warn().Err(err).Msg("starting from defaults")
		r = nil
	}
	h.Hydrate(r)

	if err := b.store.DeleteOthers(KeyPrefix, Key); err != nil {
		b.log.Warn().Err(err).Msg("prune old snapshots")
	}
}

// Reset removes every stored snapshot.
func (b *Bridge) Reset() error {
	return b.store.DeleteOthers(KeyPrefix, "")
}
