// Package cache persists fetched artifacts on disk keyed by a hash of their
// origin URL. Creation and expiration dates live beside each entry as a
// sidecar attributes file, never inside the content, and an injectable
// delegate computes refreshed expiration dates, so fixed-TTL and
// sliding-window policies are both a one-line strategy.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wesleyorama2/parry/codec"
)

const attrsSuffix = ".attrs"

// Key derives the on-disk entry name for an origin URL. Entries are not
// verified against the full URL: two distinct URLs that hash-collide
// silently shadow each other.
func Key(originURL string) string {
	sum := sha256.Sum256([]byte(originURL))
	return hex.EncodeToString(sum[:])
}

// Store is a disk-backed response cache rooted at a single directory.
//
// Concurrent writes to the same key race with last-writer-wins semantics;
// content is always written before attributes, so a reader that finds
// content without attributes sees a corrupt entry, never a torn one.
type Store struct {
	root     string
	codec    codec.Codec
	delegate Delegate
	now      func() time.Time
	log      zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithDelegate installs the expiration strategy. Without one, new entries
// expire immediately.
func WithDelegate(d Delegate) Option {
	return func(s *Store) { s.delegate = d }
}

// WithCodec replaces the JSON codec used for stored values.
func WithCodec(c codec.Codec) Option {
	return func(s *Store) { s.codec = c }
}

// WithLogger attaches a logger for the maintenance sweeps.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates the root directory if needed and returns a store.
func NewStore(root string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, err
	}
	s := &Store{
		root:  root,
		codec: codec.JSON{},
		now:   time.Now,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) contentPath(key string) string {
	return filepath.Join(s.root, key)
}

func (s *Store) attrsPath(key string) string {
	return filepath.Join(s.root, key+attrsSuffix)
}

// Fetch reads and decodes the entry for originURL. ok is false when the
// entry is absent. When a delegate is installed it is offered the entry's
// current parameters and its refreshed expiration date is written back
// before Fetch returns, which is what makes sliding TTLs work without a
// separate maintenance call.
func Fetch[T any](s *Store, originURL string) (T, bool, error) {
	var zero T
	key := Key(originURL)

	data, err := os.ReadFile(s.contentPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}

	params, err := s.readParams(key)
	if err != nil {
		return zero, false, err
	}

	if s.delegate != nil {
		params.ExpirationDate = s.delegate.NextExpiration(params, s.now())
		if err := s.writeParams(key, params); err != nil {
			return zero, false, err
		}
	}

	var v T
	if err := s.codec.Decode(data, &v); err != nil {
		return zero, false, &ConversionError{TypeName: fmt.Sprintf("%T", v), Err: err}
	}
	return v, true, nil
}

// Write encodes v and stores it under originURL's key, unconditionally
// replacing any prior entry. The reference date is now; the initial
// expiration date comes from the delegate, or is now when no delegate is
// installed (immediately expired by default).
func (s *Store) Write(v any, originURL string) error {
	data, err := s.codec.Encode(v)
	if err != nil {
		return &ConversionError{TypeName: fmt.Sprintf("%T", v), Err: err}
	}

	key := Key(originURL)
	if err := s.atomicWrite(s.contentPath(key), data); err != nil {
		return err
	}
	return s.writeParams(key, s.initialParams())
}

// Acquire folds an already-downloaded file into the cache by moving it
// under originURL's key and stamping it with initial parameters, without
// re-reading its bytes.
func (s *Store) Acquire(localPath, originURL string) error {
	key := Key(originURL)
	if err := os.Rename(localPath, s.contentPath(key)); err != nil {
		return err
	}
	return s.writeParams(key, s.initialParams())
}

// Clear deletes every entry under the cache root. Per-entry failures are
// logged and swallowed.
func (s *Store) Clear() {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		s.log.Debug().Err(err).Msg("cache clear: cannot read root")
		return
	}
	for _, entry := range entries {
		if err := os.Remove(filepath.Join(s.root, entry.Name())); err != nil {
			s.log.Debug().Err(err).Str("entry", entry.Name()).Msg("cache clear: remove failed")
		}
	}
}

// PruneExpired scans all entries and deletes those whose expiration date
// has elapsed, along with any file missing its attributes (foreign or
// corrupt). Entries expiring in the future are left untouched. Deletion is
// best-effort per entry.
func (s *Store) PruneExpired() {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		s.log.Debug().Err(err).Msg("cache prune: cannot read root")
		return
	}

	now := s.now()
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, attrsSuffix) {
			// Orphaned attribute files are foreign.
			if _, err := os.Stat(s.contentPath(strings.TrimSuffix(name, attrsSuffix))); errors.Is(err, fs.ErrNotExist) {
				s.remove(strings.TrimSuffix(name, attrsSuffix))
			}
			continue
		}

		params, err := s.readParams(name)
		if err != nil {
			s.remove(name)
			continue
		}
		if !params.ExpirationDate.After(now) {
			s.remove(name)
		}
	}
}

func (s *Store) remove(key string) {
	if err := os.Remove(s.contentPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Debug().Err(err).Str("key", key).Msg("cache prune: remove failed")
	}
	if err := os.Remove(s.attrsPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Debug().Err(err).Str("key", key).Msg("cache prune: remove attrs failed")
	}
}

func (s *Store) initialParams() Parameters {
	now := s.now()
	p := Parameters{ReferenceDate: now, ExpirationDate: now}
	if s.delegate != nil {
		p.ExpirationDate = s.delegate.NextExpiration(p, now)
	}
	return p
}

func (s *Store) readParams(key string) (Parameters, error) {
	data, err := os.ReadFile(s.attrsPath(key))
	if err != nil {
		return Parameters{}, &CorruptedEntryError{Key: key}
	}
	var p Parameters
	if err := json.Unmarshal(data, &p); err != nil {
		return Parameters{}, &CorruptedEntryError{Key: key}
	}
	if p.ReferenceDate.IsZero() || p.ExpirationDate.IsZero() {
		return Parameters{}, &CorruptedEntryError{Key: key}
	}
	return p, nil
}

func (s *Store) writeParams(key string, p Parameters) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.atomicWrite(s.attrsPath(key), data)
}

// atomicWrite writes to a temporary file first, then renames.
func (s *Store) atomicWrite(path string, data []byte) error {
	tmp := path + fmt.Sprintf(".tmp.%d", rand.Int())
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
