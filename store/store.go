package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"

	"github.com/arloliu/candy/endian"
	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/internal/options"
	"github.com/arloliu/candy/stable"
	"github.com/arloliu/candy/value"
	"github.com/arloliu/candy/workspace"
)

var (
	valuesBucket     = []byte("values")
	workspacesBucket = []byte("workspaces")

	// shapeKey holds the chunk count of every zone. It cannot collide with the
	// 16-byte chunk keys.
	shapeKey = []byte("shape")
)

const chunkKeySize = 16

// Store is a bbolt-backed persistent store of named values and workspaces.
type Store struct {
	db     *bbolt.DB
	cfg    *config
	path   string
	closed atomic.Bool
}

// Open opens or creates the store at path.
//
// Parameters:
//   - path: Database file path
//   - opts: Store options (logger, compression, lock timeout, read-only)
//
// Returns:
//   - *Store: Opened store, to be closed with Close
//   - error: Option validation or database open error
func Open(path string, opts ...Option) (*Store, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	bopt := *bbolt.DefaultOptions
	bopt.Timeout = cfg.timeout
	bopt.ReadOnly = cfg.readOnly
	bopt.NoSync = cfg.noSync

	db, err := bbolt.Open(path, 0o666, &bopt)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	if !cfg.readOnly {
		err = db.Update(func(tx *bbolt.Tx) error {
			for _, name := range [][]byte{valuesBucket, workspacesBucket} {
				if _, err := tx.CreateBucketIfNotExists(name); err != nil {
					return fmt.Errorf("create bucket %s: %w", name, err)
				}
			}

			return nil
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: %w", err)
		}
	}

	s := &Store{db: db, cfg: cfg, path: path}
	cfg.logger.LogAttrs(context.Background(), slog.LevelDebug, "store: opened",
		slog.String("path", path),
		slog.String("compression", cfg.compression.String()),
		slog.Bool("read_only", cfg.readOnly),
	)

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database. Closing a closed store is a no-op.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("store: close: %w", err)
	}
	s.cfg.logger.LogAttrs(context.Background(), slog.LevelDebug, "store: closed", slog.String("path", s.path))

	return nil
}

// Put stores v under key, replacing any previous value.
func (s *Store) Put(key string, v value.Value) error {
	if err := s.checkKey(key); err != nil {
		return err
	}

	rec, err := s.encodeValue(v)
	if err != nil {
		return fmt.Errorf("store: put %q: %w", key, err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		return tx.Bucket(valuesBucket).Put([]byte(key), rec)
	})
}

// Get returns the value stored under key.
//
// Returns errs.ErrNotFound when the key is absent, or a record error when the
// stored bytes are corrupted.
func (s *Store) Get(key string) (value.Value, error) {
	if err := s.checkKey(key); err != nil {
		return value.Value{}, err
	}

	var rec []byte
	err := s.view(func(tx *bbolt.Tx) error {
		b := tx.Bucket(valuesBucket)
		if b == nil {
			return nil
		}
		// bbolt memory is only valid inside the transaction
		if data := b.Get([]byte(key)); data != nil {
			rec = bytes.Clone(data)
		}

		return nil
	})
	if err != nil {
		return value.Value{}, err
	}
	if rec == nil {
		return value.Value{}, fmt.Errorf("%w: %q", errs.ErrNotFound, key)
	}

	v, err := decodeValue(rec)
	if err != nil {
		return value.Value{}, fmt.Errorf("store: get %q: %w", key, err)
	}

	return v, nil
}

// Has reports whether a value is stored under key.
func (s *Store) Has(key string) (bool, error) {
	if err := s.checkKey(key); err != nil {
		return false, err
	}

	var found bool
	err := s.view(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(valuesBucket); b != nil {
			found = b.Get([]byte(key)) != nil
		}

		return nil
	})

	return found, err
}

// Delete removes the value stored under key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	if err := s.checkKey(key); err != nil {
		return err
	}

	return s.update(func(tx *bbolt.Tx) error {
		return tx.Bucket(valuesBucket).Delete([]byte(key))
	})
}

// Keys returns all value keys in byte order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.view(func(tx *bbolt.Tx) error {
		b := tx.Bucket(valuesBucket)
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})

	return keys, err
}

// Range calls fn for every stored value in key order until fn returns false.
//
// Corrupted records are logged and skipped. fn runs outside the read transaction,
// so it may call other Store methods.
func (s *Store) Range(fn func(key string, v value.Value) bool) error {
	type item struct {
		key string
		rec []byte
	}

	var items []item
	err := s.view(func(tx *bbolt.Tx) error {
		b := tx.Bucket(valuesBucket)
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, v []byte) error {
			items = append(items, item{key: string(k), rec: bytes.Clone(v)})
			return nil
		})
	})
	if err != nil {
		return err
	}

	for _, it := range items {
		v, err := decodeValue(it.rec)
		if err != nil {
			s.cfg.logger.LogAttrs(context.Background(), slog.LevelWarn, "store: skipping corrupted record",
				slog.String("key", it.key),
				slog.Any("err", err),
			)

			continue
		}
		if !fn(it.key, v) {
			return nil
		}
	}

	return nil
}

// PutWorkspace stores ws under name, replacing any previous workspace.
//
// Every chunk is written as its own record, keyed by the big-endian zone and
// chunk index. The zone lengths are stored alongside, so empty zones survive.
func (s *Store) PutWorkspace(name string, ws workspace.Workspace) error {
	if err := s.checkKey(name); err != nil {
		return err
	}

	shape := make([]uint64, len(ws))
	for i, zone := range ws {
		shape[i] = uint64(len(zone))
	}
	shapeRec, err := msgpack.Marshal(shape)
	if err != nil {
		return fmt.Errorf("store: put workspace %q: %w", name, err)
	}

	chunks := ws.ToAddressedChunkArray()
	keys := make([][]byte, len(chunks))
	recs := make([][]byte, len(chunks))
	for i, c := range chunks {
		sc, err := stable.StabilizeChunk(c)
		if err != nil {
			return fmt.Errorf("store: put workspace %q: %w", name, err)
		}
		payload, err := stable.MarshalChunk(sc)
		if err != nil {
			return fmt.Errorf("store: put workspace %q: %w", name, err)
		}
		if recs[i], err = encodeRecord(payload, s.cfg.compression, FlagChunkRecord); err != nil {
			return fmt.Errorf("store: put workspace %q: %w", name, err)
		}
		keys[i] = chunkKey(c.Zone, c.Chunk)
	}

	err = s.update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(workspacesBucket)
		if root.Bucket([]byte(name)) != nil {
			if err := root.DeleteBucket([]byte(name)); err != nil {
				return err
			}
		}
		b, err := root.CreateBucket([]byte(name))
		if err != nil {
			return err
		}
		if err := b.Put(shapeKey, shapeRec); err != nil {
			return err
		}
		for i := range keys {
			if err := b.Put(keys[i], recs[i]); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.logger.LogAttrs(context.Background(), slog.LevelDebug, "store: workspace stored",
		slog.String("name", name),
		slog.Int("zones", len(ws)),
		slog.Int("chunks", len(chunks)),
	)

	return nil
}

// GetWorkspace loads the workspace stored under name.
//
// Returns errs.ErrNotFound when no workspace has that name. Unlike Range, a
// corrupted chunk record fails the whole load.
func (s *Store) GetWorkspace(name string) (workspace.Workspace, error) {
	if err := s.checkKey(name); err != nil {
		return nil, err
	}

	var (
		found    bool
		shapeRec []byte
		keys     [][]byte
		recs     [][]byte
	)
	err := s.view(func(tx *bbolt.Tx) error {
		root := tx.Bucket(workspacesBucket)
		if root == nil {
			return nil
		}
		b := root.Bucket([]byte(name))
		if b == nil {
			return nil
		}
		found = true
		shapeRec = bytes.Clone(b.Get(shapeKey))

		return b.ForEach(func(k, v []byte) error {
			if len(k) != chunkKeySize {
				return nil
			}
			keys = append(keys, bytes.Clone(k))
			recs = append(recs, bytes.Clone(v))

			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: workspace %q", errs.ErrNotFound, name)
	}

	var shape []uint64
	if err := msgpack.Unmarshal(shapeRec, &shape); err != nil {
		return nil, fmt.Errorf("store: get workspace %q: shape: %w", name, err)
	}

	ws := make(workspace.Workspace, len(shape))
	for i, n := range shape {
		if i >= workspace.MaxZones || n > workspace.MaxChunksPerZone {
			return nil, fmt.Errorf("store: get workspace %q: %w: zone %d holds %d chunks", name, errs.ErrMalformedAddress, i, n)
		}
		zone := make(workspace.DataZone, n)
		for j := range zone {
			zone[j] = value.None()
		}
		ws[i] = zone
	}

	engine := endian.GetBigEndianEngine()
	for i, rec := range recs {
		zone, chunk := engine.Uint64(keys[i][0:8]), engine.Uint64(keys[i][8:16])
		c, err := decodeChunk(rec)
		if err != nil {
			return nil, fmt.Errorf("store: get workspace %q: zone %d chunk %d: %w", name, zone, chunk, err)
		}
		if c.Zone != zone || c.Chunk != chunk || zone >= uint64(len(ws)) || chunk >= uint64(len(ws[zone])) {
			return nil, fmt.Errorf("store: get workspace %q: %w: zone %d chunk %d", name, errs.ErrMalformedAddress, c.Zone, c.Chunk)
		}
		ws[zone][chunk] = c.Value
	}

	return ws, nil
}

// DeleteWorkspace removes the workspace stored under name. Deleting an absent
// workspace is a no-op.
func (s *Store) DeleteWorkspace(name string) error {
	if err := s.checkKey(name); err != nil {
		return err
	}

	return s.update(func(tx *bbolt.Tx) error {
		err := tx.Bucket(workspacesBucket).DeleteBucket([]byte(name))
		if errors.Is(err, bbolt.ErrBucketNotFound) {
			return nil
		}

		return err
	})
}

// Workspaces returns the names of all stored workspaces in byte order.
func (s *Store) Workspaces() ([]string, error) {
	var names []string
	err := s.view(func(tx *bbolt.Tx) error {
		root := tx.Bucket(workspacesBucket)
		if root == nil {
			return nil
		}

		return root.ForEach(func(k, v []byte) error {
			if v == nil {
				names = append(names, string(k))
			}

			return nil
		})
	})

	return names, err
}

func (s *Store) checkKey(key string) error {
	if s.closed.Load() {
		return errs.ErrStoreClosed
	}
	if key == "" {
		return fmt.Errorf("%w: empty key", errs.ErrInvalidKey)
	}

	return nil
}

func (s *Store) view(fn func(tx *bbolt.Tx) error) error {
	if s.closed.Load() {
		return errs.ErrStoreClosed
	}
	if err := s.db.View(fn); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	return nil
}

func (s *Store) update(fn func(tx *bbolt.Tx) error) error {
	if s.closed.Load() {
		return errs.ErrStoreClosed
	}
	if err := s.db.Update(fn); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	return nil
}

func (s *Store) encodeValue(v value.Value) ([]byte, error) {
	sv, err := stable.Stabilize(v)
	if err != nil {
		return nil, err
	}
	payload, err := stable.Marshal(sv)
	if err != nil {
		return nil, err
	}

	return encodeRecord(payload, s.cfg.compression, 0)
}

func decodeValue(rec []byte) (value.Value, error) {
	h, payload, err := decodeRecord(rec)
	if err != nil {
		return value.Value{}, err
	}
	if h.IsChunk() {
		return value.Value{}, fmt.Errorf("%w: chunk record in value bucket", errs.ErrInvalidMagicNumber)
	}
	sv, err := stable.Unmarshal(payload)
	if err != nil {
		return value.Value{}, err
	}

	return stable.Destabilize(sv)
}

func decodeChunk(rec []byte) (workspace.AddressedChunk, error) {
	h, payload, err := decodeRecord(rec)
	if err != nil {
		return workspace.AddressedChunk{}, err
	}
	if !h.IsChunk() {
		return workspace.AddressedChunk{}, fmt.Errorf("%w: value record in workspace bucket", errs.ErrInvalidMagicNumber)
	}
	sc, err := stable.UnmarshalChunk(payload)
	if err != nil {
		return workspace.AddressedChunk{}, err
	}

	return stable.DestabilizeChunk(sc)
}

func chunkKey(zone, chunk uint64) []byte {
	engine := endian.GetBigEndianEngine()
	key := make([]byte, 0, chunkKeySize)
	key = engine.AppendUint64(key, zone)

	return engine.AppendUint64(key, chunk)
}
