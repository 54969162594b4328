package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/scriptvec/scriptvec"
	"github.com/scriptvec/scriptvec/blobstore"
	"github.com/scriptvec/scriptvec/resource"
)

// Manager saves and loads vectors through a blob store.
type Manager struct {
	store  blobstore.BlobStore
	codec  Codec
	ctrl   *resource.Controller
	logger *scriptvec.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithCodec sets the compression codec for new snapshots.
func WithCodec(c Codec) ManagerOption {
	return func(m *Manager) { m.codec = c }
}

// WithController throttles snapshot concurrency and I/O.
func WithController(ctrl *resource.Controller) ManagerOption {
	return func(m *Manager) { m.ctrl = ctrl }
}

// WithLogger sets the logger for snapshot diagnostics.
func WithLogger(l *scriptvec.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a Manager writing zstd-compressed snapshots by default.
func NewManager(store blobstore.BlobStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		codec:  CodecZstd,
		logger: scriptvec.NoopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Save snapshots vec under name.
func (m *Manager) Save(ctx context.Context, name string, vec *scriptvec.Vector) error {
	if err := m.ctrl.AcquireJob(ctx); err != nil {
		return err
	}
	defer m.ctrl.ReleaseJob()

	values := vec.Values()

	var buf bytes.Buffer
	if err := WriteFrame(&buf, values, m.codec); err != nil {
		m.logger.LogSnapshot(ctx, name, len(values), err)
		return err
	}
	if err := m.ctrl.WaitIO(ctx, buf.Len()); err != nil {
		return err
	}

	w, err := m.store.Create(ctx, name)
	if err != nil {
		m.logger.LogSnapshot(ctx, name, len(values), err)
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		w.Close()
		m.logger.LogSnapshot(ctx, name, len(values), err)
		return err
	}
	if err := w.Close(); err != nil {
		m.logger.LogSnapshot(ctx, name, len(values), err)
		return err
	}

	m.logger.LogSnapshot(ctx, name, len(values), nil)
	return nil
}

// Load replaces vec's contents with the snapshot stored under name. The
// vector is untouched when the snapshot is missing or corrupted.
func (m *Manager) Load(ctx context.Context, name string, vec *scriptvec.Vector) error {
	if err := m.ctrl.AcquireJob(ctx); err != nil {
		return err
	}
	defer m.ctrl.ReleaseJob()

	b, err := m.store.Open(ctx, name)
	if err != nil {
		m.logger.LogLoad(ctx, name, 0, err)
		return err
	}
	defer b.Close()

	if err := m.ctrl.WaitIO(ctx, int(b.Size())); err != nil {
		return err
	}

	values, err := ReadFrame(blobstore.Reader(b))
	if err != nil {
		m.logger.LogLoad(ctx, name, 0, err)
		return err
	}
	if err := vec.Replace(values); err != nil {
		m.logger.LogLoad(ctx, name, len(values), err)
		return err
	}

	m.logger.LogLoad(ctx, name, len(values), nil)
	return nil
}

// SaveAll snapshots every vector in reg concurrently, one blob per vector
// named after it. The first failure cancels the remaining saves.
func (m *Manager) SaveAll(ctx context.Context, reg *scriptvec.Registry) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range reg.Names() {
		vec, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		g.Go(func() error {
			if err := m.Save(ctx, name, vec); err != nil {
				return fmt.Errorf("save %q: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Restore loads the named snapshots into reg concurrently, creating vectors
// that do not exist yet.
func (m *Manager) Restore(ctx context.Context, reg *scriptvec.Registry, names ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		vec, err := reg.Create(name)
		if errors.Is(err, scriptvec.ErrExists) {
			vec, err = reg.Lookup(name)
		}
		if err != nil {
			return err
		}
		g.Go(func() error {
			if err := m.Load(ctx, name, vec); err != nil {
				return fmt.Errorf("restore %q: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
