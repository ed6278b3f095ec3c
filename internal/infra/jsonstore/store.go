// Package jsonstore keeps studio data in whole-document JSON files.
// It serves a single process; a mutex serializes every unit of work.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"lashdiary/internal/domain/studio"
	"lashdiary/internal/infra"
	"lashdiary/internal/infra/converter"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/usecase/shared"
)

const (
	bookingsFile     = "bookings.json"
	availabilityFile = "availability.json"
	settingsFile     = "settings.json"
	outboxFile       = "outbox.json"
)

type bookingsDoc struct {
	Bookings []converter.BookingRecord `json:"bookings"`
}

type availabilityDoc struct {
	FullyBookedDates []string `json:"fullyBookedDates"`
}

type outboxDoc struct {
	Jobs []shared.Job `json:"jobs"`
}

type Store struct {
	dir      string
	defaults studio.Settings
	clock    clock.Clock
	logger   *slog.Logger

	mu sync.Mutex
}

func New(dir string, defaults studio.Settings, clock clock.Clock, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, infra.WrapRepoErr(logger, infra.KindDBFailure, "failed to create data directory", err)
	}
	return &Store{dir: dir, defaults: defaults, clock: clock, logger: logger}, nil
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &docTx{store: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.flush()
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &docTx{store: s, readOnly: true})
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// read decodes a document; a missing file leaves v untouched.
func (s *Store) read(name string, v any) error {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read "+name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to decode "+name, err)
	}
	return nil
}

// staged is a document fully written to a temp file, waiting to replace its
// live file.
type staged struct {
	name, tmp string
}

// stage encodes v into a synced temp file next to the live document.
func (s *Store) stage(name string, v any) (staged, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return staged{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to encode "+name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return staged{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to create temp file for "+name, err)
	}
	st := staged{name: name, tmp: tmp.Name()}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(st.tmp) //nolint:errcheck
		return staged{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to write "+name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(st.tmp) //nolint:errcheck
		return staged{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to sync "+name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(st.tmp) //nolint:errcheck
		return staged{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to close "+name, err)
	}
	return st, nil
}

// commit renames every staged file into place. Staging failures never reach
// here, so a unit of work either replaces all its documents or none, short of
// a rename failing part way.
func (s *Store) commit(files []staged) error {
	for i, f := range files {
		if err := os.Rename(f.tmp, s.path(f.name)); err != nil {
			discard(files[i:])
			return infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to replace "+f.name, err)
		}
	}
	return nil
}

func discard(files []staged) {
	for _, f := range files {
		os.Remove(f.tmp) //nolint:errcheck
	}
}

// docTx loads each document at most once and writes back only the ones
// that changed, after fn succeeds.
type docTx struct {
	store    *Store
	readOnly bool

	bookings     *bookingsDoc
	availability *availabilityDoc
	settings     *studio.Settings
	outbox       *outboxDoc

	dirtyBookings, dirtyAvailability, dirtySettings, dirtyOutbox bool
}

var errReadOnly = infra.NewRepoErr(infra.KindDBFailure, "write attempted in read-only unit of work")

func (t *docTx) Bookings() shared.BookingRepository        { return &bookingRepo{tx: t} }
func (t *docTx) Settings() shared.SettingsRepository       { return &settingsRepo{tx: t} }
func (t *docTx) FullyBooked() shared.FullyBookedRepository { return &fullyBookedRepo{tx: t} }
func (t *docTx) Outbox() shared.OutboxRepository           { return &outboxRepo{tx: t} }

func (t *docTx) loadBookings() (*bookingsDoc, error) {
	if t.bookings == nil {
		doc := &bookingsDoc{}
		if err := t.store.read(bookingsFile, doc); err != nil {
			return nil, err
		}
		t.bookings = doc
	}
	return t.bookings, nil
}

func (t *docTx) loadAvailability() (*availabilityDoc, error) {
	if t.availability == nil {
		doc := &availabilityDoc{}
		if err := t.store.read(availabilityFile, doc); err != nil {
			return nil, err
		}
		t.availability = doc
	}
	return t.availability, nil
}

func (t *docTx) loadSettings() (*studio.Settings, error) {
	if t.settings == nil {
		s := t.store.defaults
		if err := t.store.read(settingsFile, &s); err != nil {
			return nil, err
		}
		t.settings = &s
	}
	return t.settings, nil
}

func (t *docTx) loadOutbox() (*outboxDoc, error) {
	if t.outbox == nil {
		doc := &outboxDoc{}
		if err := t.store.read(outboxFile, doc); err != nil {
			return nil, err
		}
		t.outbox = doc
	}
	return t.outbox, nil
}

func (t *docTx) markDirty(flag *bool) error {
	if t.readOnly {
		return errReadOnly
	}
	*flag = true
	return nil
}

func (t *docTx) flush() error {
	docs := []struct {
		dirty bool
		name  string
		v     any
	}{
		{t.dirtyBookings, bookingsFile, t.bookings},
		{t.dirtyAvailability, availabilityFile, t.availability},
		{t.dirtySettings, settingsFile, t.settings},
		{t.dirtyOutbox, outboxFile, t.outbox},
	}

	var files []staged
	for _, d := range docs {
		if !d.dirty {
			continue
		}
		f, err := t.store.stage(d.name, d.v)
		if err != nil {
			discard(files)
			return err
		}
		files = append(files, f)
	}
	return t.store.commit(files)
}
