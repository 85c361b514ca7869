package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Tiliavir/work-hours-logger/internal/logging"
	"github.com/Tiliavir/work-hours-logger/internal/model"
)

// logsKeyPrefix scopes the interval collection per user. The legacy global
// "workLogs" key is never read, so users on one device do not share data.
const logsKeyPrefix = "workLogs:"

// UserKey normalises a username for use in storage keys.
func UserKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// LogsKey returns the storage key holding username's intervals.
func LogsKey(username string) string {
	return logsKeyPrefix + UserKey(username)
}

// LogStore loads and saves a user's whole interval collection.
type LogStore struct {
	backend Backend
	log     *slog.Logger
}

// NewLogStore returns a LogStore on backend. log may be nil.
func NewLogStore(backend Backend, log *slog.Logger) *LogStore {
	return &LogStore{backend: backend, log: logging.OrDiscard(log)}
}

// Load returns the user's collection. Missing data yields an empty
// collection. Unparseable data is copied to "<key>.corrupt" and also yields
// an empty collection; only backend I/O failures are returned as errors.
func (s *LogStore) Load(ctx context.Context, username string) (model.Collection, error) {
	key := LogsKey(username)
	data, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return model.Collection{}, nil
	}

	c, report, err := DecodeCollection(data)
	if err != nil {
		backupKey := key + ".corrupt"
		if putErr := s.backend.Put(ctx, backupKey, data); putErr != nil {
			s.log.WarnContext(ctx, "could not back up corrupt logs", "key", key, "err", putErr)
		}
		s.log.WarnContext(ctx, "stored logs unreadable, starting empty", "key", key, "backup", backupKey, "err", err)
		return model.Collection{}, nil
	}
	if report.Repaired() {
		s.log.WarnContext(ctx, "repaired stored logs", "key", key,
			"dropped", report.Dropped, "reassigned_ids", report.Reassigned, "defaulted_kind", report.Defaulted)
	}
	return c, nil
}

// Save overwrites the user's stored collection with c.
func (s *LogStore) Save(ctx context.Context, username string, c model.Collection) error {
	data, err := EncodeCollection(c)
	if err != nil {
		return err
	}
	if err := s.backend.Put(ctx, LogsKey(username), data); err != nil {
		return fmt.Errorf("saving logs: %w", err)
	}
	return nil
}
