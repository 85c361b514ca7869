package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Tiliavir/work-hours-logger/internal/model"
)

const timerKeyPrefix = "timer:"

// TimerSnapshot is the running timer as kept between CLI invocations.
type TimerSnapshot struct {
	Kind    model.Kind `json:"kind"`
	Start   time.Time  `json:"start"`
	Session string     `json:"session"`
}

// TimerStore persists the running timer of each user. An absent snapshot
// means the timer is idle.
type TimerStore struct {
	backend Backend
}

// NewTimerStore returns a TimerStore on backend.
func NewTimerStore(backend Backend) *TimerStore {
	return &TimerStore{backend: backend}
}

// Load returns the user's running timer, or nil when idle. A snapshot that
// cannot be parsed is treated as idle.
func (s *TimerStore) Load(ctx context.Context, username string) (*TimerSnapshot, error) {
	data, ok, err := s.backend.Get(ctx, timerKeyPrefix+UserKey(username))
	if err != nil || !ok {
		return nil, err
	}
	var snap TimerSnapshot
	if err := json.Unmarshal(data, &snap); err != nil || snap.Start.IsZero() {
		return nil, nil
	}
	snap.Kind = model.ParseKind(string(snap.Kind))
	return &snap, nil
}

// Save records snap as the user's running timer.
func (s *TimerStore) Save(ctx context.Context, username string, snap TimerSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshalling timer: %w", err)
	}
	return s.backend.Put(ctx, timerKeyPrefix+UserKey(username), data)
}

// Clear marks the user's timer idle.
func (s *TimerStore) Clear(ctx context.Context, username string) error {
	return s.backend.Delete(ctx, timerKeyPrefix+UserKey(username))
}
