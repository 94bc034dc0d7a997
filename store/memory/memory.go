// Package memory provides in-process Store implementations.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/warp/salary-ticker/recovery"
	"github.com/warp/salary-ticker/settings"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps settings and recovery documents in maps. Nothing survives a
// restart.
type Memory struct {
	mu       sync.RWMutex
	settings *settings.UserSettings
	records  map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]json.RawMessage)}
}

// Settings returns the settings.Store view.
func (m *Memory) Settings() *Settings { return &Settings{m: m} }

// Recovery returns the recovery.Store view.
func (m *Memory) Recovery() *Recovery { return &Recovery{m: m} }

// =============================================================================
// SETTINGS
// =============================================================================

type Settings struct {
	m *Memory
}

var _ settings.Store = (*Settings)(nil)

func (s *Settings) Load(_ context.Context) (*settings.UserSettings, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	if s.m.settings == nil {
		return nil, settings.ErrNotFound
	}
	cp := *s.m.settings
	cp.WorkDays = append(cp.WorkDays[:0:0], cp.WorkDays...)
	return &cp, nil
}

func (s *Settings) Save(_ context.Context, us settings.UserSettings) error {
	if err := us.Validate(); err != nil {
		return err
	}
	us.WorkDays = append(us.WorkDays[:0:0], us.WorkDays...)

	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.settings = &us
	return nil
}

func (s *Settings) Reset(_ context.Context) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.settings = nil
	return nil
}

// =============================================================================
// RECOVERY RECORDS
// =============================================================================

type Recovery struct {
	m *Memory
}

var _ recovery.Store = (*Recovery)(nil)

func (r *Recovery) Load(_ context.Context, name string) (json.RawMessage, error) {
	if err := recovery.ValidateName(name); err != nil {
		return nil, err
	}

	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	data, ok := r.m.records[name]
	if !ok {
		return nil, recovery.ErrFileNotFound
	}
	return append(json.RawMessage(nil), data...), nil
}

func (r *Recovery) Save(_ context.Context, name string, data json.RawMessage) error {
	if err := recovery.ValidateName(name); err != nil {
		return err
	}
	if err := recovery.ValidateData(name, data); err != nil {
		return err
	}

	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.records[name] = append(json.RawMessage(nil), data...)
	return nil
}

func (r *Recovery) Delete(_ context.Context, name string) error {
	if err := recovery.ValidateName(name); err != nil {
		return err
	}

	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.records, name)
	return nil
}
