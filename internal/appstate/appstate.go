// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package appstate holds the application context: API keys, UI preferences
// and onboarding flags. It is created once in main, loaded from a backend
// and written back after every mutation. The generating flag lives only in
// memory.
package appstate

import (
	"context"
	"fmt"
	"sync"

	"marketdash/internal/models"
)

// Backend persists the state document. Load returns nil when nothing has
// been stored yet.
type Backend interface {
	Load(ctx context.Context) (*models.AppState, error)
	Save(ctx context.Context, st *models.AppState) error
}

// KeySealer protects API keys at rest.
type KeySealer interface {
	Seal(plaintext string) (string, error)
	Open(value string) (string, error)
}

// Context is the explicitly passed application context. It is safe for
// concurrent use.
type Context struct {
	mu      sync.RWMutex
	backend Backend
	sealer  KeySealer
	state   models.AppState

	// inFlight counts running generation requests.
	inFlight int
}

// Load creates a Context from the backend's stored state, or from the
// defaults on a fresh installation. sealer may be nil, in which case keys
// are stored as given.
func Load(ctx context.Context, backend Backend, sealer KeySealer) (*Context, error) {
	stored, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load app state: %w", err)
	}

	c := &Context{backend: backend, sealer: sealer, state: models.DefaultAppState()}
	if stored == nil {
		return c, nil
	}

	st := *stored
	if !st.Theme.Valid() {
		st.Theme = models.ThemeLight
	}
	if sealer != nil {
		if st.APIKey, err = sealer.Open(st.APIKey); err != nil {
			return nil, fmt.Errorf("open api key: %w", err)
		}
		if st.OpenAIAPIKey, err = sealer.Open(st.OpenAIAPIKey); err != nil {
			return nil, fmt.Errorf("open openai api key: %w", err)
		}
	}
	c.state = st
	return c, nil
}

// Snapshot returns a copy of the current state, keys in plaintext.
func (c *Context) Snapshot() models.AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Update applies fn to a copy of the state and persists the result. The
// in-memory state only changes once the backend accepted it.
func (c *Context) Update(ctx context.Context, fn func(st *models.AppState)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.state
	fn(&next)
	if !next.Theme.Valid() {
		return fmt.Errorf("update app state: unknown theme %q", next.Theme)
	}

	stored := next
	if c.sealer != nil {
		var err error
		if stored.APIKey, err = c.sealer.Seal(next.APIKey); err != nil {
			return fmt.Errorf("seal api key: %w", err)
		}
		if stored.OpenAIAPIKey, err = c.sealer.Seal(next.OpenAIAPIKey); err != nil {
			return fmt.Errorf("seal openai api key: %w", err)
		}
	}
	if err := c.backend.Save(ctx, &stored); err != nil {
		return fmt.Errorf("persist app state: %w", err)
	}

	c.state = next
	return nil
}

// APIKey returns the content generation key.
func (c *Context) APIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.APIKey
}

// OpenAIAPIKey returns the image generation key.
func (c *Context) OpenAIAPIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.OpenAIAPIKey
}

// SetSettingsComplete records whether the brand profile is filled in.
func (c *Context) SetSettingsComplete(ctx context.Context, complete bool) error {
	return c.Update(ctx, func(st *models.AppState) { st.SettingsComplete = complete })
}

// Generating reports whether any generation request is in flight.
func (c *Context) Generating() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inFlight > 0
}

// BeginGenerating counts one more request in flight and returns the
// function that ends it. Calling done more than once has no further effect.
// The count is never persisted.
func (c *Context) BeginGenerating() (done func()) {
	c.mu.Lock()
	c.inFlight++
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.inFlight--
			c.mu.Unlock()
		})
	}
}
