// Package geo backs the admin map: operators open an editing session for a
// waste buyer, drop a marker, and save it.
package geo

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"daurulang/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LocationStore persists a buyer's coordinates.
type LocationStore interface {
	UpdateLocation(ctx context.Context, id string, loc model.Location) (*model.WasteBuyer, error)
}

// EditSession is one operator's pending edit of one buyer's location.
// It holds at most one marker.
type EditSession struct {
	ID        string          `json:"id"`
	BuyerID   string          `json:"buyerId"`
	Pending   *model.Location `json:"pending,omitempty"`
	StartedAt time.Time       `json:"startedAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// DefaultSessionTTL is how long an idle editing session stays open.
const DefaultSessionTTL = 30 * time.Minute

// Editor tracks editing sessions and the in-memory buyer list shown on the map.
// It is safe for concurrent use.
type Editor struct {
	store  LocationStore
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*EditSession
	buyers   []model.WasteBuyer
}

// NewEditor creates an editor that saves through store. Sessions left idle
// for ttl are dropped; ttl <= 0 means DefaultSessionTTL.
func NewEditor(store LocationStore, ttl time.Duration, logger zerolog.Logger) *Editor {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Editor{
		store:    store,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.With().Str("component", "map-editor").Logger(),
		sessions: make(map[string]*EditSession),
	}
}

// SetBuyers replaces the buyer list shown on the map.
func (e *Editor) SetBuyers(buyers []model.WasteBuyer) {
	e.mu.Lock()
	e.buyers = slices.Clone(buyers)
	e.mu.Unlock()
}

// Buyers returns a copy of the buyer list shown on the map.
func (e *Editor) Buyers() []model.WasteBuyer {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := slices.Clone(e.buyers)
	if out == nil {
		out = []model.WasteBuyer{}
	}
	return out
}

// Merge applies a location saved elsewhere to the buyer list.
func (e *Editor) Merge(updated model.WasteBuyer) {
	e.mu.Lock()
	e.buyers = MergeLocation(e.buyers, updated)
	e.mu.Unlock()
}

// Start opens an editing session for buyerID, which must be in the buyer
// list. The buyer's current location, if any, is not preselected.
func (e *Editor) Start(buyerID string) (EditSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sweepLocked()
	if !slices.ContainsFunc(e.buyers, func(b model.WasteBuyer) bool { return b.ID == buyerID }) {
		return EditSession{}, model.ErrBuyerNotFound
	}

	now := e.now()
	s := &EditSession{
		ID:        uuid.NewString(),
		BuyerID:   buyerID,
		StartedAt: now,
		ExpiresAt: now.Add(e.ttl),
	}
	e.sessions[s.ID] = s

	e.logger.Debug().Str("session_id", s.ID).Str("buyer_id", buyerID).Msg("editing session started")
	return *s, nil
}

// Pick places the session's marker at loc, replacing any previous marker.
func (e *Editor) Pick(sessionID string, loc model.Location) (EditSession, error) {
	if !loc.Valid() {
		return EditSession{}, &model.ValidationError{Fields: map[string]string{
			"location": "Coordinates are out of range",
		}}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.sweepLocked()
	s, ok := e.sessions[sessionID]
	if !ok {
		return EditSession{}, model.ErrEditSessionNotFound
	}
	s.Pending = &loc
	s.ExpiresAt = e.now().Add(e.ttl)
	return *s, nil
}

// Save persists the session's marker and merges the result into the buyer
// list. Without a marker it fails with model.ErrNoCoordinate and the store is
// not called. The session stays open after a failed save.
func (e *Editor) Save(ctx context.Context, sessionID string) (*model.WasteBuyer, error) {
	e.mu.Lock()
	s, ok := e.liveLocked(sessionID)
	var (
		buyerID string
		pending *model.Location
	)
	if ok {
		buyerID, pending = s.BuyerID, s.Pending
	}
	e.mu.Unlock()

	if !ok {
		return nil, model.ErrEditSessionNotFound
	}
	if pending == nil {
		e.logger.Debug().Str("session_id", sessionID).Msg("save rejected, no marker selected")
		return nil, model.ErrNoCoordinate
	}

	updated, err := e.store.UpdateLocation(ctx, buyerID, *pending)
	if err != nil {
		e.logger.Error().Err(err).Str("buyer_id", buyerID).Msg("failed to save buyer location")
		return nil, fmt.Errorf("failed to save location: %w", err)
	}

	e.mu.Lock()
	e.buyers = MergeLocation(e.buyers, *updated)
	delete(e.sessions, sessionID)
	e.mu.Unlock()

	e.logger.Info().
		Str("buyer_id", buyerID).
		Float64("latitude", pending.Latitude).
		Float64("longitude", pending.Longitude).
		Msg("buyer location saved")

	return updated, nil
}

// End discards a session and its pending marker.
func (e *Editor) End(sessionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.liveLocked(sessionID); !ok {
		return model.ErrEditSessionNotFound
	}
	delete(e.sessions, sessionID)
	return nil
}

// session returns a snapshot of an open session.
func (e *Editor) session(sessionID string) (EditSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.liveLocked(sessionID)
	if !ok {
		return EditSession{}, false
	}
	return *s, true
}

// liveLocked returns the session unless it is missing or expired. Expired
// sessions are removed. e.mu must be held.
func (e *Editor) liveLocked(sessionID string) (*EditSession, bool) {
	s, ok := e.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if !e.now().Before(s.ExpiresAt) {
		delete(e.sessions, sessionID)
		return nil, false
	}
	return s, true
}

// sweepLocked drops every expired session. e.mu must be held.
func (e *Editor) sweepLocked() {
	now := e.now()
	for id, s := range e.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(e.sessions, id)
			e.logger.Debug().Str("session_id", id).Str("buyer_id", s.BuyerID).Msg("editing session expired")
		}
	}
}

// MergeLocation returns a copy of buyers where the entry with updated.ID
// carries updated's location. Unknown IDs leave the list unchanged.
func MergeLocation(buyers []model.WasteBuyer, updated model.WasteBuyer) []model.WasteBuyer {
	out := slices.Clone(buyers)
	for i := range out {
		if out[i].ID == updated.ID {
			if updated.Location != nil {
				loc := *updated.Location
				out[i].Location = &loc
			} else {
				out[i].Location = nil
			}
		}
	}
	return out
}
