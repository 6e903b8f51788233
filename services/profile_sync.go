package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/logger"
)

// ProfileCollection is the document collection holding one profile
// document per identity.
const ProfileCollection = "profiles"

// Identity is an authenticated user reference: a stable opaque id plus an
// optional display email.
type Identity struct {
	ID    string
	Email string
}

// ProfileSynchronizer binds the current identity to its remote profile
// document. At most one live subscription exists at a time; switching
// identities tears the old one down before the new one attaches, and
// change events from a previous identity are discarded.
type ProfileSynchronizer struct {
	store DocumentStore

	mu       sync.Mutex
	active   *Identity
	cancel   func()
	snapshot Document
	exists   bool
	degraded bool
	onChange func(Document, bool)
}

func NewProfileSynchronizer(store DocumentStore) *ProfileSynchronizer {
	return &ProfileSynchronizer{store: store}
}

// SetOnChange registers a hook invoked with each applied snapshot. Set it
// before the first OnIdentityChange call.
func (s *ProfileSynchronizer) SetOnChange(fn func(doc Document, exists bool)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// OnIdentityChange attaches the synchronizer to the given identity, or
// detaches it when identity is nil. Teardown of the previous subscription
// happens before the new one opens, under the same lock, so a stale
// callback can never slip in between.
func (s *ProfileSynchronizer) OnIdentityChange(identity *Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teardownLocked()
	if identity == nil {
		return
	}

	id := *identity
	s.active = &id

	cancel, err := s.store.Subscribe(ProfileCollection, id.ID, func(doc Document, exists bool) {
		s.apply(id.ID, doc, exists)
	})
	if err != nil {
		// degraded: reads stay stale until the next identity change
		s.degraded = true
		logger.L().Warnw("profile subscription failed", "identity", id.ID, "err", err)
		return
	}
	s.cancel = cancel
	s.degraded = false

	// prime the snapshot; the subscription only reports future writes
	ctx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	doc, exists, err := s.store.GetDocument(ctx, ProfileCollection, id.ID)
	if err != nil {
		s.degraded = true
		logger.L().Warnw("profile read failed", "identity", id.ID, "err", err)
		return
	}
	s.snapshot = doc
	s.exists = exists
}

func (s *ProfileSynchronizer) teardownLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.active = nil
	s.snapshot = nil
	s.exists = false
	s.degraded = false
}

// apply installs a change event, dropping it when the identity it was
// subscribed under is no longer the active one.
func (s *ProfileSynchronizer) apply(identityID string, doc Document, exists bool) {
	s.mu.Lock()
	if s.active == nil || s.active.ID != identityID {
		s.mu.Unlock()
		return
	}
	s.snapshot = doc
	s.exists = exists
	hook := s.onChange
	s.mu.Unlock()

	if hook != nil {
		hook(doc, exists)
	}
}

// Snapshot returns the latest document and whether it exists yet.
func (s *ProfileSynchronizer) Snapshot() (Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil, s.exists
	}
	return cloneDocument(s.snapshot), s.exists
}

// Degraded reports whether the live subscription could not be established;
// reads then stay stale rather than failing.
func (s *ProfileSynchronizer) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// PushStatus merge-writes {status, lastUpdated} into the identity's
// profile document. The write resolves before this returns; failures are
// reported to the caller, never swallowed.
func (s *ProfileSynchronizer) PushStatus(ctx context.Context, identityID, status string) error {
	patch := Document{
		"status":      status,
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.store.MergeWrite(ctx, ProfileCollection, identityID, patch); err != nil {
		return fmt.Errorf("push status for %s: %w", identityID, err)
	}
	return nil
}
