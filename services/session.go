package services

import (
	"context"
	"time"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/logger"
)

// Statuses pushed into the profile document as the session moves.
const (
	StatusRegistered = "registered"
	StatusSignedIn   = "signed_in"
	StatusSignedOut  = "signed_out"
)

const statusPushTimeout = 5 * time.Second

// Session couples the identity session to the profile synchronizer: every
// sign-in/out both moves the subscription and records a status in the
// profile document. One Session per running client session.
type Session struct {
	Auth *AuthService
	Sync *ProfileSynchronizer
}

func NewSession(auth *AuthService, sync *ProfileSynchronizer) *Session {
	s := &Session{Auth: auth, Sync: sync}
	auth.OnIdentityChange(sync.OnIdentityChange)
	return s
}

// Register creates the account, attaches the subscription (via the
// identity-change listener), and records the registration. A failed
// status write fails the whole call so the caller can surface it.
func (s *Session) Register(ctx context.Context, email, password, fullName string) (*Identity, error) {
	identity, err := s.Auth.RegisterWithPassword(email, password, fullName)
	if err != nil {
		return nil, err
	}
	if err := s.pushStatus(ctx, identity.ID, StatusRegistered); err != nil {
		return nil, err
	}
	return identity, nil
}

func (s *Session) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	identity, err := s.Auth.SignInWithPassword(email, password)
	if err != nil {
		return nil, err
	}
	if err := s.pushStatus(ctx, identity.ID, StatusSignedIn); err != nil {
		return nil, err
	}
	return identity, nil
}

func (s *Session) SignInFederated(ctx context.Context, origin, email string) (*Identity, error) {
	identity, err := s.Auth.SignInWithFederatedProvider(origin, email)
	if err != nil {
		return nil, err
	}
	if err := s.pushStatus(ctx, identity.ID, StatusSignedIn); err != nil {
		return nil, err
	}
	return identity, nil
}

// SignOut is best-effort: a failed status write is logged and the local
// session ends regardless. This asymmetry is deliberate — there is no
// useful recovery for the caller once they are leaving.
func (s *Session) SignOut(ctx context.Context, identity *Identity) {
	if identity != nil {
		if err := s.pushStatus(ctx, identity.ID, StatusSignedOut); err != nil {
			logger.L().Warnw("sign-out status push failed", "identity", identity.ID, "err", err)
		}
	}
	s.Auth.SignOut(identity)
}

func (s *Session) pushStatus(ctx context.Context, identityID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, statusPushTimeout)
	defer cancel()
	return s.Sync.PushStatus(ctx, identityID, status)
}
