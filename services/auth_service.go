package services

import (
	"errors"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/logger"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/models"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/utils"
)

const minPasswordLen = 8

// AuthService is the identity session: password and federated sign-in,
// registration, sign-out, and identity-change notifications.
type AuthService struct {
	db             *gorm.DB
	allowedOrigins map[string]struct{}
	listeners      []func(*Identity)
}

// NewAuthService reads the federated-provider origin allow-list from
// AUTH_ALLOWED_ORIGINS (comma-separated).
func NewAuthService(db *gorm.DB) *AuthService {
	origins := make(map[string]struct{})
	for _, o := range strings.Split(os.Getenv("AUTH_ALLOWED_ORIGINS"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins[o] = struct{}{}
		}
	}
	return &AuthService{db: db, allowedOrigins: origins}
}

// OnIdentityChange registers a listener for sign-in/sign-out events.
// nil identity means the session ended.
func (s *AuthService) OnIdentityChange(fn func(*Identity)) {
	s.listeners = append(s.listeners, fn)
}

func (s *AuthService) notify(identity *Identity) {
	for _, fn := range s.listeners {
		fn(identity)
	}
}

func identityOf(user *models.User) *Identity {
	return &Identity{ID: user.Email, Email: user.Email}
}

// RegisterWithPassword creates an account. Failures map to distinct
// reasons so the caller can show the right message.
func (s *AuthService) RegisterWithPassword(email, password, fullName string) (*Identity, error) {
	if len(password) < minPasswordLen {
		return nil, NewAuthError(AuthWeakPassword, nil)
	}

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, NewAuthError(AuthEmailInUse, nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewAuthError(AuthUnknown, err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, NewAuthError(AuthUnknown, err)
	}

	user := models.User{Email: email, Password: hashed, FullName: fullName}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, NewAuthError(AuthUnknown, err)
	}

	id := identityOf(&user)
	s.notify(id)
	return id, nil
}

// SignInWithPassword checks credentials; wrong email and wrong password
// report the same invalid-credential reason.
func (s *AuthService) SignInWithPassword(email, password string) (*Identity, error) {
	var user models.User
	err := s.db.Where("email = ? AND disabled = ?", email, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewAuthError(AuthInvalidCredential, nil)
	}
	if err != nil {
		return nil, NewAuthError(AuthUnknown, err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, NewAuthError(AuthInvalidCredential, nil)
	}

	id := identityOf(&user)
	s.notify(id)
	return id, nil
}

// SignInWithFederatedProvider accepts a provider-verified email for an
// allow-listed origin and finds or creates the account.
func (s *AuthService) SignInWithFederatedProvider(origin, email string) (*Identity, error) {
	if _, ok := s.allowedOrigins[origin]; !ok {
		return nil, NewAuthError(AuthOriginNotAuthorized, nil)
	}
	if email == "" {
		return nil, NewAuthError(AuthInvalidCredential, nil)
	}

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Email: email, Password: "", Federated: true}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, NewAuthError(AuthUnknown, err)
		}
	} else if err != nil {
		return nil, NewAuthError(AuthUnknown, err)
	}
	if user.Disabled {
		return nil, NewAuthError(AuthInvalidCredential, nil)
	}

	id := identityOf(&user)
	s.notify(id)
	return id, nil
}

// SignOut ends the session. Best-effort: a failure is logged and the
// local session still ends, unlike the other auth calls.
func (s *AuthService) SignOut(identity *Identity) {
	if identity == nil {
		return
	}
	s.notify(nil)
}

// ---------- Password reset ----------

// StartPasswordReset issues a short-lived code and emails it. The caller
// gets the same response whether or not the email exists.
func (s *AuthService) StartPasswordReset(email string) {
	var user models.User
	if err := s.db.Where("email = ? AND disabled = ?", email, false).First(&user).Error; err != nil {
		return
	}

	token := utils.GenerateRandomToken(6)
	user.ResetToken = token
	user.ResetTokenExp = time.Now().Add(15 * time.Minute)
	if err := s.db.Save(&user).Error; err != nil {
		logger.L().Errorw("reset token save failed", "err", err)
		return
	}

	if err := utils.SendResetEmail(user.Email, token); err != nil {
		logger.L().Errorw("reset email failed", "email", email, "err", err)
	}
}

// CompletePasswordReset sets a new password for a valid, unexpired code.
func (s *AuthService) CompletePasswordReset(token, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return NewAuthError(AuthWeakPassword, nil)
	}

	var user models.User
	err := s.db.Where("reset_token = ? AND reset_token <> ''", token).First(&user).Error
	if err != nil || time.Now().After(user.ResetTokenExp) {
		return NewAuthError(AuthInvalidCredential, err)
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return NewAuthError(AuthUnknown, err)
	}

	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	if err := s.db.Save(&user).Error; err != nil {
		return NewAuthError(AuthUnknown, err)
	}
	return nil
}

// FindUserByEmail looks up an active account.
func (s *AuthService) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ? AND disabled = ?", email, false).First(&user).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}
