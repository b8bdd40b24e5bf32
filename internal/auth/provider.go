// Package auth simulates the external authentication provider boundary:
// credential verification, session tokens, email-verification and
// password-reset flows. The rest of the system only ever sees the opaque
// Identity handle; everything else here is provider-internal.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"guestdesk/backend/internal/pubsub"
)

const (
	sessionTTL      = 72 * time.Hour
	verifyTokenTTL  = 24 * time.Hour
	resetTokenTTL   = 1 * time.Hour
	verifyKeyPrefix = "guestdesk:verify:"
	resetKeyPrefix  = "guestdesk:reset:"
	revokedPrefix   = "guestdesk:revoked:"

	stateTopic = "auth:state"

	// Password granted to accounts created by an operator without one.
	defaultPassword = "Temporary123!"
)

// StateCallback receives the identity handle on every auth-state change,
// or nil when the session ended.
type StateCallback func(ident *Identity)

// Provider is the simulated external auth collaborator.
type Provider struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Ctx    context.Context
	secret []byte

	bus *pubsub.Bus

	// mu guards last and serializes state publishes with listener
	// registration, so a listener's immediate call is never staler than a
	// concurrent state change.
	mu   sync.Mutex
	last *Identity
}

func NewProvider(db *gorm.DB, rdb *redis.Client, jwtSecret string) (*Provider, error) {
	if err := db.AutoMigrate(&Account{}); err != nil {
		return nil, fmt.Errorf("migrate accounts: %w", err)
	}
	return &Provider{
		DB:     db,
		Redis:  rdb,
		Ctx:    context.Background(),
		secret: []byte(jwtSecret),
		bus:    pubsub.New(),
	}, nil
}

// OnStateChanged registers cb and fires it once immediately with the
// current state, then on every subsequent sign-in/sign-out/verification
// change until the returned unsubscribe function is called. Callbacks run
// with the provider's state lock held and must not call back into
// state-changing provider operations.
func (p *Provider) OnStateChanged(cb StateCallback) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	unsubscribe := p.bus.Subscribe(stateTopic, func(data any) {
		ident, _ := data.(*Identity)
		cb(ident)
	})
	cb(p.last)
	return unsubscribe
}

func (p *Provider) fireState(ident *Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = ident
	p.bus.Publish(stateTopic, ident)
}

// SignUp registers a new account. The caller keeps no session: operator-
// created accounts must sign in themselves after verifying their email.
func (p *Provider) SignUp(email, password, displayName string) (*Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		password = defaultPassword
	}

	var count int64
	if err := p.DB.Model(&Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &Account{Email: email, PasswordHash: string(hash), DisplayName: displayName}
	if err := p.DB.Create(account).Error; err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	ident := account.identity()
	if err := p.SendVerificationEmail(ident.UID); err != nil {
		// Verification delivery is best-effort at signup time; the user
		// can request a resend.
		log.Printf("WARNING: could not send verification email to %s: %v", email, err)
	}
	return ident, nil
}

// SignIn verifies credentials and issues a session token.
func (p *Provider) SignIn(email, password string) (*Identity, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, "", ErrEmailRequired
	}
	if password == "" {
		return nil, "", ErrPasswordRequired
	}

	var account Account
	err := p.DB.Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrUserNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("load account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrWrongPassword
	}

	token, err := p.issueToken(account.UID)
	if err != nil {
		return nil, "", err
	}

	ident := account.identity()
	p.fireState(ident)
	return ident, token, nil
}

// SignOut revokes the session token and announces the signed-out state.
func (p *Provider) SignOut(token string) error {
	claims, err := p.parseToken(token)
	if err != nil {
		return ErrInvalidToken
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return ErrInvalidToken
	}
	ttl := time.Until(exp.Time)
	if ttl > 0 {
		if err := p.Redis.Set(p.Ctx, revokedPrefix+token, "1", ttl).Err(); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
	}
	p.fireState(nil)
	return nil
}

// VerifyToken resolves a session token back to its identity handle.
func (p *Provider) VerifyToken(token string) (*Identity, error) {
	claims, err := p.parseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	revoked, err := p.Redis.Exists(p.Ctx, revokedPrefix+token).Result()
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked > 0 {
		return nil, ErrInvalidToken
	}

	uid, _ := claims["uid"].(string)
	return p.Lookup(uid)
}

// Lookup returns the identity handle for a uid.
func (p *Provider) Lookup(uid string) (*Identity, error) {
	var account Account
	err := p.DB.Where("uid = ?", uid).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	return account.identity(), nil
}

// SendVerificationEmail issues a single-use verification token. There is
// no real mail transport: the link is logged for the operator.
func (p *Provider) SendVerificationEmail(uid string) error {
	ident, err := p.Lookup(uid)
	if err != nil {
		return err
	}
	token := newOpaqueToken()
	if err := p.Redis.Set(p.Ctx, verifyKeyPrefix+token, uid, verifyTokenTTL).Err(); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}
	log.Printf("INFO: verification token for %s: %s", ident.Email, token)
	return nil
}

// ConfirmVerification consumes a verification token and marks the account
// verified.
func (p *Provider) ConfirmVerification(token string) error {
	uid, err := p.Redis.GetDel(p.Ctx, verifyKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("consume verification token: %w", err)
	}
	if err := p.DB.Model(&Account{}).Where("uid = ?", uid).Update("email_verified", true).Error; err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	if ident, err := p.Lookup(uid); err == nil {
		p.fireState(ident)
	}
	return nil
}

// SendPasswordReset issues a single-use reset token for the email.
func (p *Provider) SendPasswordReset(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ErrEmailRequired
	}
	var account Account
	err := p.DB.Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	token := newOpaqueToken()
	if err := p.Redis.Set(p.Ctx, resetKeyPrefix+token, account.UID, resetTokenTTL).Err(); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	log.Printf("INFO: password reset token for %s: %s", email, token)
	return nil
}

// ResetPassword consumes a reset token and replaces the password.
func (p *Provider) ResetPassword(token, newPassword string) error {
	if newPassword == "" {
		return ErrPasswordRequired
	}
	uid, err := p.Redis.GetDel(p.Ctx, resetKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return p.DB.Model(&Account{}).Where("uid = ?", uid).Update("password_hash", string(hash)).Error
}

// ListAccounts returns every provider account, oldest first. Used by the
// operator CLI.
func (p *Provider) ListAccounts() ([]Account, error) {
	var accounts []Account
	if err := p.DB.Order("created_at asc").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (p *Provider) issueToken(uid string) (string, error) {
	claims := jwt.MapClaims{
		"uid": uid,
		"exp": time.Now().Add(sessionTTL).Unix(),
		"iss": "guestdesk-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (p *Provider) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
