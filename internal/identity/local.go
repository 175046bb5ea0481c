package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/farellandr/melaka-tickets/internal/apperr"
)

const localIssuer = "melaka-tickets-local"

var (
	ErrEmailExists        = errors.New("the email address is already in use by another account")
	ErrUserNotFound       = errors.New("no user record found for the given identifier")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type localAccount struct {
	uid          string
	email        string
	displayName  string
	passwordHash []byte
}

// LocalProvider is an in-process identity provider for development without Firebase.
// ID tokens are HS256 JWTs whose subject is the uid.
type LocalProvider struct {
	mu       sync.RWMutex
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	accounts map[string]*localAccount
}

func NewLocalProvider(secret string) *LocalProvider {
	return &LocalProvider{
		secret:   []byte(secret),
		ttl:      time.Hour,
		now:      time.Now,
		accounts: make(map[string]*localAccount),
	}
}

func (p *LocalProvider) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := jwt.Parse(idToken, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(localIssuer),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return "", apperr.Wrap(apperr.ErrUnauthenticated, err, "Invalid token")
	}

	uid, err := token.Claims.GetSubject()
	if err != nil || uid == "" {
		return "", apperr.New(apperr.ErrUnauthenticated, "Invalid token")
	}

	return uid, nil
}

func (p *LocalProvider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash the password: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, a := range p.accounts {
		if a.email == email {
			return "", ErrEmailExists
		}
	}

	uid := uuid.NewString()
	p.accounts[uid] = &localAccount{
		uid:          uid,
		email:        email,
		displayName:  displayName,
		passwordHash: hash,
	}

	return uid, nil
}

func (p *LocalProvider) DeleteUser(ctx context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.accounts[uid]; !ok {
		return ErrUserNotFound
	}

	delete(p.accounts, uid)

	return nil
}

// SignIn checks the password and issues an ID token, the way the client SDK would.
func (p *LocalProvider) SignIn(email, password string) (string, string, error) {
	p.mu.RLock()
	var account *localAccount
	for _, a := range p.accounts {
		if a.email == email {
			account = a
			break
		}
	}
	p.mu.RUnlock()

	if account == nil {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	token, err := p.IssueToken(account.uid)
	if err != nil {
		return "", "", err
	}

	return account.uid, token, nil
}

func (p *LocalProvider) IssueToken(uid string) (string, error) {
	now := p.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    localIssuer,
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
	})

	return token.SignedString(p.secret)
}
