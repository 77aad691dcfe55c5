package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitledger/internal/models"
)

type memoryAccounts struct {
	byEmail map[string]*models.Account
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{byEmail: make(map[string]*models.Account)}
}

func (m *memoryAccounts) CreateAccount(_ context.Context, account *models.Account) error {
	m.byEmail[account.Email] = account
	return nil
}

func (m *memoryAccounts) GetAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	if a, ok := m.byEmail[email]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: %s", models.ErrAccountNotFound, email)
}

func (m *memoryAccounts) GetAccountByID(_ context.Context, id string) (*models.Account, error) {
	for _, a := range m.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrAccountNotFound, id)
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	authn := NewPasswordAuthenticator(newMemoryAccounts()).WithCost(bcrypt.MinCost)

	account, err := authn.Register(ctx, "alice@example.com", "Alice", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if account.PasswordHash == "correct-horse" {
		t.Error("password stored in clear text")
	}

	if _, err := authn.Register(ctx, "alice@example.com", "Alice", "another-pass"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("duplicate register error = %v, want ErrEmailExists", err)
	}
	if _, err := authn.Register(ctx, "bob@example.com", "Bob", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("weak password error = %v, want ErrWeakPassword", err)
	}

	got, err := authn.Authenticate(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != account.ID {
		t.Errorf("Authenticate returned %s, want %s", got.ID, account.ID)
	}

	if _, err := authn.Authenticate(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := authn.Authenticate(ctx, "nobody@example.com", "whatever1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenIssuer(t *testing.T) {
	tokens := NewTokenIssuer("test-secret", time.Hour)
	account := models.NewAccount("ops@example.com", "Ops", "hash")

	token, err := tokens.Issue(account)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	id, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	want := Identity{AccountID: account.ID, Email: account.Email, DisplayName: "Ops"}
	if id != want {
		t.Errorf("identity = %+v, want %+v", id, want)
	}

	sign := func(t *testing.T, method jwt.SigningMethod, key any, claims sessionClaims) string {
		t.Helper()
		signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("SignedString failed: %v", err)
		}
		return signed
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{"wrong secret", func(t *testing.T) string {
			signed, err := NewTokenIssuer("other-secret", time.Hour).Issue(account)
			if err != nil {
				t.Fatalf("Issue failed: %v", err)
			}
			return signed
		}},
		{"expired", func(t *testing.T) string {
			signed, err := NewTokenIssuer("test-secret", -time.Minute).Issue(account)
			if err != nil {
				t.Fatalf("Issue failed: %v", err)
			}
			return signed
		}},
		{"unsigned", func(t *testing.T) string {
			return sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, sessionClaims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: account.ID, Issuer: issuer, ExpiresAt: future},
			})
		}},
		{"foreign issuer", func(t *testing.T) string {
			return sign(t, jwt.SigningMethodHS256, []byte("test-secret"), sessionClaims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: account.ID, Issuer: "elsewhere", ExpiresAt: future},
			})
		}},
		{"no expiry", func(t *testing.T) string {
			return sign(t, jwt.SigningMethodHS256, []byte("test-secret"), sessionClaims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: account.ID, Issuer: issuer},
			})
		}},
		{"no subject", func(t *testing.T) string {
			return sign(t, jwt.SigningMethodHS256, []byte("test-secret"), sessionClaims{
				Email:            account.Email,
				RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, ExpiresAt: future},
			})
		}},
		{"garbage", func(*testing.T) string { return strings.Repeat("x", 20) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tokens.Verify(tt.token(t)); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
