package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	dom "finbook/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	mu   sync.Mutex
	seq  int64
	rows map[int64]dom.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: make(map[int64]dom.User)}
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *fakeUserRepo) Create(_ context.Context, username, email, passwordHash string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Username == username {
			return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		}
		if u.Email == email {
			return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	r.seq++
	u := dom.User{ID: r.seq, Username: username, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	r.rows[u.ID] = u
	return u, nil
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, "budi", "Budi@Example.com", "rahasia1")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "budi", u.Username)
	assert.Equal(t, "budi@example.com", u.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("rahasia1")))

	got, err := svc.ValidateCredentials(ctx, "budi", "rahasia1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.ValidateCredentials(ctx, "budi", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.ValidateCredentials(ctx, "nobody", "rahasia1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Register_EmptyFields(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	for _, tc := range [][3]string{
		{"", "a@b.com", "pw"},
		{"budi", "", "pw"},
		{"budi", "a@b.com", ""},
		{"   ", "a@b.com", "pw"},
	} {
		_, err := svc.Register(ctx, tc[0], tc[1], tc[2])
		assert.ErrorIs(t, err, ErrInvalidCredentials, strings.Join(tc[:], "/"))
	}
}

func TestUserService_Register_Duplicates(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "budi", "budi@example.com", "rahasia1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "budi", "other@example.com", "rahasia1")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, "siti", "budi@example.com", "rahasia1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}
