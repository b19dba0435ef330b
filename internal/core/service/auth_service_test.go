package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/identity-core/auth-service/internal/core/domain"
	"github.com/identity-core/auth-service/internal/token"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by username
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("id-%d", r.nextID)
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			u.Role = role
			u.UpdatedAt = time.Now().UTC()
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newTestService(repo *stubUserRepo) (*AuthService, *token.Engine) {
	engine := token.NewEngine("secret", time.Hour)
	return NewAuthService(repo, engine, "adminkey", zerolog.Nop()), engine
}

func TestAuthService_SignUp_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	user, err := svc.SignUp(context.Background(), "alice", "pw1", "Alice")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role USER, got %s", user.Role)
	}
	if user.Nickname != "Alice" {
		t.Fatalf("unexpected nickname: %s", user.Nickname)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_SignUp_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	if _, err := svc.SignUp(context.Background(), "alice", "pw1", "Alice"); err != nil {
		t.Fatalf("first sign-up failed: %v", err)
	}
	if _, err := svc.SignUp(context.Background(), "alice", "pw2", "Alice2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_AdminSignUp_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	user, err := svc.AdminSignUp(context.Background(), "root", "pw", "Root", "adminkey")
	if err != nil {
		t.Fatalf("AdminSignUp returned error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected role ADMIN, got %s", user.Role)
	}
}

func TestAuthService_AdminSignUp_WrongKey(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	if _, err := svc.AdminSignUp(context.Background(), "root", "pw", "Root", "wrong"); err != domain.ErrInvalidAdminKey {
		t.Fatalf("expected ErrInvalidAdminKey, got %v", err)
	}
	// No record may be created on a key mismatch.
	if exists, _ := repo.ExistsByUsername(context.Background(), "root"); exists {
		t.Fatalf("user record created despite invalid admin key")
	}
}

func TestAuthService_AdminSignUp_DuplicateBeforeKeyCheck(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	_, _ = svc.SignUp(context.Background(), "root", "pw", "Root")
	// Duplication wins over the key check, even when the key is also wrong.
	if _, err := svc.AdminSignUp(context.Background(), "root", "pw", "Root", "wrong"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, engine := newTestService(repo)

	if _, err := svc.SignUp(context.Background(), "carol", "s3cret", "Carol"); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	tok, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	raw, ok := token.ExtractBearer(tok)
	if !ok {
		t.Fatalf("issued token has no bearer prefix: %q", tok)
	}
	claims, err := engine.Validate(raw)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.Subject != "carol" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: subject=%q role=%q", claims.Subject, claims.Role)
	}
}

func TestAuthService_Login_EnumerationResistance(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	_, _ = svc.SignUp(context.Background(), "dave", "goodpass", "Dave")

	_, _, wrongPw := svc.Login(context.Background(), "dave", "badpass")
	_, _, unknown := svc.Login(context.Background(), "ghost", "whatever")

	// Wrong password and unknown user must be indistinguishable.
	if wrongPw != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPw)
	}
	if unknown != wrongPw {
		t.Fatalf("unknown user yields different outcome: %v vs %v", unknown, wrongPw)
	}
}

// failingUserRepo simulates an unavailable store: every lookup fails with a
// non-domain error.
type failingUserRepo struct {
	stubUserRepo
	err error
}

func (r *failingUserRepo) FindByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, r.err
}

func TestAuthService_Login_InfrastructureFailurePropagates(t *testing.T) {
	infraErr := errors.New("mongo: connection reset")
	repo := &failingUserRepo{stubUserRepo: *newStubUserRepo(), err: infraErr}
	engine := token.NewEngine("secret", time.Hour)
	svc := NewAuthService(repo, engine, "adminkey", zerolog.Nop())

	_, _, err := svc.Login(context.Background(), "alice", "pw1")
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failure was collapsed into ErrInvalidCredentials")
	}
	if !errors.Is(err, infraErr) {
		t.Fatalf("expected the store error to propagate, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	if _, _, err := svc.Login(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SwitchRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	target, _ := svc.SignUp(context.Background(), "bob", "pw", "Bob")

	// A USER-role principal is denied even though the route policy would
	// normally have stopped it already.
	if _, err := svc.SwitchRole(context.Background(), domain.Principal{Username: "eve", Role: domain.RoleUser}, target.ID); err != domain.ErrAccessDenied {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}

	admin := domain.Principal{Username: "root", Role: domain.RoleAdmin}

	if _, err := svc.SwitchRole(context.Background(), admin, "missing-id"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	updated, err := svc.SwitchRole(context.Background(), admin, target.ID)
	if err != nil {
		t.Fatalf("SwitchRole returned error: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected promoted role ADMIN, got %s", updated.Role)
	}
	stored, _ := repo.FindByID(context.Background(), target.ID)
	if stored.Role != domain.RoleAdmin {
		t.Fatalf("promotion not persisted: %s", stored.Role)
	}
}

func TestAuthService_SwitchRole_StaleTokenKeepsOldRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, engine := newTestService(repo)

	target, _ := svc.SignUp(context.Background(), "bob", "pw", "Bob")
	tok, _, err := svc.Login(context.Background(), "bob", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	admin := domain.Principal{Username: "root", Role: domain.RoleAdmin}
	if _, err := svc.SwitchRole(context.Background(), admin, target.ID); err != nil {
		t.Fatalf("SwitchRole returned error: %v", err)
	}

	// Stateless validation: the pre-promotion token keeps its old role claim
	// until it expires.
	raw, _ := token.ExtractBearer(tok)
	claims, err := engine.Validate(raw)
	if err != nil {
		t.Fatalf("token invalid after unrelated promotion: %v", err)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("expected stale USER role claim, got %s", claims.Role)
	}
}
