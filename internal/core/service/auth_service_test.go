package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/securecontent/workspace-api/internal/core/domain"
	"github.com/securecontent/workspace-api/internal/core/ports"
	"github.com/securecontent/workspace-api/internal/pkg/credentials"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
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
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func registerInput(email, password, name, role string) ports.RegisterInput {
	return ports.RegisterInput{Email: email, Password: password, Name: name, Role: role}
}

func newAuthService(repo *stubUserRepo) *AuthService {
	codec := credentials.NewTokenCodec("test-secret", time.Hour)
	return NewAuthService(repo, codec, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	result, err := svc.Register(context.Background(), registerInput("a@x.com", "secret1", "A", ""))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.User.Role != domain.RoleViewer {
		t.Fatalf("expected default role VIEWER, got %s", result.User.Role)
	}
	if result.User.ID == "" {
		t.Fatalf("expected assigned id")
	}

	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if !credentials.CheckPassword("secret1", stored.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), registerInput("a@x.com", "secret1", "A", "")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), registerInput("a@x.com", "other", "B", ""))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_BadRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), registerInput("a@x.com", "secret1", "A", "ROOT"))
	var appErr *domain.Error
	if !errors.As(err, &appErr) || appErr.Kind != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_Register_TokenRoundTrips(t *testing.T) {
	repo := newStubUserRepo()
	codec := credentials.NewTokenCodec("test-secret", time.Hour)
	svc := NewAuthService(repo, codec, zerolog.Nop())

	result, err := svc.Register(context.Background(), registerInput("e@x.com", "secret1", "E", domain.RoleEditor))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims, err := codec.Verify(result.Token)
	if err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if claims.UserID != result.User.ID || claims.Role != domain.RoleEditor {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), registerInput("c@x.com", "s3cret", "C", domain.RoleAdmin)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "c@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.User.Email != "c@x.com" || result.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", result.User)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	_, _ = svc.Register(context.Background(), registerInput("d@x.com", "goodpass", "D", ""))
	if _, err := svc.Login(context.Background(), "d@x.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	_, _ = svc.Register(context.Background(), registerInput("d@x.com", "goodpass", "D", ""))

	_, wrongPass := svc.Login(context.Background(), "d@x.com", "badpass")
	_, unknown := svc.Login(context.Background(), "ghost@x.com", "whatever")
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("unknown email and wrong password must be indistinguishable: %v vs %v", wrongPass, unknown)
	}
}
