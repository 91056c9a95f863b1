package service

import (
	"context"
	"strings"
	"testing"

	"juice-store/internal/domain"
	"juice-store/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/crypto/bcrypt"
)

// Mock repository for testing
type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) FindAll(ctx context.Context, nameFilter string) ([]*domain.User, error) {
	users := []*domain.User{}
	for _, user := range m.users {
		if nameFilter == "" || strings.Contains(strings.ToLower(user.Name), strings.ToLower(nameFilter)) {
			users = append(users, user)
		}
	}
	return users, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	for email, existing := range m.users {
		if existing.ID == user.ID {
			delete(m.users, email)
			m.users[user.Email] = user
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	for email, existing := range m.users {
		if existing.ID == id {
			delete(m.users, email)
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func newTestUserService(repo repository.UserRepository) UserService {
	return NewUserService(repo, NewTokenService(testSecret, 0, 0))
}

func TestProperty_RegistrationCreatesHashedPasswords(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("passwords are hashed with bcrypt and not stored as plaintext", prop.ForAll(
		func(email string, password string, name string) bool {
			userRepo := newMockUserRepository()
			service := newTestUserService(userRepo)
			ctx := context.Background()

			user, err := service.Register(ctx, name, email, password)
			if err != nil {
				return true
			}

			if user.Password == password {
				t.Logf("FAIL: Password stored as plaintext for email %s", email)
				return false
			}

			if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
				t.Logf("FAIL: Password hash is not a valid bcrypt hash or doesn't match: %v", err)
				return false
			}

			return true
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestUserService(userRepo)
	ctx := context.Background()

	if _, err := service.Register(ctx, "A", "a@x.com", "p"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := service.Register(ctx, "B", "a@x.com", "stronger-password")
	if err != repository.ErrUserAlreadyExists {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	service := newTestUserService(newMockUserRepository())

	_, _, _, err := service.Login(context.Background(), "nobody@x.com", "p")
	if err != repository.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestUserService(userRepo)
	ctx := context.Background()

	if _, err := service.Register(ctx, "A", "a@x.com", "p"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, _, _, err := service.Login(ctx, "a@x.com", "wrong")
	if err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_IssuesVerifiableTokens(t *testing.T) {
	userRepo := newMockUserRepository()
	tokens := NewTokenService(testSecret, 0, 0)
	service := NewUserService(userRepo, tokens)
	ctx := context.Background()

	user, err := service.Register(ctx, "A", "a@x.com", "p")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	accessToken, refreshToken, _, err := service.Login(ctx, "a@x.com", "p")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	for _, token := range []string{accessToken, refreshToken} {
		claims, err := tokens.Verify(token)
		if err != nil {
			t.Fatalf("issued token failed verification: %v", err)
		}
		if claims.UserID != user.ID {
			t.Fatalf("token user id = %q, want %q", claims.UserID, user.ID)
		}
	}
}

func TestRefresh_MintsNewAccessToken(t *testing.T) {
	userRepo := newMockUserRepository()
	tokens := NewTokenService(testSecret, 0, 0)
	service := NewUserService(userRepo, tokens)
	ctx := context.Background()

	user, err := service.Register(ctx, "A", "a@x.com", "p")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, refreshToken, _, err := service.Login(ctx, "a@x.com", "p")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	accessToken, err := service.Refresh(ctx, refreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	claims, err := tokens.Verify(accessToken)
	if err != nil {
		t.Fatalf("refreshed token failed verification: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("refreshed token user id = %q, want %q", claims.UserID, user.ID)
	}
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	service := newTestUserService(newMockUserRepository())

	if _, err := service.Refresh(context.Background(), "not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestUpdate_OverwritesAllFields(t *testing.T) {
	userRepo := newMockUserRepository()
	tokens := NewTokenService(testSecret, 0, 0)
	service := NewUserService(userRepo, tokens)
	ctx := context.Background()

	user, err := service.Register(ctx, "A", "a@x.com", "p")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// Only name sent: email and password are replaced with whatever was
	// supplied, including the empty string
	if err := service.Update(ctx, user.ID, "B", "", ""); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	updated, err := userRepo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if updated.Name != "B" || updated.Email != "" {
		t.Fatalf("expected full overwrite, got name=%q email=%q", updated.Name, updated.Email)
	}
	if err := tokens.CheckPassword("", updated.Password); err != nil {
		t.Fatalf("password was not re-hashed from the supplied value: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	service := newTestUserService(newMockUserRepository())
	ctx := context.Background()

	// Repeated deletes of an unknown id keep reporting not-found
	for i := 0; i < 2; i++ {
		if err := service.Delete(ctx, "missing"); err != repository.ErrUserNotFound {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	}
}
