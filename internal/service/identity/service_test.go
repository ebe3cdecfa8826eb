package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	userRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/user"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*domain.User
	created int
	err     error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) && existing.ID != u.ID {
			return nil, userRepo.ErrEmailTaken
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	r.created++
	return &cp, nil
}

func (r *fakeUserRepo) List(_ context.Context, role *domain.Role) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if role == nil || u.Role == *role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestResolve_EmptyUserIDIsGuest(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, nil, nopLogger{})

	session, err := svc.Resolve(context.Background(), "  ", "anyone@example.com")
	require.NoError(t, err)
	assert.True(t, session.IsGuest())
	assert.Equal(t, 0, repo.created)
}

func TestResolve_InvalidUserID(t *testing.T) {
	svc := NewService(newFakeUserRepo(), nil, nopLogger{})

	_, err := svc.Resolve(context.Background(), "not-a-uuid", "a@example.com")
	assert.ErrorIs(t, err, ErrInvalidIdentity)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolve_ExistingUserKeepsStoredRole(t *testing.T) {
	id := uuid.New()
	repo := newFakeUserRepo(&domain.User{ID: id, Email: "boss@example.com", Role: domain.RoleCounselor})
	// Bootstrap list must not override an existing profile
	svc := NewService(repo, []string{"boss@example.com"}, nopLogger{})

	session, err := svc.Resolve(context.Background(), id.String(), "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCounselor, session.Role)
	assert.Equal(t, id, session.UserID)
	assert.Equal(t, 0, repo.created)
}

func TestResolve_NewUserBecomesStudent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, []string{"admin@example.com"}, nopLogger{})
	id := uuid.New()

	session, err := svc.Resolve(context.Background(), id.String(), " Ann@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, session.Role)
	assert.Equal(t, "ann@example.com", session.Email)
	assert.Equal(t, 1, repo.created)
	assert.Equal(t, "ann", repo.users[id].Name)
}

func TestResolve_BootstrapAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, []string{" Admin@Example.com"}, nopLogger{})

	session, err := svc.Resolve(context.Background(), uuid.NewString(), "admin@example.com")
	require.NoError(t, err)
	assert.True(t, session.IsAdmin())
}

func TestResolve_NewUserWithoutEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, nil, nopLogger{})

	_, err := svc.Resolve(context.Background(), uuid.NewString(), "")
	assert.ErrorIs(t, err, ErrInvalidIdentity)
	assert.Equal(t, 0, repo.created)
}

func TestResolve_EmailTaken(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: uuid.New(), Email: "taken@example.com", Role: domain.RoleStudent})
	svc := NewService(repo, nil, nopLogger{})

	_, err := svc.Resolve(context.Background(), uuid.NewString(), "taken@example.com")
	assert.ErrorIs(t, err, ErrInvalidIdentity)
}

func TestResolve_StoreError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = errors.New("connection refused")
	svc := NewService(repo, nil, nopLogger{})

	_, err := svc.Resolve(context.Background(), uuid.NewString(), "a@example.com")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestListUsers(t *testing.T) {
	admin := &domain.User{ID: uuid.New(), Email: "admin@example.com", Role: domain.RoleAdmin}
	counselor := &domain.User{ID: uuid.New(), Email: "c@example.com", Role: domain.RoleCounselor}
	student := &domain.User{ID: uuid.New(), Email: "s@example.com", Role: domain.RoleStudent}
	svc := NewService(newFakeUserRepo(admin, counselor, student), nil, nopLogger{})
	adminSession := domain.SessionContext{UserID: admin.ID, Role: domain.RoleAdmin}

	t.Run("admin lists all", func(t *testing.T) {
		resp, err := svc.ListUsers(context.Background(), adminSession, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Total)
	})

	t.Run("filter by role", func(t *testing.T) {
		role := "counselor"
		resp, err := svc.ListUsers(context.Background(), adminSession, &role)
		require.NoError(t, err)
		require.Len(t, resp.Users, 1)
		assert.Equal(t, counselor.ID.String(), resp.Users[0].ID)
	})

	t.Run("unknown role filter", func(t *testing.T) {
		role := "wizard"
		_, err := svc.ListUsers(context.Background(), adminSession, &role)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("non admin", func(t *testing.T) {
		_, err := svc.ListUsers(context.Background(), domain.SessionContext{UserID: student.ID, Role: domain.RoleStudent}, nil)
		assert.ErrorIs(t, err, domain.ErrAuthorization)
	})
}

func TestUpdateRole(t *testing.T) {
	admin := &domain.User{ID: uuid.New(), Email: "admin@example.com", Role: domain.RoleAdmin}
	student := &domain.User{ID: uuid.New(), Email: "s@example.com", Role: domain.RoleStudent}
	repo := newFakeUserRepo(admin, student)
	svc := NewService(repo, nil, nopLogger{})
	adminSession := domain.SessionContext{UserID: admin.ID, Role: domain.RoleAdmin}

	t.Run("promote student to counselor", func(t *testing.T) {
		resp, err := svc.UpdateRole(context.Background(), adminSession, student.ID, "counselor")
		require.NoError(t, err)
		assert.Equal(t, "counselor", resp.Role)
		assert.Equal(t, domain.RoleCounselor, repo.users[student.ID].Role)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := svc.UpdateRole(context.Background(), adminSession, student.ID, "guest")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("own role", func(t *testing.T) {
		_, err := svc.UpdateRole(context.Background(), adminSession, admin.ID, "student")
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, domain.RoleAdmin, repo.users[admin.ID].Role)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateRole(context.Background(), adminSession, uuid.New(), "student")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("non admin", func(t *testing.T) {
		_, err := svc.UpdateRole(context.Background(), domain.SessionContext{UserID: student.ID, Role: domain.RoleCounselor}, admin.ID, "student")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
