package update_user_role

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	userRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ConsultationService/internal/service/identity"
	"github.com/m04kA/SMC-ConsultationService/internal/service/identity/models"
)

// fakeUsers хранит пользователей в памяти для настоящего identity.Service
type fakeUsers struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsers) List(_ context.Context, _ *domain.Role) ([]*domain.User, error) {
	return nil, nil
}

func (f *fakeUsers) UpdateRole(_ context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	u.Role = role
	return u, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc IdentityService, session domain.SessionContext, userID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/users/{userId}/role", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/admin/users/"+userID+"/role", strings.NewReader(body))
	req = req.WithContext(middleware.WithSession(req.Context(), session))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func fixture() (*fakeUsers, domain.SessionContext, uuid.UUID) {
	admin := uuid.New()
	student := uuid.New()
	repo := &fakeUsers{users: map[uuid.UUID]*domain.User{
		admin:   {ID: admin, Email: "root@uni.edu", Name: "Root", Role: domain.RoleAdmin},
		student: {ID: student, Email: "ann@uni.edu", Name: "Ann", Role: domain.RoleStudent},
	}}
	return repo, domain.SessionContext{UserID: admin, Role: domain.RoleAdmin}, student
}

func TestHandle_PromotesUser(t *testing.T) {
	repo, admin, student := fixture()
	svc := identity.NewService(repo, nil, nopLogger{})

	rec := serve(svc, admin, student.String(), `{"role":"counselor"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, student.String(), body.ID)
	assert.Equal(t, "counselor", body.Role)
	assert.Equal(t, domain.RoleCounselor, repo.users[student].Role)
}

func TestHandle_AdminCannotChangeOwnRole(t *testing.T) {
	repo, admin, _ := fixture()
	svc := identity.NewService(repo, nil, nopLogger{})

	rec := serve(svc, admin, admin.UserID.String(), `{"role":"student"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Message, "own role")
	assert.Equal(t, domain.RoleAdmin, repo.users[admin.UserID].Role)
}

func TestHandle_Errors(t *testing.T) {
	repo, admin, student := fixture()
	counselor := domain.SessionContext{UserID: uuid.New(), Role: domain.RoleCounselor}

	tests := []struct {
		name    string
		session domain.SessionContext
		userID  string
		body    string
		repoErr error
		want    int
	}{
		{name: "bad id", session: admin, userID: "nope", body: `{"role":"counselor"}`, want: http.StatusBadRequest},
		{name: "bad body", session: admin, userID: student.String(), body: `{`, want: http.StatusBadRequest},
		{name: "guest", session: domain.GuestSession(), userID: student.String(), body: `{"role":"counselor"}`, want: http.StatusUnauthorized},
		{name: "not admin", session: counselor, userID: student.String(), body: `{"role":"counselor"}`, want: http.StatusForbidden},
		{name: "unknown role", session: admin, userID: student.String(), body: `{"role":"dean"}`, want: http.StatusBadRequest},
		{name: "missing user", session: admin, userID: uuid.New().String(), body: `{"role":"counselor"}`, want: http.StatusNotFound},
		{name: "store", session: admin, userID: student.String(), body: `{"role":"counselor"}`, repoErr: errors.New("connection reset"), want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo.err = tt.repoErr
			svc := identity.NewService(repo, nil, nopLogger{})
			rec := serve(svc, tt.session, tt.userID, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
