package list_consultations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/consultations"
	"github.com/m04kA/SMC-ConsultationService/internal/service/consultations/models"
)

type stubService struct {
	resp   *models.ConsultationListResponse
	err    error
	called bool
}

func (s *stubService) ListAll(_ context.Context, _ domain.SessionContext) (*models.ConsultationListResponse, error) {
	s.called = true
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *stubService, session domain.SessionContext) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/consultations", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/admin/consultations", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), session))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ReturnsOverview(t *testing.T) {
	admin := domain.SessionContext{UserID: uuid.New(), Role: domain.RoleAdmin}
	svc := &stubService{resp: &models.ConsultationListResponse{
		Consultations: []models.ConsultationResponse{
			{ID: 2, StudentName: "Ann", CounselorName: "Bob", Date: "2026-04-02", Status: "accepted"},
			{ID: 1, StudentName: "Ann", CounselorName: "Bob", Date: "2026-04-01", Status: "pending"},
		},
		Total: 2,
	}}

	rec := serve(svc, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ConsultationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, int64(2), body.Consultations[0].ID)
	assert.Equal(t, "Bob", body.Consultations[0].CounselorName)
}

func TestHandle_Errors(t *testing.T) {
	admin := domain.SessionContext{UserID: uuid.New(), Role: domain.RoleAdmin}
	student := domain.SessionContext{UserID: uuid.New(), Role: domain.RoleStudent}

	tests := []struct {
		name       string
		session    domain.SessionContext
		err        error
		want       int
		wantCalled bool
	}{
		{name: "guest", session: domain.GuestSession(), want: http.StatusUnauthorized},
		{name: "student", session: student, err: consultations.ErrAccessDenied, want: http.StatusForbidden, wantCalled: true},
		{name: "store", session: admin, err: consultations.ErrStoreUnavailable, want: http.StatusServiceUnavailable, wantCalled: true},
		{name: "unexpected", session: admin, err: errors.New("boom"), want: http.StatusInternalServerError, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err}
			rec := serve(svc, tt.session)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.wantCalled, svc.called)
		})
	}
}
