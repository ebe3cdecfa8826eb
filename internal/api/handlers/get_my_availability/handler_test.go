package get_my_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/availability"
	"github.com/m04kA/SMC-ConsultationService/internal/service/availability/models"
)

type stubService struct {
	resp   *models.SlotListResponse
	err    error
	called bool
}

func (s *stubService) ListOwn(_ context.Context, _ domain.SessionContext) (*models.SlotListResponse, error) {
	s.called = true
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *stubService, session domain.SessionContext) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me/availability", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), session))
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_ListsOwnSlots(t *testing.T) {
	svc := &stubService{resp: &models.SlotListResponse{
		Slots: []models.SlotResponse{
			{ID: 1, Date: "2099-03-10", StartTime: "09:00", EndTime: "10:00"},
			{ID: 2, Date: "2099-03-10", StartTime: "23:00", EndTime: "24:00", IsBooked: true},
		},
		Total:  2,
		Booked: 1,
	}}

	rec := serve(svc, domain.SessionContext{UserID: uuid.New(), Role: domain.RoleCounselor})
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.SlotListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 1, body.Booked)
	assert.Equal(t, "24:00", body.Slots[1].EndTime)
}

func TestHandle_Errors(t *testing.T) {
	student := domain.SessionContext{UserID: uuid.New(), Role: domain.RoleStudent}
	counselor := domain.SessionContext{UserID: uuid.New(), Role: domain.RoleCounselor}

	tests := []struct {
		name       string
		session    domain.SessionContext
		err        error
		want       int
		wantCalled bool
	}{
		{name: "guest", session: domain.GuestSession(), want: http.StatusUnauthorized},
		{name: "student", session: student, err: availability.ErrAccessDenied, want: http.StatusForbidden, wantCalled: true},
		{name: "store", session: counselor, err: availability.ErrStoreUnavailable, want: http.StatusServiceUnavailable, wantCalled: true},
		{name: "unexpected", session: counselor, err: errors.New("boom"), want: http.StatusInternalServerError, wantCalled: true},
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
