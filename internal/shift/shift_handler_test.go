package shift_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"geoshift/internal/shift"
	shifterrors "geoshift/internal/shift/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	clockInFn   func(ctx context.Context, organizationID, userID string, req shift.ClockInRequest) (shift.ShiftResponse, error)
	clockOutFn  func(ctx context.Context, organizationID, userID string, req shift.ClockOutRequest) (shift.ShiftResponse, error)
	getAllFn    func(ctx context.Context, organizationID, actorID string, canReadAll bool, page, pageSize int) ([]shift.ShiftResponse, int64, error)
	listStaleFn func(ctx context.Context, organizationID string) ([]shift.ShiftResponse, error)
	resolveFn   func(ctx context.Context, organizationID, actorID, shiftID string, req shift.ResolveRequest) (shift.ShiftResponse, error)
}

func (f *fakeService) ClockIn(ctx context.Context, organizationID, userID string, req shift.ClockInRequest) (shift.ShiftResponse, error) {
	return f.clockInFn(ctx, organizationID, userID, req)
}
func (f *fakeService) ClockOut(ctx context.Context, organizationID, userID string, req shift.ClockOutRequest) (shift.ShiftResponse, error) {
	return f.clockOutFn(ctx, organizationID, userID, req)
}
func (f *fakeService) GetAll(ctx context.Context, organizationID, actorID string, canReadAll bool, page, pageSize int) ([]shift.ShiftResponse, int64, error) {
	return f.getAllFn(ctx, organizationID, actorID, canReadAll, page, pageSize)
}
func (f *fakeService) ListStale(ctx context.Context, organizationID string) ([]shift.ShiftResponse, error) {
	return f.listStaleFn(ctx, organizationID)
}
func (f *fakeService) Resolve(ctx context.Context, organizationID, actorID, shiftID string, req shift.ResolveRequest) (shift.ShiftResponse, error) {
	return f.resolveFn(ctx, organizationID, actorID, shiftID, req)
}

func sampleBody() string {
	return fmt.Sprintf(
		`{"sample":{"latitude":-6.2,"longitude":106.81,"accuracy_meters":12,"sample_timestamp":%q}}`,
		time.Now().UTC().Format(time.RFC3339),
	)
}

func TestHandler_ClockIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	organizationID := uuid.New().String()
	userID := uuid.New().String()

	svc := &fakeService{
		clockInFn: func(ctx context.Context, oid, uid string, req shift.ClockInRequest) (shift.ShiftResponse, error) {
			assert.Equal(t, organizationID, oid)
			assert.Equal(t, userID, uid)
			assert.InDelta(t, -6.2, *req.Sample.Latitude, 0.001)
			return shift.ShiftResponse{ID: uuid.New().String(), Status: shift.StatusOpen}, nil
		},
	}
	h := shift.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("organization_id", organizationID)
	c.Set("user_id_validated", userID)
	c.Request = httptest.NewRequest(http.MethodPost, "/shifts/clock-in", strings.NewReader(sampleBody()))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ClockIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), shift.StatusOpen)
}

// A longitude of exactly 0 (Greenwich meridian) is a legal coordinate and
// must survive request binding instead of tripping the required check.
func TestHandler_ClockIn_ZeroLongitudeAccepted(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		clockInFn: func(ctx context.Context, oid, uid string, req shift.ClockInRequest) (shift.ShiftResponse, error) {
			assert.InDelta(t, 51.4779, *req.Sample.Latitude, 0.001)
			assert.Zero(t, *req.Sample.Longitude)
			return shift.ShiftResponse{ID: uuid.New().String(), Status: shift.StatusOpen}, nil
		},
	}
	h := shift.NewHandler(svc)

	body := fmt.Sprintf(
		`{"sample":{"latitude":51.4779,"longitude":0,"accuracy_meters":8,"sample_timestamp":%q}}`,
		time.Now().UTC().Format(time.RFC3339),
	)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("organization_id", uuid.New().String())
	c.Set("user_id_validated", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/shifts/clock-in", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ClockIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_ClockIn_ValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{}
	h := shift.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("organization_id", uuid.New().String())
	c.Set("user_id_validated", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/shifts/clock-in", strings.NewReader(`{"sample":{"latitude":123.0}}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ClockIn(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestHandler_ClockOut_ServiceErrorsMapToStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no open shift", shifterrors.ErrNoOpenShift, http.StatusNotFound},
		{"location rejected", shifterrors.ErrLocationRejected, http.StatusUnprocessableEntity},
		{"out of range", shifterrors.ErrOutOfRange, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeService{
				clockOutFn: func(ctx context.Context, oid, uid string, req shift.ClockOutRequest) (shift.ShiftResponse, error) {
					return shift.ShiftResponse{}, tc.err
				},
			}
			h := shift.NewHandler(svc)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set("organization_id", uuid.New().String())
			c.Set("user_id_validated", uuid.New().String())
			c.Request = httptest.NewRequest(http.MethodPost, "/shifts/clock-out", strings.NewReader(sampleBody()))
			c.Request.Header.Set("Content-Type", "application/json")

			h.ClockOut(c)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestHandler_GetAll_Pagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	organizationID := uuid.New().String()
	actorID := uuid.New().String()

	svc := &fakeService{
		getAllFn: func(ctx context.Context, oid, aid string, canReadAll bool, page, pageSize int) ([]shift.ShiftResponse, int64, error) {
			assert.False(t, canReadAll)
			assert.Equal(t, 1, page)
			assert.Equal(t, 2, pageSize)
			return []shift.ShiftResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, 3, nil
		},
	}
	h := shift.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("organization_id", organizationID)
	c.Set("user_id_validated", actorID)
	c.Request = httptest.NewRequest(http.MethodGet, "/shifts?page=1&page_size=2", nil)

	h.GetAll(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"meta\"")
	assert.Contains(t, w.Body.String(), `"total":3`)

	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
}

func TestHandler_GetAll_ManagerReadsAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var sawReadAll bool
	svc := &fakeService{
		getAllFn: func(ctx context.Context, oid, aid string, canReadAll bool, page, pageSize int) ([]shift.ShiftResponse, int64, error) {
			sawReadAll = canReadAll
			return nil, 0, nil
		},
	}
	h := shift.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("organization_id", uuid.New().String())
	c.Set("user_id_validated", uuid.New().String())
	c.Set("role", "manager")
	c.Set("has_read_all", true)
	c.Request = httptest.NewRequest(http.MethodGet, "/shifts", nil)

	h.GetAll(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, sawReadAll)
}

func TestHandler_ListStale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		listStaleFn: func(ctx context.Context, oid string) ([]shift.ShiftResponse, error) {
			return []shift.ShiftResponse{{ID: uuid.New().String(), Status: shift.StatusStale}}, nil
		},
	}
	h := shift.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("organization_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodGet, "/shifts/stale", nil)

	h.ListStale(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), shift.StatusStale)
}

func TestHandler_Resolve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	shiftID := uuid.New().String()

	svc := &fakeService{
		resolveFn: func(ctx context.Context, oid, aid, sid string, req shift.ResolveRequest) (shift.ShiftResponse, error) {
			assert.Equal(t, shiftID, sid)
			assert.Equal(t, shift.ResolutionForgot, req.Resolution)
			return shift.ShiftResponse{ID: sid, Status: shift.StatusRevised, IsRevised: true}, nil
		},
	}
	h := shift.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("organization_id", uuid.New().String())
	c.Set("user_id_validated", uuid.New().String())
	c.Params = gin.Params{{Key: "id", Value: shiftID}}
	c.Request = httptest.NewRequest(http.MethodPost, "/shifts/"+shiftID+"/resolve", strings.NewReader(`{"resolution":"forgot"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Resolve(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), shift.StatusRevised)
}
