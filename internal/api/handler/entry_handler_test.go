package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lifetrack/stress-tracking-api/internal/api/middleware"
	"github.com/lifetrack/stress-tracking-api/internal/core/domain"
	"github.com/lifetrack/stress-tracking-api/internal/core/ports"
)

type stubEntryService struct {
	createResult *ports.CreateEntryResult
	createErr    error
	getEntry     *domain.DailyEntry
	getErr       error
	listEntries  []*domain.DailyEntry
	listErr      error
	updateEntry  *domain.DailyEntry
	updateErr    error
	deleteErr    error

	gotUserID  string
	gotEntryID string
	gotInput   ports.EntryInput
}

func (s *stubEntryService) Create(_ context.Context, userID string, input ports.EntryInput) (*ports.CreateEntryResult, error) {
	s.gotUserID = userID
	s.gotInput = input
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.createResult, nil
}

func (s *stubEntryService) Get(_ context.Context, userID, entryID string) (*domain.DailyEntry, error) {
	s.gotUserID = userID
	s.gotEntryID = entryID
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.getEntry, nil
}

func (s *stubEntryService) List(_ context.Context, userID string) ([]*domain.DailyEntry, error) {
	s.gotUserID = userID
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listEntries, nil
}

func (s *stubEntryService) Update(_ context.Context, userID, entryID string, input ports.EntryInput) (*domain.DailyEntry, error) {
	s.gotUserID = userID
	s.gotEntryID = entryID
	s.gotInput = input
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.updateEntry, nil
}

func (s *stubEntryService) Delete(_ context.Context, userID, entryID string) error {
	s.gotUserID = userID
	s.gotEntryID = entryID
	return s.deleteErr
}

func sampleEntry() *domain.DailyEntry {
	return &domain.DailyEntry{
		ID:               "entry-1",
		UserID:           "user-1",
		Date:             time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		SleepHours:       7.5,
		WorkoutIntensity: "moderate",
		SupplementIntake: "magnesium",
		ScreenTime:       4.0,
		StressLevel:      3,
		CreatedAt:        time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC),
	}
}

func samplePrediction() *domain.Prediction {
	return &domain.Prediction{
		ID:             "pred-1",
		UserID:         "user-1",
		EntryID:        "entry-1",
		PredictedValue: 3.42,
		Recommendation: "Moderate predicted stress. Prioritize sleep consistency.",
		ModelVersion:   "v2",
		CreatedAt:      time.Date(2026, 2, 20, 8, 0, 1, 0, time.UTC),
	}
}

const validEntryBody = `{
	"date": "2026-02-20",
	"sleep_hours": 7.5,
	"workout_intensity": "moderate",
	"supplement_intake": "magnesium",
	"screen_time": 4.0,
	"stress_level": 3
}`

func newEntryContext(method, path, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.CtxUserID, userID)
	}
	return c, rec
}

func TestEntryHandler_Create_WithPrediction(t *testing.T) {
	svc := &stubEntryService{createResult: &ports.CreateEntryResult{
		Entry:            sampleEntry(),
		Prediction:       samplePrediction(),
		PredictionStatus: ports.PredictionAttached,
	}}
	h := NewEntryHandler(svc)

	c, rec := newEntryContext(http.MethodPost, "/v1/entries", validEntryBody, "user-1")
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp createEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Entry.ID != "entry-1" || resp.Entry.Date != "2026-02-20" {
		t.Errorf("unexpected entry payload: %+v", resp.Entry)
	}
	if resp.PredictionStatus != ports.PredictionAttached {
		t.Errorf("expected status %q, got %q", ports.PredictionAttached, resp.PredictionStatus)
	}
	if resp.Prediction == nil || resp.Prediction.PredictedValue != 3.42 {
		t.Errorf("unexpected prediction payload: %+v", resp.Prediction)
	}
	if svc.gotUserID != "user-1" {
		t.Errorf("service called with user %q", svc.gotUserID)
	}
	if !svc.gotInput.Date.Equal(time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date parsed incorrectly: %v", svc.gotInput.Date)
	}
}

func TestEntryHandler_Create_PredictionUnavailable(t *testing.T) {
	svc := &stubEntryService{createResult: &ports.CreateEntryResult{
		Entry:            sampleEntry(),
		PredictionStatus: ports.PredictionUnavailable,
	}}
	h := NewEntryHandler(svc)

	c, rec := newEntryContext(http.MethodPost, "/v1/entries", validEntryBody, "user-1")
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("degraded create must still be 201, got %d", rec.Code)
	}
	var resp createEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PredictionStatus != ports.PredictionUnavailable {
		t.Errorf("expected status %q, got %q", ports.PredictionUnavailable, resp.PredictionStatus)
	}
	if resp.Prediction != nil {
		t.Errorf("expected null prediction, got %+v", resp.Prediction)
	}
}

func TestEntryHandler_Create_InvalidRanges(t *testing.T) {
	svc := &stubEntryService{}
	h := NewEntryHandler(svc)

	body := `{"date":"2026-02-20","sleep_hours":25,"workout_intensity":"moderate","screen_time":4,"stress_level":3}`
	c, _ := newEntryContext(http.MethodPost, "/v1/entries", body, "user-1")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
	if msg, ok := he.Message.(string); !ok || !strings.Contains(msg, "sleep_hours") {
		t.Errorf("error must name the offending field: %v", he.Message)
	}
	if svc.gotUserID != "" {
		t.Errorf("invalid payload must not reach the service")
	}
}

func TestEntryHandler_Create_BadDate(t *testing.T) {
	h := NewEntryHandler(&stubEntryService{})

	body := `{"date":"2026-02-30","sleep_hours":7,"workout_intensity":"moderate","screen_time":4,"stress_level":3}`
	c, _ := newEntryContext(http.MethodPost, "/v1/entries", body, "user-1")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("impossible calendar date must be 422, got %v", err)
	}
}

func TestEntryHandler_Create_Unauthenticated(t *testing.T) {
	h := NewEntryHandler(&stubEntryService{})

	c, _ := newEntryContext(http.MethodPost, "/v1/entries", validEntryBody, "")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestEntryHandler_List(t *testing.T) {
	first := sampleEntry()
	second := sampleEntry()
	second.ID = "entry-2"
	svc := &stubEntryService{listEntries: []*domain.DailyEntry{first, second}}
	h := NewEntryHandler(svc)

	c, rec := newEntryContext(http.MethodGet, "/v1/entries", "", "user-1")
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp listEntriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[0].ID != "entry-1" || resp.Data[1].ID != "entry-2" {
		t.Errorf("unexpected list payload: %+v", resp.Data)
	}
}

func TestEntryHandler_List_Empty(t *testing.T) {
	h := NewEntryHandler(&stubEntryService{})

	c, rec := newEntryContext(http.MethodGet, "/v1/entries", "", "user-1")
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"data":[]}` {
		t.Errorf("empty list must serialize as [], got %s", got)
	}
}

func TestEntryHandler_Get(t *testing.T) {
	svc := &stubEntryService{getEntry: sampleEntry()}
	h := NewEntryHandler(svc)

	c, rec := newEntryContext(http.MethodGet, "/v1/entries/entry-1", "", "user-1")
	c.SetParamNames("id")
	c.SetParamValues("entry-1")

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotEntryID != "entry-1" {
		t.Errorf("service called with entry %q", svc.gotEntryID)
	}
}

func TestEntryHandler_Get_NotFound(t *testing.T) {
	svc := &stubEntryService{getErr: domain.ErrEntryNotFound}
	h := NewEntryHandler(svc)

	c, rec := newEntryContext(http.MethodGet, "/v1/entries/entry-999", "", "user-1")
	c.SetParamNames("id")
	c.SetParamValues("entry-999")

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestEntryHandler_Get_Forbidden(t *testing.T) {
	svc := &stubEntryService{getErr: domain.ErrForbidden}
	h := NewEntryHandler(svc)

	c, rec := newEntryContext(http.MethodGet, "/v1/entries/entry-1", "", "user-2")
	c.SetParamNames("id")
	c.SetParamValues("entry-1")

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("someone else's entry must be 403, got %d", rec.Code)
	}
}

func TestEntryHandler_Update(t *testing.T) {
	updated := sampleEntry()
	updated.SleepHours = 8.5
	svc := &stubEntryService{updateEntry: updated}
	h := NewEntryHandler(svc)

	c, rec := newEntryContext(http.MethodPut, "/v1/entries/entry-1", validEntryBody, "user-1")
	c.SetParamNames("id")
	c.SetParamValues("entry-1")

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp entryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SleepHours != 8.5 {
		t.Errorf("expected updated entry in response, got %+v", resp)
	}
}

func TestEntryHandler_Update_Forbidden(t *testing.T) {
	svc := &stubEntryService{updateErr: domain.ErrForbidden}
	h := NewEntryHandler(svc)

	c, rec := newEntryContext(http.MethodPut, "/v1/entries/entry-1", validEntryBody, "user-2")
	c.SetParamNames("id")
	c.SetParamValues("entry-1")

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestEntryHandler_Update_DomainValidation(t *testing.T) {
	svc := &stubEntryService{updateErr: &domain.ValidationError{Fields: []domain.FieldError{
		{Field: "workout_intensity", Message: "must not be blank"},
	}}}
	h := NewEntryHandler(svc)

	body := `{"date":"2026-02-20","sleep_hours":7,"workout_intensity":"   ","screen_time":4,"stress_level":3}`
	c, _ := newEntryContext(http.MethodPut, "/v1/entries/entry-1", body, "user-1")
	c.SetParamNames("id")
	c.SetParamValues("entry-1")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestEntryHandler_Delete(t *testing.T) {
	svc := &stubEntryService{}
	h := NewEntryHandler(svc)

	c, rec := newEntryContext(http.MethodDelete, "/v1/entries/entry-1", "", "user-1")
	c.SetParamNames("id")
	c.SetParamValues("entry-1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("delete response must have no body, got %s", rec.Body.String())
	}
}

func TestEntryHandler_Delete_NotFound(t *testing.T) {
	svc := &stubEntryService{deleteErr: domain.ErrEntryNotFound}
	h := NewEntryHandler(svc)

	c, rec := newEntryContext(http.MethodDelete, "/v1/entries/entry-999", "", "user-1")
	c.SetParamNames("id")
	c.SetParamValues("entry-999")

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
