package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"main/model"
	"main/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeSessionStore struct {
	sessions map[string]*model.FocusSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*model.FocusSession)}
}

func (s *fakeSessionStore) FindActiveSession(_ context.Context, userID string) (*model.FocusSession, error) {
	for _, session := range s.sessions {
		if session.UserID == userID && session.DeletedAt == nil &&
			(session.Status == model.FocusActive || session.Status == model.FocusPaused) {
			return session, nil
		}
	}
	return nil, nil
}

func (s *fakeSessionStore) FindSession(_ context.Context, sessionID, userID string) (*model.FocusSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.UserID != userID || session.DeletedAt != nil {
		return nil, usecase.ErrSessionNotFound
	}
	return session, nil
}

func (s *fakeSessionStore) CreateSession(_ context.Context, session *model.FocusSession) error {
	s.sessions[session.SessionID] = session
	return nil
}

func (s *fakeSessionStore) UpdateSession(_ context.Context, session *model.FocusSession) error {
	s.sessions[session.SessionID] = session
	return nil
}

func (s *fakeSessionStore) ListCompletedSessions(_ context.Context, userID string) ([]*model.FocusSession, error) {
	var out []*model.FocusSession
	for _, session := range s.sessions {
		if session.UserID == userID && session.DeletedAt == nil && session.Status == model.FocusCompleted {
			out = append(out, session)
		}
	}
	return out, nil
}

func (s *fakeSessionStore) ListTrashedSessions(_ context.Context, userID string) ([]*model.FocusSession, error) {
	var out []*model.FocusSession
	for _, session := range s.sessions {
		if session.UserID == userID && session.DeletedAt != nil {
			out = append(out, session)
		}
	}
	return out, nil
}

func (s *fakeSessionStore) PurgeSession(_ context.Context, sessionID, userID string) error {
	session, ok := s.sessions[sessionID]
	if !ok || session.UserID != userID || session.DeletedAt == nil {
		return usecase.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

type fakeStatsStore struct {
	stats map[string]*model.FocusStats
}

func (s *fakeStatsStore) GetStats(_ context.Context, userID string) (*model.FocusStats, error) {
	return s.stats[userID], nil
}

func (s *fakeStatsStore) UpsertStats(_ context.Context, stats *model.FocusStats) error {
	s.stats[stats.UserID] = stats
	return nil
}

func setupFocusRouter(t *testing.T, userID string) (*gin.Engine, *fakeSessionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newFakeSessionStore()
	service := &usecase.FocusService{
		Sessions: store,
		Stats:    &fakeStatsStore{stats: make(map[string]*model.FocusStats)},
	}
	focusHandler := NewFocusHandler(service)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})

	focus := router.Group("/api/focus")
	{
		focus.POST("/start", focusHandler.StartSession)
		focus.GET("/active", focusHandler.GetActiveSession)
		focus.POST("/:id/pause", focusHandler.PauseSession)
		focus.POST("/:id/resume", focusHandler.ResumeSession)
		focus.POST("/:id/complete", focusHandler.CompleteSession)
		focus.POST("/:id/end-early", focusHandler.EndSessionEarly)
		focus.POST("/:id/cancel", focusHandler.CancelSession)
		focus.GET("/stats", focusHandler.GetStats)
		focus.GET("/history", focusHandler.GetHistory)
		focus.DELETE("/:id", focusHandler.TrashSession)
		focus.GET("/trash", focusHandler.ListTrash)
	}

	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStartSessionEndpoint(t *testing.T) {
	router, _ := setupFocusRouter(t, "user-1")

	w := doJSON(t, router, http.MethodPost, "/api/focus/start", gin.H{
		"task":             "write report",
		"duration_minutes": 25,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			ID               string `json:"id"`
			Status           string `json:"status"`
			RemainingSeconds *int64 `json:"remaining_seconds"`
			RemainingDisplay string `json:"remaining_display"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Status != string(model.FocusActive) {
		t.Errorf("status = %s, want ACTIVE", resp.Data.Status)
	}
	if resp.Data.RemainingSeconds == nil || *resp.Data.RemainingSeconds > 1500 || *resp.Data.RemainingSeconds < 1495 {
		t.Errorf("remaining_seconds = %v, want about 1500", resp.Data.RemainingSeconds)
	}

	// A second start while one is running conflicts.
	w = doJSON(t, router, http.MethodPost, "/api/focus/start", gin.H{
		"task":             "another",
		"duration_minutes": 10,
	})
	if w.Code != http.StatusConflict {
		t.Errorf("second start status = %d, want 409", w.Code)
	}
}

func TestStartSessionValidation(t *testing.T) {
	router, _ := setupFocusRouter(t, "user-1")

	w := doJSON(t, router, http.MethodPost, "/api/focus/start", gin.H{
		"task":             "x",
		"duration_minutes": 0,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("zero duration status = %d, want 400", w.Code)
	}
}

func TestGetActiveSessionEmpty(t *testing.T) {
	router, _ := setupFocusRouter(t, "user-1")

	w := doJSON(t, router, http.MethodGet, "/api/focus/active", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 0 && string(resp.Data) != "null" {
		t.Errorf("data = %s, want null", resp.Data)
	}
}

func TestTransitionStatusMapping(t *testing.T) {
	router, store := setupFocusRouter(t, "user-1")

	// Unknown session maps to 404.
	w := doJSON(t, router, http.MethodPost, "/api/focus/"+uuid.New().String()+"/pause", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("pause of unknown session = %d, want 404", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/focus/start", gin.H{
		"task":             "x",
		"duration_minutes": 25,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("start failed: %d", w.Code)
	}

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	id := created.Data.ID

	// Completing before the duration elapsed is an invalid transition.
	w = doJSON(t, router, http.MethodPost, "/api/focus/"+id+"/complete", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("premature complete = %d, want 400", w.Code)
	}

	// Resume of an ACTIVE session is invalid too.
	w = doJSON(t, router, http.MethodPost, "/api/focus/"+id+"/resume", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("resume of active = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/focus/"+id+"/pause", nil)
	if w.Code != http.StatusOK {
		t.Errorf("pause = %d, want 200", w.Code)
	}

	// Trash requires a terminal state.
	w = doJSON(t, router, http.MethodDelete, "/api/focus/"+id, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("trash of paused session = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/focus/"+id+"/cancel", nil)
	if w.Code != http.StatusOK {
		t.Errorf("cancel = %d, want 200", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/focus/"+id, nil)
	if w.Code != http.StatusOK {
		t.Errorf("trash of cancelled session = %d, want 200", w.Code)
	}

	// Trashed sessions vanish from normal lookups but show in trash.
	w = doJSON(t, router, http.MethodPost, "/api/focus/"+id+"/pause", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("pause of trashed session = %d, want 404", w.Code)
	}
	if trashed, _ := store.ListTrashedSessions(context.Background(), "user-1"); len(trashed) != 1 {
		t.Errorf("trash listing has %d sessions, want 1", len(trashed))
	}
}

func TestGetStatsEndpoint(t *testing.T) {
	router, _ := setupFocusRouter(t, "user-1")

	w := doJSON(t, router, http.MethodGet, "/api/focus/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			CurrentStreak int `json:"current_streak"`
			BestStreak    int `json:"best_streak"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.CurrentStreak != 0 || resp.Data.BestStreak != 0 {
		t.Errorf("fresh user stats = %+v, want zeros", resp.Data)
	}
}
