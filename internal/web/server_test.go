package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jason910315/gentle-gains/internal/domain"
)

type stubAnalyzer struct {
	result *domain.FoodAnalysisResult
	err    error
}

func (s *stubAnalyzer) AnalyzeFood(context.Context, string, string, string) (*domain.FoodAnalysisResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	// Copy so handlers mutating IsSaved do not leak between tests.
	r := *s.result
	return &r, nil
}

type stubFoodStore struct {
	err     error
	inserts int
}

func (s *stubFoodStore) Insert(_ context.Context, result *domain.FoodAnalysisResult, imageBase64, foodName, mealType string) (*domain.FoodLogRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.inserts++
	return &domain.FoodLogRecord{
		ID:       int64(s.inserts),
		FoodName: foodName,
		ImageURL: imageBase64,
		MealType: mealType,
		Calories: result.Calories,
	}, nil
}

type stubWorkoutStore struct {
	err error
}

func (s *stubWorkoutStore) Insert(_ context.Context, req domain.WorkoutLogRequest) (*domain.WorkoutLogRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.WorkoutLogRecord{
		ID:           42,
		ExerciseName: req.ExerciseName,
		BodyPart:     req.BodyPart,
		Weight:       req.Weight,
		Sets:         req.Sets,
		Reps:         req.Reps,
	}, nil
}

type stubAgent struct {
	reply   domain.ChatMessage
	history []domain.ChatMessage
}

func (s *stubAgent) Chat(context.Context, string, string) domain.ChatMessage {
	return s.reply
}

func (s *stubAgent) History(context.Context, string) []domain.ChatMessage {
	return s.history
}

func testResult() *domain.FoodAnalysisResult {
	return &domain.FoodAnalysisResult{
		Calories:     650,
		Protein:      35,
		Fat:          22,
		Carbs:        70,
		Score:        4.2,
		CoachComment: "Looks good.",
		Reasoning:    "Chicken with rice.",
	}
}

func newTestServer(analyzer *stubAnalyzer, foods *stubFoodStore, workouts *stubWorkoutStore, agent *stubAgent) *Server {
	return NewServer(analyzer, foods, workouts, agent, slog.Default())
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(&stubAnalyzer{result: testResult()}, &stubFoodStore{}, &stubWorkoutStore{}, &stubAgent{})

	rec := doJSON(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "backend is running", body["message"])
}

func TestAnalyze_Saved(t *testing.T) {
	s := newTestServer(&stubAnalyzer{result: testResult()}, &stubFoodStore{}, &stubWorkoutStore{}, &stubAgent{})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/analyze",
		`{"image_base64":"aGVsbG8=","food_name":"Chicken rice","meal_type":"lunch"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.FoodAnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.IsSaved)
	assert.Equal(t, 650, result.Calories)
}

func TestAnalyze_StoreFailureStillReturnsVerdict(t *testing.T) {
	foods := &stubFoodStore{err: errors.New("store unreachable")}
	s := newTestServer(&stubAnalyzer{result: testResult()}, foods, &stubWorkoutStore{}, &stubAgent{})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/analyze",
		`{"image_base64":"aGVsbG8=","food_name":"Chicken rice","meal_type":"lunch"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.FoodAnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.IsSaved)
	// Everything else in the payload survives the failed write.
	assert.Equal(t, 650, result.Calories)
	assert.Equal(t, "Looks good.", result.CoachComment)
}

func TestAnalyze_AnalyzerFailure(t *testing.T) {
	s := newTestServer(&stubAnalyzer{err: errors.New("provider down")}, &stubFoodStore{}, &stubWorkoutStore{}, &stubAgent{})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/analyze",
		`{"image_base64":"aGVsbG8=","food_name":"Chicken rice","meal_type":"lunch"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "provider down")
}

func TestAnalyze_MissingFields(t *testing.T) {
	s := newTestServer(&stubAnalyzer{result: testResult()}, &stubFoodStore{}, &stubWorkoutStore{}, &stubAgent{})

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing image", `{"food_name":"x","meal_type":"lunch"}`},
		{"missing food name", `{"image_base64":"aGVsbG8=","meal_type":"lunch"}`},
		{"not json", `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/v1/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestWorkout(t *testing.T) {
	s := newTestServer(&stubAnalyzer{result: testResult()}, &stubFoodStore{}, &stubWorkoutStore{}, &stubAgent{})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/workout",
		`{"exercise_name":"Bench Press","body_part":"Chest","weight":60.0,"sets":3,"reps":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var record domain.WorkoutLogRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.NotZero(t, record.ID)
	assert.Equal(t, "Bench Press", record.ExerciseName)
	assert.Equal(t, "Chest", record.BodyPart)
	assert.InDelta(t, 60.0, record.Weight, 0.001)
	assert.Equal(t, 3, record.Sets)
	assert.Equal(t, 10, record.Reps)
}

func TestWorkout_StoreFailure(t *testing.T) {
	s := newTestServer(&stubAnalyzer{result: testResult()}, &stubFoodStore{},
		&stubWorkoutStore{err: errors.New("store unreachable")}, &stubAgent{})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/workout",
		`{"exercise_name":"Squat","body_part":"Legs","weight":80.0,"sets":5,"reps":5}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWorkout_Invalid(t *testing.T) {
	s := newTestServer(&stubAnalyzer{result: testResult()}, &stubFoodStore{}, &stubWorkoutStore{}, &stubAgent{})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/workout",
		`{"exercise_name":"","body_part":"Chest","weight":60.0,"sets":3,"reps":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/workout",
		`{"exercise_name":"Bench Press","body_part":"Chest","weight":60.0,"sets":0,"reps":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat(t *testing.T) {
	agent := &stubAgent{reply: domain.ChatMessage{Role: domain.RoleAssistant, Content: "Keep it up!"}}
	s := newTestServer(&stubAnalyzer{result: testResult()}, &stubFoodStore{}, &stubWorkoutStore{}, agent)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/chat",
		`{"session_id":"abc-123","content":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var reply domain.ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, domain.RoleAssistant, reply.Role)
	assert.Equal(t, "Keep it up!", reply.Content)
}

func TestChat_MissingFields(t *testing.T) {
	s := newTestServer(&stubAnalyzer{result: testResult()}, &stubFoodStore{}, &stubWorkoutStore{}, &stubAgent{})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/chat", `{"content":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/chat", `{"session_id":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHistory(t *testing.T) {
	agent := &stubAgent{history: []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "q1"},
		{Role: domain.RoleAssistant, Content: "a1"},
	}}
	s := newTestServer(&stubAnalyzer{result: testResult()}, &stubFoodStore{}, &stubWorkoutStore{}, agent)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/chat/history/abc-123", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var msgs []domain.ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, "q1", msgs[0].Content)
}

func TestChatHistory_EmptySessionIsArray(t *testing.T) {
	s := newTestServer(&stubAnalyzer{result: testResult()}, &stubFoodStore{}, &stubWorkoutStore{}, &stubAgent{})

	rec := doJSON(t, s, http.MethodGet, "/api/v1/chat/history/never-seen", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(&stubAnalyzer{result: testResult()}, &stubFoodStore{}, &stubWorkoutStore{}, &stubAgent{})

	rec := doJSON(t, s, http.MethodGet, "/", "")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	// Preflight short-circuits before routing.
	rec = doJSON(t, s, http.MethodOptions, "/api/v1/analyze", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(&stubAnalyzer{result: testResult()}, &stubFoodStore{}, &stubWorkoutStore{}, &stubAgent{})

	rec := doJSON(t, s, http.MethodGet, "/", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
