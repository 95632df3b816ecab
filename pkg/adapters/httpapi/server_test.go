package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kavithma17/Treasure-Hunt/internal/game"
	"github.com/Kavithma17/Treasure-Hunt/internal/testutils"
	"github.com/Kavithma17/Treasure-Hunt/pkg/adapters/memory"
	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

const testAdminToken = "letmein"

func newTestHandler(t *testing.T) (http.Handler, *memory.Catalog) {
	t.Helper()

	clock := testutils.NewClock(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	catalog := memory.NewCatalog()
	seedContent(t, catalog)

	store := memory.NewStore(memory.WithClock(clock))
	engine := game.NewEngine(store, catalog, game.WithClock(clock))

	handler := NewHandler(Config{
		Engine:      engine,
		Catalog:     catalog,
		Players:     memory.NewPlayers(),
		Leaderboard: memory.NewLeaderboard(),
		Sessions:    store,
		AdminToken:  testAdminToken,
		Clock:       clock,
	})
	return handler, catalog
}

// seedContent loads one challenge per stage so hunt selection is
// deterministic, plus alternates parked in an inactive stage so they
// are reachable only through substitution.
func seedContent(t *testing.T, catalog *memory.Catalog) {
	t.Helper()
	ctx := context.Background()

	stages := []domain.Stage{
		{Code: "s1", Title: "Library", Active: true},
		{Code: "s2", Title: "Fountain", Active: true},
		{Code: "s3", Title: "Clock Tower", Active: true},
		{Code: "zz-bank", Title: "Alternate pool", Active: false},
	}
	for _, stage := range stages {
		require.NoError(t, catalog.SaveStage(ctx, stage))
	}

	challenges := []*domain.Challenge{
		{
			Ref: "q1", Code: "q1", StageCode: "s1", Type: domain.TypeMCQ,
			Prompt: "Which door is unlocked?", Active: true,
			MCQ: &domain.MCQData{
				Options:         []domain.Option{{ID: "A", Text: "North"}, {ID: "B", Text: "South"}},
				CorrectOptionID: "A",
			},
		},
		{
			Ref: "q2", Code: "q2", StageCode: "s2", Type: domain.TypeFIB,
			Prompt: "Name the city on the plaque", Active: true,
			FIB: &domain.FIBData{Answers: []string{"Paris"}, TrimInput: true},
		},
		{
			Ref: "q3", Code: "q3", StageCode: "s3", Type: domain.TypeQR,
			Prompt: "Scan the code under the bench", Active: true,
			QR: &domain.QRData{Code: "token-9"},
		},
		{
			Ref: "alt1", Code: "alt1", StageCode: "zz-bank", Type: domain.TypeFIB,
			Prompt: "What color is the west gate?", Active: true,
			FIB: &domain.FIBData{Answers: []string{"green"}},
		},
	}
	for _, c := range challenges {
		require.NoError(t, catalog.SaveChallenge(ctx, c))
	}
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			decoded = nil // list responses decode per-test
		}
	}
	return w, decoded
}

func startHunt(t *testing.T, handler http.Handler) string {
	t.Helper()
	w, body := doJSON(t, handler, http.MethodPost, "/api/game/start", map[string]any{}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 3, body["totalQuestions"])
	sessionID, _ := body["sessionId"].(string)
	require.NotEmpty(t, sessionID)
	return sessionID
}

func TestStartCreatesSessionWithoutContent(t *testing.T) {
	handler, _ := newTestHandler(t)

	w, body := doJSON(t, handler, http.MethodPost, "/api/game/start", map[string]any{}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["sessionId"])

	// Nothing challenge-shaped leaves the start response.
	assert.NotContains(t, w.Body.String(), "prompt")
	assert.NotContains(t, w.Body.String(), "correctOptionId")
}

func TestQuestionRevealStripsSecrets(t *testing.T) {
	handler, _ := newTestHandler(t)
	sessionID := startHunt(t, handler)

	w, body := doJSON(t, handler, http.MethodPost, "/api/game/question/0",
		map[string]any{"sessionId": sessionID}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	question := body["question"].(map[string]any)
	assert.Equal(t, "q1", question["ref"])
	assert.Equal(t, "mcq", question["type"])
	assert.EqualValues(t, 1, question["position"])
	assert.Len(t, question["options"], 2)

	raw := w.Body.String()
	assert.NotContains(t, raw, "correctOptionId")
	assert.NotContains(t, raw, "answers")
	assert.NotContains(t, raw, "expectedKey")
}

func TestQuestionDeniesLookAhead(t *testing.T) {
	handler, _ := newTestHandler(t)
	sessionID := startHunt(t, handler)

	w, _ := doJSON(t, handler, http.MethodPost, "/api/game/question/1",
		map[string]any{"sessionId": sessionID}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestQuestionRequiresSession(t *testing.T) {
	handler, _ := newTestHandler(t)

	w, _ := doJSON(t, handler, http.MethodPost, "/api/game/question/0", map[string]any{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, handler, http.MethodPost, "/api/game/question/0",
		map[string]any{"sessionId": "nope"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func verify(t *testing.T, handler http.Handler, sessionID, ref string, index int, answer string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	return doJSON(t, handler, http.MethodPost, "/api/game/verify", map[string]any{
		"sessionId":     sessionID,
		"questionId":    ref,
		"questionIndex": index,
		"answer":        answer,
	}, nil)
}

func TestVerifyFullRun(t *testing.T) {
	handler, _ := newTestHandler(t)
	sessionID := startHunt(t, handler)

	// Wrong answer holds the cursor.
	w, body := verify(t, handler, sessionID, "q1", 0, "B")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["correct"])
	assert.Equal(t, false, body["canProgress"])

	w, body = verify(t, handler, sessionID, "q1", 0, "A")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["correct"])
	assert.Equal(t, false, body["completed"])

	// The solved slot is now off-limits.
	w, _ = verify(t, handler, sessionID, "q1", 0, "A")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = verify(t, handler, sessionID, "q2", 1, " PARIS ")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["correct"])

	w, body = verify(t, handler, sessionID, "q3", 2, "token-9")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["correct"])
	assert.Equal(t, true, body["completed"])
}

func TestVerifyRejectsMissingFields(t *testing.T) {
	handler, _ := newTestHandler(t)
	sessionID := startHunt(t, handler)

	w, _ := doJSON(t, handler, http.MethodPost, "/api/game/verify", map[string]any{
		"sessionId":  sessionID,
		"questionId": "q1",
		"answer":     "A",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyMismatchedRef(t *testing.T) {
	handler, _ := newTestHandler(t)
	sessionID := startHunt(t, handler)

	// Naming a challenge other than the current slot's is not-found,
	// never a verification against foreign data.
	w, _ := verify(t, handler, sessionID, "q2", 0, "Paris")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAlternateSwapsChoiceChallenge(t *testing.T) {
	handler, _ := newTestHandler(t)
	sessionID := startHunt(t, handler)

	w, body := doJSON(t, handler, http.MethodPost, "/api/game/alternate/q1", map[string]any{
		"sessionId":     sessionID,
		"questionIndex": 0,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	question := body["question"].(map[string]any)
	assert.Equal(t, "alt1", question["ref"])
	assert.Equal(t, "fib", question["type"])

	// The swap is in effect: the old answer no longer verifies.
	w, _ = verify(t, handler, sessionID, "q1", 0, "A")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, result := verify(t, handler, sessionID, "alt1", 0, "green")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, result["correct"])
}

func TestAlternatePoolExhaustion(t *testing.T) {
	handler, _ := newTestHandler(t)
	sessionID := startHunt(t, handler)

	w, _ := doJSON(t, handler, http.MethodPost, "/api/game/alternate/q1", map[string]any{
		"sessionId":     sessionID,
		"questionIndex": 0,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// alt1 was the only spare; the next request finds nothing and the
	// session keeps its current challenge.
	w, _ = doJSON(t, handler, http.MethodPost, "/api/game/alternate/alt1", map[string]any{
		"sessionId":     sessionID,
		"questionIndex": 0,
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, result := verify(t, handler, sessionID, "alt1", 0, "green")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, result["correct"])
}

func TestResumeReportsProgress(t *testing.T) {
	handler, _ := newTestHandler(t)
	sessionID := startHunt(t, handler)

	_, _ = verify(t, handler, sessionID, "q1", 0, "A")

	w, body := doJSON(t, handler, http.MethodPost, "/api/game/resume",
		map[string]any{"sessionId": sessionID}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, body["totalQuestions"])
	assert.EqualValues(t, 1, body["currentIndex"])
	assert.EqualValues(t, 1, body["completed"])
	assert.Equal(t, false, body["gameCompleted"])
}

func TestLegacyAnswerAdvances(t *testing.T) {
	handler, _ := newTestHandler(t)
	sessionID := startHunt(t, handler)

	w, body := doJSON(t, handler, http.MethodPost, "/api/game/answer", map[string]any{
		"sessionId":  sessionID,
		"questionId": "q1",
		"answer":     "north",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["correct"])
	assert.Equal(t, false, body["done"])

	next := body["nextQuestion"].(map[string]any)
	assert.Equal(t, "q2", next["ref"])
	assert.NotContains(t, w.Body.String(), "answers")
}

func TestRegisterAndLogin(t *testing.T) {
	handler, _ := newTestHandler(t)

	w, body := doJSON(t, handler, http.MethodPost, "/api/register",
		map[string]any{"name": "Asha"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	key, _ := body["key"].(string)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z]+-[A-Z]+$`), key)

	// Same name, different case, still a conflict.
	w, _ = doJSON(t, handler, http.MethodPost, "/api/register",
		map[string]any{"name": "asha"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = doJSON(t, handler, http.MethodPost, "/api/login",
		map[string]any{"name": "Asha", "key": "WRONG-KEY"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body = doJSON(t, handler, http.MethodPost, "/api/login",
		map[string]any{"name": "ASHA", "key": key}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Asha", body["name"])
}

func TestLeaderboardFastestFirst(t *testing.T) {
	handler, _ := newTestHandler(t)

	for name, secs := range map[string]float64{"slow": 900, "fast": 120, "mid": 450} {
		w, _ := doJSON(t, handler, http.MethodPost, "/api/leaderboard/submit", map[string]any{
			"playerName":   name,
			"timeTakenSec": secs,
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "fast", rows[0]["playerName"])
	assert.Equal(t, "mid", rows[1]["playerName"])
	assert.Equal(t, "slow", rows[2]["playerName"])
}

func TestAdminRequiresToken(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stages", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/stages", nil)
	req.Header.Set("X-Admin-Token", testAdminToken)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRefusedWhenTokenUnconfigured(t *testing.T) {
	store := memory.NewStore()
	catalog := memory.NewCatalog()
	handler := NewHandler(Config{
		Engine:      game.NewEngine(store, catalog),
		Catalog:     catalog,
		Players:     memory.NewPlayers(),
		Leaderboard: memory.NewLeaderboard(),
		Sessions:    store,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stages", nil)
	req.Header.Set("X-Admin-Token", "anything")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAdminChallengeValidation(t *testing.T) {
	handler, _ := newTestHandler(t)
	headers := map[string]string{"X-Admin-Token": testAdminToken}

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"mcq without options", map[string]any{
			"code": "x1", "stageCode": "s1", "type": "mcq", "prompt": "p",
		}},
		{"mcq with bad correct id", map[string]any{
			"code": "x1", "stageCode": "s1", "type": "mcq", "prompt": "p",
			"options":         []map[string]string{{"id": "A", "text": "a"}, {"id": "B", "text": "b"}},
			"correctOptionId": "C",
		}},
		{"fib without answers", map[string]any{
			"code": "x2", "stageCode": "s1", "type": "fib", "prompt": "p",
		}},
		{"qr without code", map[string]any{
			"code": "x3", "stageCode": "s1", "type": "qr", "prompt": "p",
		}},
		{"photo without key", map[string]any{
			"code": "x4", "stageCode": "s1", "type": "photo", "prompt": "p",
		}},
		{"unknown type", map[string]any{
			"code": "x5", "stageCode": "s1", "type": "riddle", "prompt": "p",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := doJSON(t, handler, http.MethodPost, "/api/admin/challenges", tc.payload, headers)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAdminChallengeRoundTrip(t *testing.T) {
	handler, catalog := newTestHandler(t)
	headers := map[string]string{"X-Admin-Token": testAdminToken}

	w, body := doJSON(t, handler, http.MethodPost, "/api/admin/challenges", map[string]any{
		"code": "q9", "stageCode": "s1", "type": "fib", "prompt": "Count the steps",
		"answers": []string{"42"},
	}, headers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "q9", body["ref"])

	saved, err := catalog.LookupByRef(context.Background(), "q9")
	require.NoError(t, err)
	assert.Equal(t, domain.TypeFIB, saved.Type)
	assert.Equal(t, []string{"42"}, saved.FIB.Answers)

	w, _ = doJSON(t, handler, http.MethodDelete, "/api/admin/challenges/q9", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)

	_, err = catalog.LookupByRef(context.Background(), "q9")
	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
}

func TestHealthReportsActiveSessions(t *testing.T) {
	handler, _ := newTestHandler(t)
	startHunt(t, handler)
	startHunt(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.EqualValues(t, 2, body["activeSessions"])
}

func TestMetricsExposed(t *testing.T) {
	handler, _ := newTestHandler(t)
	sessionID := startHunt(t, handler)
	_, _ = verify(t, handler, sessionID, "q1", 0, "A")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	metrics := w.Body.String()
	assert.Contains(t, metrics, "hunt_sessions_started_total 1")
	assert.Contains(t, metrics, `hunt_verifications_total{outcome="correct"} 1`)
}

func TestCORSAllowList(t *testing.T) {
	store := memory.NewStore()
	catalog := memory.NewCatalog()
	handler := NewHandler(Config{
		Engine:         game.NewEngine(store, catalog),
		Catalog:        catalog,
		Players:        memory.NewPlayers(),
		Leaderboard:    memory.NewLeaderboard(),
		Sessions:       store,
		AllowedOrigins: []string{"https://hunt.example"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/game/start", nil)
	req.Header.Set("Origin", "https://hunt.example")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://hunt.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/game/start", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	handler, _ := newTestHandler(t)

	w, body := doJSON(t, handler, http.MethodPost, "/api/game/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", body["error"])
}
