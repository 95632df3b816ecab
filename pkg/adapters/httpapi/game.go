package httpapi

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

// maxHuntStages caps how many stages a single hunt covers.
const maxHuntStages = 10

type startRequest struct {
	PlayerKey string `json:"playerKey"`
}

// handleStart selects one random active challenge per stage, stages
// ordered by code, and opens a session over the resulting slot list.
// The response carries the session ID and a count, never the
// challenges themselves.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if r.Body != nil {
		// The body is optional for anonymous runs.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	stages, err := s.catalog.ActiveStages(r.Context())
	if err != nil {
		s.logger.Error("start: list stages failed", "err", err)
		respondError(w, err)
		return
	}
	if len(stages) > maxHuntStages {
		stages = stages[:maxHuntStages]
	}

	var picked []*domain.Challenge
	for _, stage := range stages {
		candidates, err := s.catalog.ActiveByStage(r.Context(), stage.Code)
		if err != nil {
			s.logger.Error("start: list stage challenges failed", "stage", stage.Code, "err", err)
			respondError(w, err)
			return
		}
		if len(candidates) == 0 {
			continue
		}
		picked = append(picked, candidates[rand.Intn(len(candidates))])
	}

	if len(picked) == 0 {
		writeError(w, http.StatusInternalServerError, "No questions available")
		return
	}

	sort.Slice(picked, func(i, j int) bool { return picked[i].Code < picked[j].Code })

	slots := make([]string, len(picked))
	for i, c := range picked {
		slots[i] = c.Ref
	}

	session, err := s.engine.CreateSession(r.Context(), slots, req.PlayerKey)
	if err != nil {
		respondError(w, err)
		return
	}
	s.metrics.SessionsStarted.Inc()

	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId":      session.ID,
		"totalQuestions": len(session.Slots),
		"message":        "Game session started. Fetch questions one at a time.",
	})
}

type sessionRequest struct {
	SessionID string `json:"sessionId"`
}

// handleQuestion is the progressive reveal: only the session's current
// challenge is ever returned, and only in its safe projection.
func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "Invalid question index")
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID required")
		return
	}

	view, err := s.engine.RevealCurrent(r.Context(), req.SessionID, index)
	if err != nil {
		respondError(w, err)
		return
	}

	info, err := s.engine.ResumeInfo(r.Context(), req.SessionID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"question":       view,
		"sessionId":      req.SessionID,
		"totalQuestions": info.TotalSlots,
		"currentIndex":   index,
		"completed":      info.SolvedCount,
	})
}

type verifyRequest struct {
	SessionID     string `json:"sessionId"`
	QuestionID    string `json:"questionId"`
	QuestionIndex *int   `json:"questionIndex"`
	Answer        string `json:"answer"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
	domain.VerifyResult
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.SessionID == "" || req.QuestionID == "" || req.QuestionIndex == nil || req.Answer == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	result, err := s.engine.Verify(r.Context(), req.SessionID, req.QuestionID, *req.QuestionIndex, req.Answer)
	if err != nil {
		if errors.Is(err, domain.ErrIndexMismatch) || errors.Is(err, domain.ErrAlreadyAnswered) {
			s.metrics.Verifications.WithLabelValues(outcomeDenied).Inc()
		}
		respondError(w, err)
		return
	}

	if result.Correct {
		s.metrics.Verifications.WithLabelValues(outcomeCorrect).Inc()
	} else {
		s.metrics.Verifications.WithLabelValues(outcomeIncorrect).Inc()
	}

	writeJSON(w, http.StatusOK, verifyResponse{Valid: true, VerifyResult: result})
}

type alternateRequest struct {
	SessionID     string `json:"sessionId"`
	QuestionIndex *int   `json:"questionIndex"`
}

// handleAlternate swaps the current challenge for an unused alternate.
// The path names the challenge being swapped away; the engine decides
// whether a swap applies at all.
func (s *Server) handleAlternate(w http.ResponseWriter, r *http.Request) {
	challengeID := chi.URLParam(r, "challengeID")

	var req alternateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID required")
		return
	}
	if req.QuestionIndex == nil || *req.QuestionIndex < 0 {
		writeError(w, http.StatusBadRequest, "Invalid question index")
		return
	}
	if challengeID == "" {
		writeError(w, http.StatusBadRequest, "Invalid question ID")
		return
	}

	view, err := s.engine.Substitute(r.Context(), req.SessionID, *req.QuestionIndex)
	if err != nil {
		respondError(w, err)
		return
	}
	if view.Ref != challengeID {
		s.metrics.Substitutions.Inc()
	}

	writeJSON(w, http.StatusOK, map[string]any{"question": view})
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID required")
		return
	}

	info, err := s.engine.ResumeInfo(r.Context(), req.SessionID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId":      req.SessionID,
		"totalQuestions": info.TotalSlots,
		"currentIndex":   info.CurrentIndex,
		"completed":      info.SolvedCount,
		"gameCompleted":  info.Completed,
		"startTime":      info.StartedAt,
	})
}

type legacyAnswerRequest struct {
	SessionID  string `json:"sessionId"`
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

// handleLegacyAnswer is the old non-progressive submission path, kept
// for clients that predate the reveal flow. It does not enforce the
// hardened path's slot-match and replay checks.
func (s *Server) handleLegacyAnswer(w http.ResponseWriter, r *http.Request) {
	var req legacyAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	result, err := s.engine.LegacyAnswer(r.Context(), req.SessionID, req.QuestionID, req.Answer)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
