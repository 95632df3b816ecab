package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Kavithma17/Treasure-Hunt/internal/keygen"
	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

type registerRequest struct {
	Name string `json:"name"`
}

// handleRegister creates a player with a generated two-word key. The
// key is shown here and on login, nowhere else.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	key, err := keygen.TwoWordKey(r.Context(), s.players.KeyTaken)
	if err != nil {
		s.logger.Error("register: key generation failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	player := &domain.Player{Name: name, Key: key, CreatedAt: s.clock.Now()}
	if err := s.players.CreatePlayer(r.Context(), player); err != nil {
		respondError(w, err)
		return
	}
	s.metrics.PlayersRegistered.Inc()

	writeJSON(w, http.StatusOK, map[string]string{
		"name": player.Name,
		"key":  player.Key,
	})
}

type loginRequest struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Key == "" {
		writeError(w, http.StatusBadRequest, "Name and key are required")
		return
	}

	player, err := s.players.FindPlayer(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		respondError(w, err)
		return
	}
	if player.Key != strings.TrimSpace(req.Key) {
		writeError(w, http.StatusUnauthorized, "Invalid name or key")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"name": player.Name,
		"key":  player.Key,
	})
}

type submitScoreRequest struct {
	PlayerName   string   `json:"playerName"`
	TimeTakenSec *float64 `json:"timeTakenSec"`
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req submitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerName == "" || req.TimeTakenSec == nil {
		writeError(w, http.StatusBadRequest, "Missing playerName or timeTakenSec")
		return
	}
	if *req.TimeTakenSec < 0 {
		writeError(w, http.StatusBadRequest, "Invalid timeTakenSec")
		return
	}

	entry := domain.ScoreEntry{
		PlayerName: req.PlayerName,
		TimeTaken:  time.Duration(*req.TimeTakenSec * float64(time.Second)),
		FinishedAt: s.clock.Now(),
	}
	if err := s.leaderboard.SubmitScore(r.Context(), entry); err != nil {
		s.logger.Error("leaderboard: submit failed", "err", err)
		respondError(w, err)
		return
	}
	s.metrics.ScoresSubmitted.Inc()

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Time saved",
		"entry":   scoreRow(entry),
	})
}

// leaderboardLimit caps the public board at the fastest finishers.
const leaderboardLimit = 20

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.leaderboard.TopScores(r.Context(), leaderboardLimit)
	if err != nil {
		s.logger.Error("leaderboard: fetch failed", "err", err)
		respondError(w, err)
		return
	}

	rows := make([]map[string]any, len(entries))
	for i, entry := range entries {
		rows[i] = scoreRow(entry)
	}
	writeJSON(w, http.StatusOK, rows)
}

func scoreRow(entry domain.ScoreEntry) map[string]any {
	return map[string]any{
		"playerName":   entry.PlayerName,
		"timeTakenSec": entry.TimeTaken.Seconds(),
		"createdAt":    entry.FinishedAt,
	}
}
