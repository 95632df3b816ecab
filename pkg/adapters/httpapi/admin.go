package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

type stagePayload struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Clue        string `json:"clue"`
	Compulsory  bool   `json:"compulsory"`
	Active      bool   `json:"active"`
}

func (s *Server) handleListStages(w http.ResponseWriter, r *http.Request) {
	stages, err := s.catalog.ListStages(r.Context())
	if err != nil {
		s.logger.Error("admin: list stages failed", "err", err)
		respondError(w, err)
		return
	}

	out := make([]stagePayload, len(stages))
	for i, stage := range stages {
		out[i] = stagePayload{
			Code:        stage.Code,
			Title:       stage.Title,
			Description: stage.Description,
			Clue:        stage.Clue,
			Compulsory:  stage.Compulsory,
			Active:      stage.Active,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSaveStage(w http.ResponseWriter, r *http.Request) {
	var req stagePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	req.Title = strings.TrimSpace(req.Title)
	if req.Code == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "code and title are required")
		return
	}

	stage := domain.Stage{
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		Clue:        req.Clue,
		Compulsory:  req.Compulsory,
		Active:      req.Active,
	}
	if err := s.catalog.SaveStage(r.Context(), stage); err != nil {
		s.logger.Error("admin: save stage failed", "code", stage.Code, "err", err)
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleDeleteStage(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := s.catalog.DeleteStage(r.Context(), code); err != nil {
		s.logger.Error("admin: delete stage failed", "code", code, "err", err)
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": 1})
}

// challengePayload is the admin wire shape for a full challenge record,
// secrets included. Only admin handlers speak it; play-time responses
// use SafeView.
type challengePayload struct {
	Ref       string          `json:"ref,omitempty"`
	Code      string          `json:"code"`
	StageCode string          `json:"stageCode"`
	Type      string          `json:"type"`
	Prompt    string          `json:"prompt"`
	Clue      string          `json:"clue,omitempty"`
	Active    *bool           `json:"active,omitempty"`
	Options   []domain.Option `json:"options,omitempty"`

	CorrectOptionID string   `json:"correctOptionId,omitempty"`
	Answers         []string `json:"answers,omitempty"`
	CaseSensitive   bool     `json:"caseSensitive,omitempty"`
	TrimInput       bool     `json:"trimInput,omitempty"`
	AcceptPartial   bool     `json:"acceptPartial,omitempty"`

	QRClue string `json:"qrClue,omitempty"`
	QRCode string `json:"qrCode,omitempty"`

	PhotoImageURL    string `json:"photoImageUrl,omitempty"`
	PhotoExpectedKey string `json:"photoExpectedKey,omitempty"`
}

func (p *challengePayload) toDomain() (*domain.Challenge, string) {
	typ := domain.ChallengeType(strings.TrimSpace(p.Type))
	c := &domain.Challenge{
		Ref:       strings.TrimSpace(p.Ref),
		Code:      strings.TrimSpace(p.Code),
		StageCode: strings.TrimSpace(p.StageCode),
		Type:      typ,
		Prompt:    strings.TrimSpace(p.Prompt),
		Clue:      p.Clue,
		Active:    true,
	}
	if p.Active != nil {
		c.Active = *p.Active
	}

	if c.Code == "" || c.StageCode == "" || c.Prompt == "" {
		return nil, "code, stageCode, type, and prompt are required"
	}
	if !typ.Valid() {
		return nil, "Invalid type"
	}

	switch typ {
	case domain.TypeMCQ:
		if len(p.Options) < 2 {
			return nil, "MCQ requires at least two options with id and text"
		}
		for _, opt := range p.Options {
			if opt.ID == "" || opt.Text == "" {
				return nil, "MCQ requires at least two options with id and text"
			}
		}
		valid := false
		for _, opt := range p.Options {
			if opt.ID == p.CorrectOptionID {
				valid = true
				break
			}
		}
		if !valid {
			return nil, "correctOptionId must match one of the options"
		}
		c.MCQ = &domain.MCQData{
			Options:         p.Options,
			CorrectOptionID: p.CorrectOptionID,
		}
	case domain.TypeFIB:
		if len(p.Answers) == 0 {
			return nil, "FIB requires at least one answer"
		}
		c.FIB = &domain.FIBData{
			Answers:       p.Answers,
			CaseSensitive: p.CaseSensitive,
			TrimInput:     p.TrimInput,
			AcceptPartial: p.AcceptPartial,
		}
	case domain.TypeQR:
		if strings.TrimSpace(p.QRCode) == "" {
			return nil, "QR question requires a code"
		}
		c.QR = &domain.QRData{Clue: p.QRClue, Code: p.QRCode}
	case domain.TypePhoto:
		if strings.TrimSpace(p.PhotoExpectedKey) == "" {
			return nil, "Photo question requires an expected key"
		}
		c.Photo = &domain.PhotoData{
			ImageURL:      p.PhotoImageURL,
			ExpectedKey:   p.PhotoExpectedKey,
			CaseSensitive: p.CaseSensitive,
			TrimInput:     p.TrimInput,
			AcceptPartial: p.AcceptPartial,
		}
	}
	return c, ""
}

func challengeToPayload(c *domain.Challenge) challengePayload {
	active := c.Active
	p := challengePayload{
		Ref:       c.Ref,
		Code:      c.Code,
		StageCode: c.StageCode,
		Type:      string(c.Type),
		Prompt:    c.Prompt,
		Clue:      c.Clue,
		Active:    &active,
	}
	switch {
	case c.MCQ != nil:
		p.Options = c.MCQ.Options
		p.CorrectOptionID = c.MCQ.CorrectOptionID
	case c.FIB != nil:
		p.Answers = c.FIB.Answers
		p.CaseSensitive = c.FIB.CaseSensitive
		p.TrimInput = c.FIB.TrimInput
		p.AcceptPartial = c.FIB.AcceptPartial
	case c.QR != nil:
		p.QRClue = c.QR.Clue
		p.QRCode = c.QR.Code
	case c.Photo != nil:
		p.PhotoImageURL = c.Photo.ImageURL
		p.PhotoExpectedKey = c.Photo.ExpectedKey
		p.CaseSensitive = c.Photo.CaseSensitive
		p.TrimInput = c.Photo.TrimInput
		p.AcceptPartial = c.Photo.AcceptPartial
	}
	return p
}

func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	stageCode := r.URL.Query().Get("stage")
	challenges, err := s.catalog.ListChallenges(r.Context(), stageCode)
	if err != nil {
		s.logger.Error("admin: list challenges failed", "err", err)
		respondError(w, err)
		return
	}

	out := make([]challengePayload, len(challenges))
	for i, c := range challenges {
		out[i] = challengeToPayload(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSaveChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	challenge, problem := req.toDomain()
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}

	if challenge.Ref == "" {
		challenge.Ref = challenge.Code
	}
	now := s.clock.Now()
	challenge.CreatedAt = now
	challenge.UpdatedAt = now
	if err := s.catalog.SaveChallenge(r.Context(), challenge); err != nil {
		s.logger.Error("admin: save challenge failed", "code", challenge.Code, "err", err)
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, challengeToPayload(challenge))
}

func (s *Server) handleDeleteChallenge(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := s.catalog.DeleteChallenge(r.Context(), code); err != nil {
		s.logger.Error("admin: delete challenge failed", "code", code, "err", err)
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": 1})
}
