package domain

// SafePhoto is the client-visible slice of a photo challenge. The
// expected key never appears here.
type SafePhoto struct {
	ImageURL string `json:"imageUrl"`
}

// SafeView is the answer-stripped projection of a challenge, the only
// challenge shape that ever crosses to a client. It carries presentation
// fields and the slot's 1-based display position; every answer-bearing
// field (correct option id, accepted answers, expected keys, match flags)
// is deliberately absent from the type itself, so a handler cannot leak
// what the type cannot hold.
type SafeView struct {
	Ref       string        `json:"ref"`
	Code      string        `json:"code"`
	StageCode string        `json:"stageCode,omitempty"`
	Type      ChallengeType `json:"type"`
	Prompt    string        `json:"prompt"`
	Clue      string        `json:"clue,omitempty"`
	Options   []Option      `json:"options,omitempty"`
	Photo     *SafePhoto    `json:"photo,omitempty"`
	Position  int           `json:"position"`
}

// SafeProject builds the SafeView for c at 1-based display position.
func SafeProject(c *Challenge, position int) SafeView {
	v := SafeView{
		Ref:       c.Ref,
		Code:      c.Code,
		StageCode: c.StageCode,
		Type:      c.Type,
		Prompt:    c.Prompt,
		Clue:      c.Clue,
		Position:  position,
	}
	if c.Type == TypeMCQ && c.MCQ != nil {
		// Options without any correctness marker.
		v.Options = append([]Option(nil), c.MCQ.Options...)
	}
	if c.Type == TypePhoto && c.Photo != nil {
		v.Photo = &SafePhoto{ImageURL: c.Photo.ImageURL}
	}
	return v
}
