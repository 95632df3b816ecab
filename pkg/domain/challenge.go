package domain

import "time"

// ChallengeType is the closed set of supported challenge kinds.
// Dispatch over this tag is the only branching the comparators do;
// each variant carries its own secret block so one type's fields can
// never leak into another type's comparison.
type ChallengeType string

const (
	TypeMCQ   ChallengeType = "mcq"   // multiple choice
	TypeFIB   ChallengeType = "fib"   // fill in the blank
	TypeQR    ChallengeType = "qr"    // code/token scan
	TypePhoto ChallengeType = "photo" // photo task with an expected key
)

// Valid reports whether t is one of the known challenge types.
func (t ChallengeType) Valid() bool {
	switch t {
	case TypeMCQ, TypeFIB, TypeQR, TypePhoto:
		return true
	}
	return false
}

// Option is a single MCQ choice. The correct option is identified only
// by Challenge.MCQ.CorrectOptionID, never marked on the option itself.
type Option struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// MCQData holds the secret matching data for a choice challenge.
type MCQData struct {
	Options         []Option `yaml:"options"`
	CorrectOptionID string   `yaml:"correctOptionId"`
}

// FIBData holds the accepted answers for a fill-in-the-blank challenge.
// AcceptPartial is reserved for an explicit substring mode; the default
// comparator is exact post-normalization equality.
type FIBData struct {
	Answers       []string `yaml:"answers"`
	CaseSensitive bool     `yaml:"caseSensitive"`
	TrimInput     bool     `yaml:"trimInput"`
	AcceptPartial bool     `yaml:"acceptPartial"`
}

// QRData holds the expected code for a scan challenge.
type QRData struct {
	Clue string `yaml:"clue"`
	Code string `yaml:"code"`
}

// PhotoData holds the expected key for a photo task.
type PhotoData struct {
	ImageURL      string `yaml:"imageUrl"`
	ExpectedKey   string `yaml:"expectedKey"`
	CaseSensitive bool   `yaml:"caseSensitive"`
	TrimInput     bool   `yaml:"trimInput"`
	AcceptPartial bool   `yaml:"acceptPartial"`
}

// Challenge is the full challenge record, secrets included. It never
// crosses the trust boundary to a client; callers receive a SafeView
// instead. Only the block matching Type is populated.
type Challenge struct {
	Ref       string
	Code      string
	StageCode string
	Type      ChallengeType
	Prompt    string
	Clue      string
	Active    bool

	MCQ   *MCQData
	FIB   *FIBData
	QR    *QRData
	Photo *PhotoData

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stage groups challenges into the hunt's ordered outline. One challenge
// per active stage is selected when a hunt starts.
type Stage struct {
	Code        string
	Title       string
	Description string
	Clue        string
	Compulsory  bool
	Active      bool
}
