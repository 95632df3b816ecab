package game

import (
	"strings"

	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

// normalize is the default submission normalization: trimmed and
// case-folded. MCQ and QR comparisons always use it.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeWith applies the conditional policy carried by FIB and photo
// records: trim unless disabled, case-fold unless case-sensitive.
func normalizeWith(s string, caseSensitive, trimInput bool) string {
	if trimInput {
		s = strings.TrimSpace(s)
	}
	if !caseSensitive {
		s = strings.ToLower(s)
	}
	return s
}

// CheckAnswer reports whether submitted matches the challenge's stored
// secret data. It is pure: no side effects, no session state. An
// unrecognized type or a missing secret block is false, never true.
func CheckAnswer(c *domain.Challenge, submitted string) bool {
	if c == nil {
		return false
	}
	switch c.Type {
	case domain.TypeMCQ:
		return checkMCQ(c.MCQ, submitted)
	case domain.TypeFIB:
		return checkFIB(c.FIB, submitted)
	case domain.TypeQR:
		return checkQR(c.QR, submitted)
	case domain.TypePhoto:
		return checkPhoto(c.Photo, submitted)
	}
	// Fail closed on unknown types.
	return false
}

// checkMCQ matches the submission against an option's id or display
// text, then requires that option to be the designated correct one.
func checkMCQ(data *domain.MCQData, submitted string) bool {
	if data == nil {
		return false
	}
	user := normalize(submitted)
	if user == "" {
		return false
	}
	for _, opt := range data.Options {
		if normalize(opt.ID) == user || normalize(opt.Text) == user {
			return normalize(opt.ID) == normalize(data.CorrectOptionID)
		}
	}
	return false
}

// checkFIB is set membership over the accepted answers, first match
// short-circuits. AcceptPartial is reserved; matching stays exact.
func checkFIB(data *domain.FIBData, submitted string) bool {
	if data == nil {
		return false
	}
	user := normalizeWith(submitted, data.CaseSensitive, data.TrimInput)
	for _, accepted := range data.Answers {
		if normalizeWith(accepted, data.CaseSensitive, data.TrimInput) == user {
			return true
		}
	}
	return false
}

// checkQR is exact equality against the stored code, trimmed and
// case-insensitive.
func checkQR(data *domain.QRData, submitted string) bool {
	if data == nil || data.Code == "" {
		return false
	}
	return normalize(submitted) == normalize(data.Code)
}

// checkPhoto is exact equality against the expected key under the
// record's own normalization flags.
func checkPhoto(data *domain.PhotoData, submitted string) bool {
	if data == nil || data.ExpectedKey == "" {
		return false
	}
	user := normalizeWith(submitted, data.CaseSensitive, data.TrimInput)
	return user == normalizeWith(data.ExpectedKey, data.CaseSensitive, data.TrimInput)
}
