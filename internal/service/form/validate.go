package form

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonDigits    = regexp.MustCompile(`[^\d]`)
	digitsOnly   = regexp.MustCompile(`^\d+$`)
)

func validNombre(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= 5
}

// validCedula accepts Ecuadorian cédulas (10 digits) and RUCs (13 digits).
func validCedula(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !digitsOnly.MatchString(trimmed) {
		return false
	}
	return len(trimmed) == 10 || len(trimmed) == 13
}

func validCorreo(text string) bool {
	return emailPattern.MatchString(strings.TrimSpace(text))
}

// normalizePhone strips every non-digit character.
func normalizePhone(text string) string {
	return nonDigits.ReplaceAllString(strings.TrimSpace(text), "")
}

// validTelefono accepts Ecuadorian mobile/landline numbers, either local
// ("09…") or with the country code ("593…").
func validTelefono(text string) bool {
	digits := normalizePhone(text)
	if len(digits) < 9 {
		return false
	}
	return strings.HasPrefix(digits, "09") || strings.HasPrefix(digits, "593")
}

func validDireccion(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= 10
}

// isNoAnswer reports whether text is the "not applicable" sentinel accepted
// by the optional steps.
func isNoAnswer(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), "NO")
}
