package validate

import (
	"time"
	"unicode"
)

// DateLayout is the only accepted date shape (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Func reports whether a trimmed input token has the expected shape.
type Func func(string) bool

// Kind names one of the built-in validators so field tables can stay data.
type Kind int

const (
	KindInteger Kind = iota + 1
	KindAlphanumeric
	KindDate
	// KindDigits checks like KindInteger but marks a value that stays text,
	// such as a phone number with a leading zero.
	KindDigits
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindAlphanumeric:
		return "alphanumeric"
	case KindDate:
		return "date"
	case KindDigits:
		return "digits"
	default:
		return "unknown"
	}
}

// Func returns the predicate for k. Unknown kinds reject every token.
func (k Kind) Func() Func {
	switch k {
	case KindInteger, KindDigits:
		return Integer
	case KindAlphanumeric:
		return Alphanumeric
	case KindDate:
		return Date
	default:
		return func(string) bool { return false }
	}
}

// Integer accepts a non-empty run of ASCII decimal digits. Signs are rejected.
func Integer(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Alphanumeric accepts a non-empty token made only of letters and digits.
// Spaces and punctuation are rejected, so "John Smith" does not pass.
func Alphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Date accepts a real calendar date in YYYY-MM-DD form.
func Date(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
