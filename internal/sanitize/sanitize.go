package sanitize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// FormulaGuard is prepended to values that a spreadsheet would evaluate.
const FormulaGuard = "'"

var (
	controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	whitespace   = regexp.MustCompile(`\s+`)
	lineBreaks   = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

	validate = validator.New()
)

// Sanitizer repairs outgoing values. The zero value decodes invalid UTF-8 as
// Windows-1252.
type Sanitizer struct {
	fallback encoding.Encoding
}

// New returns a sanitizer that decodes non-UTF-8 input with the named
// charset (WHATWG labels such as "windows-1256" or "iso-8859-1").
func New(charset string) (*Sanitizer, error) {
	if strings.TrimSpace(charset) == "" {
		return &Sanitizer{}, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported fallback charset %q: %w", charset, err)
	}
	return &Sanitizer{fallback: enc}, nil
}

// Value coerces a value to clean UTF-8: invalid byte sequences are
// re-decoded from the fallback charset, ASCII control characters are
// removed and the result is trimmed.
func (s *Sanitizer) Value(value string) string {
	if value == "" {
		return ""
	}
	value = s.ToUTF8(value)
	value = controlChars.ReplaceAllString(value, "")
	return strings.TrimSpace(value)
}

// ToUTF8 returns value unchanged when it is valid UTF-8.
func (s *Sanitizer) ToUTF8(value string) string {
	if utf8.ValidString(value) {
		return value
	}
	enc := s.fallbackEncoding()
	decoded, err := enc.NewDecoder().String(value)
	if err != nil || !utf8.ValidString(decoded) {
		return strings.ToValidUTF8(value, "")
	}
	return decoded
}

func (s *Sanitizer) fallbackEncoding() encoding.Encoding {
	if s == nil || s.fallback == nil {
		return charmap.Windows1252
	}
	return s.fallback
}

// Email returns the trimmed address when it passes an email syntax check
// and "" otherwise.
func (s *Sanitizer) Email(value string) string {
	email := s.Value(value)
	if email == "" {
		return ""
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return ""
	}
	return email
}

// Flatten turns multi-line text into a single line with single spaces.
func Flatten(value string) string {
	value = lineBreaks.Replace(value)
	value = whitespace.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// IsFormula reports whether a spreadsheet would treat value as a formula or
// error literal.
func IsFormula(value string) bool {
	return strings.HasPrefix(value, "=") || strings.HasPrefix(value, "#")
}

// GuardFormula neutralizes values starting with "=" or "#".
func GuardFormula(value string) string {
	if IsFormula(value) {
		return FormulaGuard + value
	}
	return value
}
