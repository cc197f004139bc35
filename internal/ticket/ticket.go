// Package ticket derives canonical order ticket codes ("tillo") from a
// user-supplied fragment and the current calendar year.
package ticket

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const invalidSuffix = "_INVALID"

var nonDigits = regexp.MustCompile(`[^0-9]`)

// Generate strips every non-digit character from raw and returns
// "<year>_<digits>". When nothing is left after stripping it returns the
// "<year>_INVALID" sentinel instead of failing; callers must check with
// IsInvalid before persisting.
func Generate(raw string) string {
	return generateAt(raw, time.Now())
}

func generateAt(raw string, now time.Time) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return fmt.Sprintf("%d%s", now.Year(), invalidSuffix)
	}
	return fmt.Sprintf("%d_%s", now.Year(), digits)
}

// IsInvalid reports whether code is the sentinel returned for fragments
// without any digits.
func IsInvalid(code string) bool {
	return strings.HasSuffix(code, invalidSuffix)
}
