package validation

import (
	"regexp"
	"sync"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Roll number pattern - exactly 10 alphanumeric characters
	RollNumberPattern = `^[a-zA-Z0-9]{10}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	RollNumber *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	RollNumber: regexp.MustCompile(RollNumberPattern),
}

// IsValidEmail reports whether the value looks like an email address
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidRollNumber reports whether the value is a 10-character
// alphanumeric roll number
func IsValidRollNumber(value string) bool {
	return CompiledPatterns.RollNumber.MatchString(value)
}

var (
	compiledMu sync.RWMutex
	compiled   = map[string]*regexp.Regexp{
		EmailPattern:      CompiledPatterns.Email,
		RollNumberPattern: CompiledPatterns.RollNumber,
	}
)

// MatchesPattern reports whether value matches pattern. Rule patterns use
// their precompiled form; anything else is compiled once and cached so
// submission validation does not recompile per request. An invalid
// pattern never matches.
func MatchesPattern(pattern, value string) bool {
	compiledMu.RLock()
	re, ok := compiled[pattern]
	compiledMu.RUnlock()
	if !ok {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return false
		}
		compiledMu.Lock()
		compiled[pattern] = re
		compiledMu.Unlock()
	}
	return re.MatchString(value)
}
