package notation

import (
	"fmt"
	"strings"
)

// GrammarError reports a malformed pitch token, chord definition or list.
type GrammarError struct {
	Option string
	Input  string
	Reason string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("invalid --%s %q: %s", e.Option, e.Input, e.Reason)
}

// RangeError reports a value outside its documented bounds.
type RangeError struct {
	Option string
	Value  int
	Min    int
	Max    int
	// Subject describes what was counted or measured when it isn't the option value itself,
	// e.g. "octave" or "pitches per chord".
	Subject string
}

func (e *RangeError) Error() string {
	subject := "value"
	if e.Subject != "" {
		subject = e.Subject
	}
	return fmt.Sprintf("invalid --%s: %s %d is outside the range [%d, %d]", e.Option, subject, e.Value, e.Min, e.Max)
}

// CombinationError reports options that violate an exclusivity or co-requirement rule.
type CombinationError struct {
	Options []string
	Rule    string
}

func (e *CombinationError) Error() string {
	flags := make([]string, len(e.Options))
	for i, o := range e.Options {
		flags[i] = "--" + o
	}
	return fmt.Sprintf("invalid combination of %s: %s", strings.Join(flags, ", "), e.Rule)
}

func grammarErr(option, input, format string, args ...interface{}) error {
	return &GrammarError{Option: option, Input: input, Reason: fmt.Sprintf(format, args...)}
}
