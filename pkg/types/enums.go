package types

import "fmt"

// ClearedState is the reconciliation state of a transaction.
type ClearedState int

// Cleared states. The zero value is not a valid state.
const (
	Cleared ClearedState = iota + 1
	Uncleared
	Reconciled
)

// ClearedStates lists every known cleared state.
var ClearedStates = []ClearedState{Cleared, Uncleared, Reconciled}

// Token returns the canonical text of the state.
func (c ClearedState) Token() (string, error) {
	switch c {
	case Cleared:
		return "cleared", nil
	case Uncleared:
		return "uncleared", nil
	case Reconciled:
		return "reconciled", nil
	}
	return "", fmt.Errorf("cleared state %d: %w", int(c), ErrUnknownVariant)
}

func (c ClearedState) String() string {
	return tokenOrPlaceholder(c.Token())
}

// MarshalText implements encoding.TextMarshaler.
func (c ClearedState) MarshalText() ([]byte, error) {
	tok, err := c.Token()
	return []byte(tok), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ClearedState) UnmarshalText(text []byte) error {
	v, err := parseToken("cleared state", string(text), ClearedStates)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// FlagColor is the colored flag a user may attach to a transaction.
type FlagColor int

// Flag colors. The zero value is not a valid color.
const (
	FlagRed FlagColor = iota + 1
	FlagOrange
	FlagYellow
	FlagGreen
	FlagBlue
	FlagPurple
)

// FlagColors lists every known flag color.
var FlagColors = []FlagColor{FlagRed, FlagOrange, FlagYellow, FlagGreen, FlagBlue, FlagPurple}

// Token returns the canonical text of the color.
func (f FlagColor) Token() (string, error) {
	switch f {
	case FlagRed:
		return "red", nil
	case FlagOrange:
		return "orange", nil
	case FlagYellow:
		return "yellow", nil
	case FlagGreen:
		return "green", nil
	case FlagBlue:
		return "blue", nil
	case FlagPurple:
		return "purple", nil
	}
	return "", fmt.Errorf("flag color %d: %w", int(f), ErrUnknownVariant)
}

func (f FlagColor) String() string {
	return tokenOrPlaceholder(f.Token())
}

// MarshalText implements encoding.TextMarshaler.
func (f FlagColor) MarshalText() ([]byte, error) {
	tok, err := f.Token()
	return []byte(tok), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FlagColor) UnmarshalText(text []byte) error {
	v, err := parseToken("flag color", string(text), FlagColors)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Frequency is the recurrence of a scheduled transaction.
type Frequency int

// Frequencies. The zero value is not a valid frequency.
const (
	Never Frequency = iota + 1
	Daily
	Weekly
	EveryOtherWeek
	TwiceAMonth
	Every4Weeks
	Monthly
	EveryOtherMonth
	Every3Months
	Every4Months
	TwiceAYear
	Yearly
	EveryOtherYear
)

// Frequencies lists every known frequency.
var Frequencies = []Frequency{
	Never, Daily, Weekly, EveryOtherWeek, TwiceAMonth, Every4Weeks, Monthly,
	EveryOtherMonth, Every3Months, Every4Months, TwiceAYear, Yearly, EveryOtherYear,
}

// Token returns the canonical text of the frequency.
func (f Frequency) Token() (string, error) {
	switch f {
	case Never:
		return "never", nil
	case Daily:
		return "daily", nil
	case Weekly:
		return "weekly", nil
	case EveryOtherWeek:
		return "everyOtherWeek", nil
	case TwiceAMonth:
		return "twiceAMonth", nil
	case Every4Weeks:
		return "every4Weeks", nil
	case Monthly:
		return "monthly", nil
	case EveryOtherMonth:
		return "everyOtherMonth", nil
	case Every3Months:
		return "every3Months", nil
	case Every4Months:
		return "every4Months", nil
	case TwiceAYear:
		return "twiceAYear", nil
	case Yearly:
		return "yearly", nil
	case EveryOtherYear:
		return "everyOtherYear", nil
	}
	return "", fmt.Errorf("frequency %d: %w", int(f), ErrUnknownVariant)
}

func (f Frequency) String() string {
	return tokenOrPlaceholder(f.Token())
}

// MarshalText implements encoding.TextMarshaler.
func (f Frequency) MarshalText() ([]byte, error) {
	tok, err := f.Token()
	return []byte(tok), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Frequency) UnmarshalText(text []byte) error {
	v, err := parseToken("frequency", string(text), Frequencies)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// tokener is satisfied by every enumeration in this package.
type tokener interface {
	comparable
	Token() (string, error)
}

// parseToken finds the variant whose token equals text.
func parseToken[E tokener](kind, text string, variants []E) (E, error) {
	for _, v := range variants {
		if tok, _ := v.Token(); tok == text {
			return v, nil
		}
	}
	var zero E
	return zero, fmt.Errorf("%s %q: %w", kind, text, ErrUnknownVariant)
}

func tokenOrPlaceholder(tok string, err error) string {
	if err != nil {
		return "<invalid>"
	}
	return tok
}
