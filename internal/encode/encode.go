// Package encode converts snapshot field values into table cell text.
//
// Cells are joined with a tab and rows end with a newline. Free text is
// written verbatim: an embedded tab or newline breaks the row boundary, and
// HasDelimiter lets callers detect that case.
package encode

import (
	"strconv"
	"strings"

	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

// Null is the cell written for an absent value. It is the NULL marker of
// PostgreSQL's text COPY format and never appears in real data.
const Null = `\N`

// Delimiters between cells and rows.
const (
	CellSep = "\t"
	RowSep  = "\n"
)

// Token is satisfied by the closed enumerations in pkg/types.
type Token interface {
	Token() (string, error)
}

// Bool encodes b as "1" or "0".
func Bool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Money encodes milliunits as signed base-10 text.
func Money(m types.Milliunits) string {
	return strconv.FormatInt(int64(m), 10)
}

// Text encodes s verbatim.
func Text(s string) string {
	return s
}

// PayeeName encodes a payee name with surrounding whitespace trimmed.
func PayeeName(s string) string {
	return strings.TrimSpace(s)
}

// Optional encodes s, or Null when s is absent.
func Optional(s *string) string {
	if s == nil {
		return Null
	}
	return *s
}

// Enum encodes a known variant as its token. An unknown variant is an error.
func Enum(e Token) (string, error) {
	return e.Token()
}

// OptionalEnum encodes e, or Null when e is absent.
func OptionalEnum[E Token](e *E) (string, error) {
	if e == nil {
		return Null, nil
	}
	return (*e).Token()
}

// HasDelimiter reports whether s contains a character that would split a
// cell or a row.
func HasDelimiter(s string) bool {
	return strings.ContainsAny(s, "\t\r\n")
}

// Join renders cells as one terminated row.
func Join(cells []string) string {
	return strings.Join(cells, CellSep) + RowSep
}
