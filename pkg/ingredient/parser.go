package ingredient

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Source names the inventory partition an ingredient line draws from.
type Source string

const (
	SourceReserved   Source = "marked"
	SourceUnreserved Source = "non-marked"
)

var (
	ErrEmptyLine       = errors.New("empty ingredient line")
	ErrMissingQuantity = errors.New("ingredient line has no quantity")
	ErrInvalidQuantity = errors.New("ingredient quantity must be a positive integer")
	ErrInvalidSource   = errors.New("source marker must be [marked] or [non-marked]")
)

// Line is one parsed ingredient: "<name> <quantity><unit?> [<marked|non-marked>]".
// A missing bracket defaults the source to marked; the default is surfaced via
// SourceDefaulted instead of being applied silently.
type Line struct {
	Name            string
	Quantity        int
	Unit            string
	Source          Source
	SourceDefaulted bool
}

// Parsed pairs a line with its parse error, so batch callers can report
// per-line outcomes instead of failing the whole list.
type Parsed struct {
	Index int
	Raw   string
	Line  Line
	Err   error
}

var quantityPattern = regexp.MustCompile(`^(\d+)([A-Za-z]*)$`)

// ParseLine parses a single serialized ingredient line.
func ParseLine(raw string) (Line, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Line{}, ErrEmptyLine
	}

	line := Line{Source: SourceReserved, SourceDefaulted: true}

	last := fields[len(fields)-1]
	if strings.HasPrefix(last, "[") || strings.HasSuffix(last, "]") {
		marker := strings.TrimSuffix(strings.TrimPrefix(last, "["), "]")
		switch Source(marker) {
		case SourceReserved, SourceUnreserved:
			line.Source = Source(marker)
			line.SourceDefaulted = false
		default:
			return Line{}, fmt.Errorf("%w: %q", ErrInvalidSource, last)
		}
		fields = fields[:len(fields)-1]
	}

	if len(fields) < 2 {
		return Line{}, ErrMissingQuantity
	}

	match := quantityPattern.FindStringSubmatch(fields[len(fields)-1])
	if match == nil {
		return Line{}, fmt.Errorf("%w: %q", ErrMissingQuantity, fields[len(fields)-1])
	}

	quantity, err := strconv.Atoi(match[1])
	if err != nil || quantity <= 0 {
		return Line{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, match[1])
	}

	line.Quantity = quantity
	line.Unit = match[2]
	line.Name = strings.Join(fields[:len(fields)-1], " ")
	return line, nil
}

// ParseList splits a serialized ingredient list into lines and parses each
// one. Blank lines are dropped; malformed lines are kept with their error so
// the caller can report them.
func ParseList(serialized string) []Parsed {
	var parsed []Parsed
	for i, raw := range strings.Split(serialized, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		line, err := ParseLine(raw)
		parsed = append(parsed, Parsed{Index: i, Raw: raw, Line: line, Err: err})
	}
	return parsed
}

// FormatLine renders a line back to its serialized form.
func FormatLine(l Line) string {
	return fmt.Sprintf("%s %d%s [%s]", l.Name, l.Quantity, l.Unit, l.Source)
}
