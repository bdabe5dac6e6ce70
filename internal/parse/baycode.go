package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var bayCodeRe = regexp.MustCompile(`(?i)^([A-Z]+)\s*-?\s*(\d+)$`)

// ParsedBayCode holds the structured data parsed from a bay's display code.
type ParsedBayCode struct {
	Section string
	Number  int
}

// ParseBayCode extracts the section letter(s) and bay number from a raw
// bay code such as "A07", "b-12", or "E 3". The section is normalized to
// upper case; leading zeros in the number are dropped.
func ParseBayCode(raw string) (ParsedBayCode, error) {
	s := strings.TrimSpace(raw)
	m := bayCodeRe.FindStringSubmatch(s)
	if m == nil {
		return ParsedBayCode{}, fmt.Errorf("unable to parse bay code: %q", raw)
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return ParsedBayCode{}, fmt.Errorf("unable to parse bay number from %q: %w", raw, err)
	}
	return ParsedBayCode{Section: strings.ToUpper(m[1]), Number: n}, nil
}
