package card

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// idPattern is the card-identifier grammar: a set code ("ex", "prm" or
// a single letter A-R), a kind letter, and a number 1-50 with no
// leading zero.
var idPattern = regexp.MustCompile(`^(ex|prm|[A-R])([ASMD])-([1-9]|[1-4][0-9]|50)$`)

// Card represents one card reference decoded from a deck code
type Card struct {
	ID     string // Canonical ID (e.g., AA-11, exM-3, prmD-50)
	Set    string // Card set code (ex, prm, or a single letter A-R)
	Kind   string // Card kind letter (A, S, M or D)
	Number int    // Card number within the set (1-50)
}

// Parse parses a canonical card identifier
func Parse(id string) (*Card, error) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return nil, fmt.Errorf("invalid card ID format: %s", id)
	}
	number, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, fmt.Errorf("invalid card number in %s: %v", id, err)
	}
	return &Card{ID: id, Set: m[1], Kind: m[2], Number: number}, nil
}

// Valid reports whether id conforms to the identifier grammar.
func Valid(id string) bool {
	return idPattern.MatchString(id)
}

// Entry is one distinct card together with how many copies appear.
type Entry struct {
	Card  *Card
	Count int
}

// Tally folds an ordered identifier list into ordered distinct entries
// with counts. Identifiers that fail the grammar are filtered out;
// order follows each card's first appearance.
func Tally(ids []string) []Entry {
	var entries []Entry
	index := make(map[string]int)
	for _, id := range ids {
		if at, ok := index[id]; ok {
			entries[at].Count++
			continue
		}
		c, err := Parse(id)
		if err != nil {
			continue
		}
		index[id] = len(entries)
		entries = append(entries, Entry{Card: c, Count: 1})
	}
	return entries
}

// Summary renders a short human-readable tally, e.g. "AA-11 x3, BA-12 x2".
func Summary(entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s x%d", e.Card.ID, e.Count))
	}
	return strings.Join(parts, ", ")
}
