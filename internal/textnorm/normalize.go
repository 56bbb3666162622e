package textnorm

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Order selects how surviving tokens are arranged inside a signature.
type Order int

const (
	// OrderFirstSeen keeps tokens in the order they first appear.
	OrderFirstSeen Order = iota
	// OrderSorted arranges tokens lexicographically.
	OrderSorted
)

// String returns the config spelling of the order.
func (o Order) String() string {
	switch o {
	case OrderSorted:
		return "sorted"
	default:
		return "first_seen"
	}
}

// ParseOrder maps a config value to an Order. Empty input selects OrderFirstSeen.
func ParseOrder(value string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "first_seen", "first-seen":
		return OrderFirstSeen, nil
	case "sorted", "lexicographic":
		return OrderSorted, nil
	default:
		return OrderFirstSeen, fmt.Errorf("token order: unsupported value %q", value)
	}
}

// Normalizer converts raw sentences into signatures. The zero value uses
// first-seen token order.
type Normalizer struct {
	Order Order
}

// Normalize returns the signature of raw using first-seen token order.
func Normalize(raw string) string {
	return Normalizer{}.Normalize(raw)
}

// Normalize returns the signature of raw. Empty input yields "".
func (n Normalizer) Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	cleaned, _, err := transform.String(newCleaner(), raw)
	if err != nil {
		// The chain only removes runes; fall back to the untransformed text.
		cleaned = raw
	}
	cleaned = cases.Lower(language.Und).String(cleaned)

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		tokens = append(tokens, field)
	}
	if n.Order == OrderSorted {
		slices.Sort(tokens)
	}
	return strings.Join(tokens, " ")
}

// Tokens splits a signature back into its tokens.
func Tokens(signature string) []string {
	return strings.Fields(signature)
}

// newCleaner builds the rune pipeline: NFKC folding first so full-width and
// compatibility punctuation is recognised, then punctuation removal.
// Transformers carry state, so each call gets its own chain.
func newCleaner() transform.Transformer {
	return transform.Chain(norm.NFKC, runes.Remove(runes.Predicate(isPunctuation)))
}

// isPunctuation matches Unicode punctuation plus the ASCII symbols that the
// POSIX punct class includes ($ + < = > ^ ` | ~).
func isPunctuation(r rune) bool {
	if unicode.IsPunct(r) {
		return true
	}
	return r < unicode.MaxASCII && unicode.IsSymbol(r)
}
