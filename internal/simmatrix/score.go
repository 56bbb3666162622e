package simmatrix

import (
	"sentcluster/internal/stemming"
)

// Scorer computes the lexical overlap score between two token lists.
type Scorer struct {
	// Stemmer maps tokens to stems before comparison. Nil means identity.
	Stemmer stemming.Stemmer
	// IgnoreStopWords drops English stop words from both sides before scoring.
	IgnoreStopWords bool
}

// Score returns the overlap of b against the reference tokens a.
//
// The universe starts at len(a). Every distinct stem of b that appears among
// the stems of a counts as common; every other distinct stem of b widens the
// universe by one. Repeated stems in b are counted once, which keeps the
// result in [0,1] when two words of b share a stem. The result is
// common/universe, or 1 when both sides are empty. The formula is not
// symmetric in a and b when a repeats a stem.
func (s Scorer) Score(a, b []string) float64 {
	return scoreStems(s.stems(a), s.stems(b))
}

// stems filters and stems tokens in order. Duplicate stems are kept so the
// universe still counts every surviving token.
func (s Scorer) stems(tokens []string) []string {
	stemmer := s.Stemmer
	if stemmer == nil {
		stemmer = stemming.Identity
	}
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if s.IgnoreStopWords && stemming.IsStopWord(token) {
			continue
		}
		out = append(out, stemmer.Stem(token))
	}
	return out
}

func scoreStems(a, b []string) float64 {
	total := len(a)
	common := 0
	seen := make(map[string]struct{}, len(b))
	for _, stemB := range b {
		if _, dup := seen[stemB]; dup {
			continue
		}
		seen[stemB] = struct{}{}
		found := false
		for _, stemA := range a {
			if stemA == stemB {
				found = true
				break
			}
		}
		if found {
			common++
		} else {
			total++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(common) / float64(total)
}
