// Package stemming provides the word-stemming capability used by similarity
// scoring. Scoring only needs a total, deterministic token -> stem function,
// so everything here satisfies the single-method Stemmer interface.
package stemming

import (
	"fmt"
	"strings"
	"sync"

	"github.com/kljensen/snowball"
	"github.com/kljensen/snowball/english"
	"github.com/surgebase/porter2"
)

// Stemmer reduces a token to its stem. Implementations must be total and
// deterministic.
type Stemmer interface {
	Stem(token string) string
}

// Func adapts a plain function to the Stemmer interface.
type Func func(token string) string

// Stem implements Stemmer.
func (f Func) Stem(token string) string { return f(token) }

// Identity returns tokens unchanged.
var Identity Stemmer = Func(func(token string) string { return token })

// Names accepted by ByName.
const (
	NameSnowball = "snowball"
	NamePorter2  = "porter2"
	NameIdentity = "identity"
)

var snowballLanguages = map[string]struct{}{
	"english":   {},
	"spanish":   {},
	"french":    {},
	"russian":   {},
	"swedish":   {},
	"norwegian": {},
	"hungarian": {},
}

type snowballStemmer struct {
	language string
}

// Snowball returns a stemmer backed by the Snowball algorithm for language.
// Stop words are stemmed like any other token.
func Snowball(language string) (Stemmer, error) {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		lang = "english"
	}
	if _, ok := snowballLanguages[lang]; !ok {
		return nil, fmt.Errorf("snowball stemmer: unsupported language %q", language)
	}
	return snowballStemmer{language: lang}, nil
}

func (s snowballStemmer) Stem(token string) string {
	stemmed, err := snowball.Stem(token, s.language, true)
	if err != nil || stemmed == "" {
		return token
	}
	return stemmed
}

// Porter2 returns an English Porter2 stemmer.
func Porter2() Stemmer {
	return Func(porter2.Stem)
}

// ByName builds the stemmer selected in configuration. The language only
// applies to the snowball stemmer.
func ByName(name, language string) (Stemmer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameSnowball:
		return Snowball(language)
	case NamePorter2:
		return Porter2(), nil
	case NameIdentity, "none":
		return Identity, nil
	default:
		return nil, fmt.Errorf("stemmer: unsupported value %q", name)
	}
}

// IsStopWord reports whether token is on the English stop-word list.
func IsStopWord(token string) bool {
	return english.IsStopWord(token)
}

type cachedStemmer struct {
	next  Stemmer
	mu    sync.RWMutex
	stems map[string]string
}

// Cached memoises next. The result is safe for concurrent use as long as next
// is.
func Cached(next Stemmer) Stemmer {
	if next == nil {
		next = Identity
	}
	if _, ok := next.(*cachedStemmer); ok {
		return next
	}
	return &cachedStemmer{next: next, stems: make(map[string]string)}
}

func (c *cachedStemmer) Stem(token string) string {
	c.mu.RLock()
	stem, ok := c.stems[token]
	c.mu.RUnlock()
	if ok {
		return stem
	}
	stem = c.next.Stem(token)
	c.mu.Lock()
	c.stems[token] = stem
	c.mu.Unlock()
	return stem
}
