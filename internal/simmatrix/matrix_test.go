package simmatrix

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"sentcluster/internal/stemming"
	"sentcluster/internal/textnorm"
)

func mustSnowball(t *testing.T) stemming.Stemmer {
	t.Helper()
	s, err := stemming.Snowball("english")
	if err != nil {
		t.Fatalf("Snowball: %v", err)
	}
	return s
}

func assertMatrixInvariants(t *testing.T, m *Matrix) {
	t.Helper()
	n := m.Size()
	for i := 0; i < n; i++ {
		if got := m.At(i, i); got != 1 {
			t.Fatalf("diagonal (%d,%d) = %v, want 1", i, i, got)
		}
		for j := 0; j < n; j++ {
			v, err := m.Similarity(i, j)
			if err != nil {
				t.Fatalf("Similarity(%d,%d): %v", i, j, err)
			}
			w, _ := m.Similarity(j, i)
			if v != w {
				t.Fatalf("asymmetric (%d,%d)=%v (%d,%d)=%v", i, j, v, j, i, w)
			}
			if math.IsNaN(v) || v < 0 || v > 1 {
				t.Fatalf("(%d,%d) = %v out of range", i, j, v)
			}
		}
	}
}

func TestNewIdentity(t *testing.T) {
	m, err := NewIdentity(3)
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	if m.Size() != 3 {
		t.Fatalf("Size = %d, want 3", m.Size())
	}
	if v, _ := m.Similarity(0, 1); v != 0 {
		t.Fatalf("Similarity(0,1) = %v, want 0", v)
	}
	if v, _ := m.Similarity(1, 1); v != 1 {
		t.Fatalf("Similarity(1,1) = %v, want 1", v)
	}
	for i := 0; i < 3; i++ {
		label, err := m.Sentence(i)
		if err != nil {
			t.Fatalf("Sentence(%d): %v", i, err)
		}
		if want := string(rune('0' + i)); label != want {
			t.Fatalf("Sentence(%d) = %q, want %q", i, label, want)
		}
	}
	assertMatrixInvariants(t, m)
}

func TestNewIdentityEmptyAndNegative(t *testing.T) {
	m, err := NewIdentity(0)
	if err != nil {
		t.Fatalf("NewIdentity(0): %v", err)
	}
	if m.Size() != 0 {
		t.Fatalf("Size = %d", m.Size())
	}
	if got := m.String(); got != "      \n" {
		t.Fatalf("String() = %q", got)
	}
	if _, err := m.Similarity(0, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := NewIdentity(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSetSimilarityKeepsSymmetry(t *testing.T) {
	m, _ := NewIdentity(4)
	if err := m.SetSimilarity(2, 0, 0.75); err != nil {
		t.Fatalf("SetSimilarity: %v", err)
	}
	if v, _ := m.Similarity(0, 2); v != 0.75 {
		t.Fatalf("mirrored value = %v, want 0.75", v)
	}
	if err := m.SetSimilarity(1, 1, 1); err != nil {
		t.Fatalf("diagonal write of 1 should succeed: %v", err)
	}
	assertMatrixInvariants(t, m)
}

func TestSetSimilarityRejectsInvalidInput(t *testing.T) {
	m, _ := NewIdentity(2)
	tests := []struct {
		name    string
		i, j    int
		value   float64
		wantErr error
	}{
		{"negative", 0, 1, -0.1, ErrInvalidScore},
		{"above one", 0, 1, 1.5, ErrInvalidScore},
		{"nan", 0, 1, math.NaN(), ErrInvalidScore},
		{"diagonal", 1, 1, 0.5, ErrInvalidScore},
		{"row out of range", 2, 0, 0.5, ErrIndexOutOfRange},
		{"column negative", 0, -1, 0.5, ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := m.SetSimilarity(tt.i, tt.j, tt.value); !errors.Is(err, tt.wantErr) {
				t.Fatalf("SetSimilarity error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	assertMatrixInvariants(t, m)
}

func TestAccessorsOutOfRange(t *testing.T) {
	m, _ := NewIdentity(2)
	if _, err := m.Sentence(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("Sentence error = %v", err)
	}
	if _, err := m.Similarity(-1, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("Similarity error = %v", err)
	}
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("expected At to panic with ErrIndexOutOfRange, got %v", r)
		}
	}()
	m.At(0, 2)
}

func TestBuildCatScenario(t *testing.T) {
	lines := []string{"The cat sat.", "A cat sat!", "Dogs bark loudly."}
	m, err := Build(context.Background(), lines, Scorer{Stemmer: mustSnowball(t)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Size() != 3 {
		t.Fatalf("Size = %d, want 3", m.Size())
	}
	want := []string{"the cat sat", "a cat sat", "dogs bark loudly"}
	for i, sentence := range m.Sentences() {
		if sentence != want[i] {
			t.Fatalf("Sentence(%d) = %q, want %q", i, sentence, want[i])
		}
	}
	if v := m.At(0, 1); v != 0.5 {
		t.Fatalf("Similarity(0,1) = %v, want 0.5", v)
	}
	if v := m.At(0, 2); v != 0 {
		t.Fatalf("Similarity(0,2) = %v, want 0", v)
	}
	if v := m.At(1, 2); v != 0 {
		t.Fatalf("Similarity(1,2) = %v, want 0", v)
	}
	assertMatrixInvariants(t, m)
}

func TestBuildSortedSignatures(t *testing.T) {
	b := Builder{Normalizer: textnorm.Normalizer{Order: textnorm.OrderSorted}}
	m, err := b.Build(context.Background(), []string{"The cat sat.", "A cat sat!", "Dogs bark loudly."})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, _ := m.Sentence(0); got != "cat sat the" {
		t.Fatalf("Sentence(0) = %q", got)
	}
	if got, _ := m.Sentence(2); got != "bark dogs loudly" {
		t.Fatalf("Sentence(2) = %q", got)
	}
}

func TestBuildRepeatedSentencesCollapse(t *testing.T) {
	lines := []string{"Same words here.", "same words HERE", "Same, words, here!"}
	m, err := Build(context.Background(), lines, Scorer{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Size() != 1 {
		t.Fatalf("Size = %d, want 1", m.Size())
	}
	if got := m.At(0, 0); got != 1 {
		t.Fatalf("diagonal = %v", got)
	}
}

func TestBuildUsesLargerIndexAsReference(t *testing.T) {
	stemmer := stemming.Func(func(token string) string {
		return strings.TrimSuffix(token, "ning")
	})
	// Node 0 holds two words with one stem; node 1 holds that stem once.
	m, err := Build(context.Background(), []string{"run running", "run"}, Scorer{Stemmer: stemmer})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if v := m.At(1, 0); v != 1 {
		t.Fatalf("Similarity(1,0) = %v, want 1", v)
	}
	// The opposite role assignment would score the pair at 0.5.
	if v := (Scorer{Stemmer: stemmer}).Score([]string{"run", "running"}, []string{"run"}); v != 0.5 {
		t.Fatalf("reverse role score = %v, want 0.5", v)
	}
	assertMatrixInvariants(t, m)
}

func TestBuildEmptySignatures(t *testing.T) {
	m, err := Builder{}.FromSignatures(context.Background(), []string{"", "cat"})
	if err != nil {
		t.Fatalf("FromSignatures: %v", err)
	}
	if v := m.At(0, 1); v != 0 {
		t.Fatalf("empty vs non-empty = %v, want 0", v)
	}
	assertMatrixInvariants(t, m)
}

func TestBuildRandomSentencesHoldInvariants(t *testing.T) {
	vocabulary := []string{
		"run", "running", "runs", "cat", "cats", "dog", "dogs", "bark", "barking",
		"the", "a", "loud", "loudly", "sat", "sit", "sitting", "connection", "connected",
	}
	rng := rand.New(rand.NewPCG(3, 5))
	lines := make([]string, 60)
	for i := range lines {
		words := make([]string, 1+rng.IntN(6))
		for j := range words {
			words[j] = vocabulary[rng.IntN(len(vocabulary))]
		}
		lines[i] = strings.Join(words, " ")
	}

	for _, ignore := range []bool{false, true} {
		m, err := Build(context.Background(), lines, Scorer{Stemmer: mustSnowball(t), IgnoreStopWords: ignore})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		assertMatrixInvariants(t, m)
	}
}

func TestParallelBuildMatchesSequential(t *testing.T) {
	lines := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		lines = append(lines, strings.Repeat("word ", i%5)+"cat number "+string(rune('a'+i%26)))
	}
	scorer := Scorer{Stemmer: stemming.Cached(mustSnowball(t))}

	sequential, err := Builder{Scorer: scorer}.Build(context.Background(), lines)
	if err != nil {
		t.Fatalf("sequential Build: %v", err)
	}
	parallel, err := Builder{Scorer: scorer, Workers: 4}.Build(context.Background(), lines)
	if err != nil {
		t.Fatalf("parallel Build: %v", err)
	}
	if sequential.Size() != parallel.Size() {
		t.Fatalf("sizes differ: %d vs %d", sequential.Size(), parallel.Size())
	}
	for i := 0; i < sequential.Size(); i++ {
		for j := 0; j < sequential.Size(); j++ {
			if sequential.At(i, j) != parallel.At(i, j) {
				t.Fatalf("cell (%d,%d) differs: %v vs %v", i, j, sequential.At(i, j), parallel.At(i, j))
			}
		}
	}
}

func TestBuildHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lines := []string{"one", "two", "three"}
	for _, workers := range []int{1, 3} {
		if _, err := (Builder{Workers: workers}).Build(ctx, lines); !errors.Is(err, context.Canceled) {
			t.Fatalf("workers=%d: expected context.Canceled, got %v", workers, err)
		}
	}
}

func TestStringRendersLowerTriangle(t *testing.T) {
	m, _ := NewIdentity(3)
	if err := m.SetSimilarity(1, 0, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := m.SetSimilarity(2, 1, 0.25); err != nil {
		t.Fatal(err)
	}
	want := "" +
		"      0     1     2     \n" +
		"0       -   \n" +
		"1     0.500   -   \n" +
		"2     0.000 0.250   -   \n"
	if got := m.String(); got != want {
		t.Fatalf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestRowsIsACopy(t *testing.T) {
	m, _ := NewIdentity(2)
	rows := m.Rows()
	rows[0][1] = 0.9
	if m.At(0, 1) != 0 {
		t.Fatal("Rows should not alias matrix storage")
	}
}
