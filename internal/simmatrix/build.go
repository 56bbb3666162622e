package simmatrix

import (
	"context"

	"golang.org/x/sync/errgroup"

	"sentcluster/internal/stemming"
	"sentcluster/internal/textnorm"
)

// Builder computes matrices from raw sentences.
type Builder struct {
	Normalizer textnorm.Normalizer
	Scorer     Scorer
	// Workers bounds the number of rows scored concurrently. Values below 2
	// score sequentially.
	Workers int
}

// Build normalizes and deduplicates lines and returns the scored matrix.
func Build(ctx context.Context, lines []string, scorer Scorer) (*Matrix, error) {
	return Builder{Scorer: scorer}.Build(ctx, lines)
}

// Build normalizes and deduplicates lines and returns the scored matrix.
func (b Builder) Build(ctx context.Context, lines []string) (*Matrix, error) {
	return b.FromSignatures(ctx, b.Normalizer.Dedupe(lines))
}

// FromSignatures scores already deduplicated signatures. Node i is
// signatures[i].
func (b Builder) FromSignatures(ctx context.Context, signatures []string) (*Matrix, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	sentences := make([]string, len(signatures))
	copy(sentences, signatures)
	m := newMatrix(sentences)

	scorer := b.Scorer
	if scorer.Stemmer == nil {
		scorer.Stemmer = stemming.Identity
	}
	stems := make([][]string, len(sentences))
	for i, sentence := range sentences {
		stems[i] = scorer.stems(textnorm.Tokens(sentence))
	}

	// Row i owns cells (i, j) for j < i, so no two workers touch one cell.
	fillRow := func(i int) {
		for j := 0; j < i; j++ {
			m.sym.SetSym(i, j, scoreStems(stems[i], stems[j]))
		}
	}

	if b.Workers < 2 {
		for i := 1; i < len(sentences); i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			fillRow(i)
		}
		return m, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Workers)
	for i := 1; i < len(sentences); i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fillRow(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}
