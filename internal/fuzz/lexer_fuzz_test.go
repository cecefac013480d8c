package fuzztests

import (
	"testing"

	"flint/internal/lexer"
	"flint/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)
		lx := lexer.New(string(input))
		tokens := 0
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			tokens++
			if tokens > 4*len(input)+16 {
				t.Fatalf("lexer emitted %d tokens for %d input bytes", tokens, len(input))
			}
		}
	})
}
