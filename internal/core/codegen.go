package core

import (
	"crypto/rand"
	"math/big"
)

const (
	// DefaultCodeAlphabet matches the join codes players type by hand:
	// uppercase letters and digits only.
	DefaultCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultCodeLength   = 6
)

// Generator mints fixed-length room codes. Collision handling against live
// rooms is the Store's job; the generator itself is stateless.
type Generator struct {
	alphabet string
	length   int
}

func NewGenerator(alphabet string, length int) *Generator {
	if alphabet == "" {
		alphabet = DefaultCodeAlphabet
	}
	if length <= 0 {
		length = DefaultCodeLength
	}
	return &Generator{alphabet: alphabet, length: length}
}

func (g *Generator) Generate() string {
	size := big.NewInt(int64(len(g.alphabet)))
	code := make([]byte, g.length)
	for i := range code {
		// rand.Int keeps the draw uniform over the alphabet; a plain
		// byte modulo would skew toward the alphabet's first characters.
		v, err := rand.Int(rand.Reader, size)
		if err != nil {
			// Only reachable with a broken platform entropy source;
			// uuid.NewString takes the same way out.
			panic(err)
		}
		code[i] = g.alphabet[v.Int64()]
	}
	return string(code)
}
