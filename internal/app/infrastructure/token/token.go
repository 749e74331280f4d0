package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const defaultBytes = 4

// Generator produces fixed-length lowercase hex tokens from crypto/rand.
type Generator struct {
	nBytes int
}

func New(nBytes int) *Generator {
	if nBytes <= 0 {
		nBytes = defaultBytes
	}
	return &Generator{nBytes: nBytes}
}

func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.nBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
