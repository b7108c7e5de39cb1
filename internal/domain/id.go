package domain

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	idMu  sync.Mutex
	idRnd = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// NewID returns a short random opaque identifier. IDs are scoped to
// their immediate parent collection, not globally unique; the collision
// risk within one document is accepted as negligible.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	b := make([]byte, 9)
	for i := range b {
		b[i] = idAlphabet[idRnd.Intn(len(idAlphabet))]
	}
	return string(b)
}

// Slugify turns a free-form name into a URL-safe slug.
func Slugify(name string) string {
	var b strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
