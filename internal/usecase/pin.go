package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PINIndexer derives the keyed lookup index stored next to each PIN hash.
// Login and the uniqueness check only run bcrypt against users whose index
// matches, so the cost no longer grows with the number of staff. Users stored
// without an index are always compared. An empty key disables the index.
type PINIndexer struct {
	key []byte
}

func NewPINIndexer(key string) PINIndexer {
	return PINIndexer{key: []byte(key)}
}

// Index returns the hex HMAC-SHA256 of pin, or "" when no key is set.
func (p PINIndexer) Index(pin string) string {
	if len(p.key) == 0 {
		return ""
	}
	mac := hmac.New(sha256.New, p.key)
	mac.Write([]byte(pin))
	return hex.EncodeToString(mac.Sum(nil))
}

// Candidate reports whether a user stored with storedIndex may own the PIN
// whose index is idx.
func (p PINIndexer) Candidate(storedIndex, idx string) bool {
	return idx == "" || storedIndex == "" || hmac.Equal([]byte(storedIndex), []byte(idx))
}

var decoyPINHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("decoy"), bcrypt.DefaultCost)
	return h
})

// burnPINCompare spends one bcrypt comparison so a PIN with no candidate
// takes as long as one with a single candidate.
func burnPINCompare(pin string) {
	_ = bcrypt.CompareHashAndPassword(decoyPINHash(), []byte(pin))
}
