package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// nonceAction binds every token to the filter dispatch; there is only one
// protected surface.
const nonceAction = "ctf_nonce"

// Nonce issues and checks the short-lived anti-forgery token the widget sends
// with every action. The lifetime is split into two windows and verification
// accepts the current and the previous one, so a token issued at any moment
// stays valid for at least half the lifetime.
type Nonce struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewNonce(secret string, lifetime time.Duration) *Nonce {
	return &Nonce{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

func (n *Nonce) Issue() string {
	return n.tokenFor(n.tick())
}

func (n *Nonce) Verify(token string) bool {
	if token == "" {
		return false
	}
	tick := n.tick()
	if hmac.Equal([]byte(token), []byte(n.tokenFor(tick))) {
		return true
	}
	return hmac.Equal([]byte(token), []byte(n.tokenFor(tick-1)))
}

func (n *Nonce) tick() int64 {
	window := int64(n.lifetime.Seconds()) / 2
	if window <= 0 {
		window = 1
	}
	return n.now().Unix() / window
}

func (n *Nonce) tokenFor(tick int64) string {
	mac := hmac.New(sha256.New, n.secret)
	mac.Write([]byte(nonceAction))
	mac.Write([]byte{'|'})
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(tick)
		tick >>= 8
	}
	mac.Write(buf[:])
	return hex.EncodeToString(mac.Sum(nil))[:10]
}
