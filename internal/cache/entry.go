package cache

import "time"

// Entry is the envelope a tier stores per key. Payload holds the codec
// output; Codec names the codec that produced it so a decoder mismatch is
// detectable. A zero ExpiresAt means the entry never expires.
type Entry struct {
	Key            string
	Payload        []byte
	Codec          string
	CreatedAt      time.Time
	ExpiresAt      time.Time
	LastAccessedAt time.Time
	AccessCount    uint64
}

func (e *Entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// clone copies the envelope including its payload bytes, so tiers and
// callers never share a mutable slice.
func (e *Entry) clone() *Entry {
	c := *e
	c.Payload = append([]byte(nil), e.Payload...)
	return &c
}
