package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// GenerateKey derives the cache key for an operation and its parameters.
// Parameters are canonicalized before hashing, so two structurally equal
// values produce the same key regardless of field declaration or insertion
// order. The operation name is framed separately from the parameters; the
// pairs ("ab", x) and ("a", bx) can never collide.
func GenerateKey(op string, params any) (string, error) {
	canon, err := canonicalJSON(params)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(op))
	h.Write([]byte{0})
	h.Write(canon)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// canonicalJSON encodes v, decodes it into the generic JSON value model and
// encodes it again. The second encoding sorts object keys at every nesting
// level, which is what makes the result order-independent.
func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var norm any
	if err := json.Unmarshal(raw, &norm); err != nil {
		return nil, err
	}
	return json.Marshal(norm)
}
