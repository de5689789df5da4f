package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

const (
	ParamSecureHash     = "vnp_SecureHash"
	ParamSecureHashType = "vnp_SecureHashType"

	paramPrefix = "vnp_"
)

// Hasher signs and verifies gateway parameter sets with HMAC-SHA512.
type Hasher struct {
	secret []byte
}

func NewHasher(secret string) *Hasher {
	return &Hasher{secret: []byte(secret)}
}

func (h *Hasher) Hash(params map[string]string) string {
	mac := hmac.New(sha512.New, h.secret)
	mac.Write([]byte(Canonical(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

func (h *Hasher) Verify(params map[string]string, provided string) bool {
	if provided == "" {
		return false
	}
	expected := h.Hash(params)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(provided)))
}

// Canonical encodes the signable parameters: vnp_ keys with a value, minus
// the hash fields, sorted by key and form-encoded.
func Canonical(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if !strings.HasPrefix(k, paramPrefix) || v == "" {
			continue
		}
		if k == ParamSecureHash || k == ParamSecureHashType {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}
