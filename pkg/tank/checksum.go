package tank

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// PayloadChecksum returns the SHA-256 hex digest of the canonical JSON
// serialization of v. encoding/json writes map keys in sorted order,
// so marshaling the response payload as maps yields a canonical byte
// stream. This guards the transferred payload against truncation, not
// the store against corruption.
func PayloadChecksum(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
