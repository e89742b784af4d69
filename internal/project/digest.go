package project

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

// Digest is a content hash used as a stable key for build caching.
type Digest [sha256.Size]byte

// DigestBytes hashes raw content.
func DigestBytes(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// DigestFile hashes the content of the file at path.
func DigestFile(path string) (Digest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Digest{}, err
	}
	return DigestBytes(data), nil
}

// Hex returns the lowercase hex form, suitable for file names.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}
