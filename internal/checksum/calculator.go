package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Calculator computes content checksums for the generated manifest.
type Calculator interface {
	// Sum returns the hex-encoded checksum of content.
	Sum(content []byte) string
}

// SHA256 implements Calculator using SHA-256 over the exact bytes.
// Any byte change, whitespace included, yields a different checksum: the
// generated file embeds the SQL verbatim, so every change must regenerate it.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// Sum computes SHA-256 of content.
func (c SHA256) Sum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
