package utils

import (
	"crypto/rand"
	"encoding/base64"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateID returns a short lowercase id, used for slug suffixes and export
// object names.
func GenerateID(length int) string {
	id, err := gonanoid.Generate(idAlphabet, length)
	if err != nil {
		return ""
	}
	return id
}

func GenerateRequestID() string {
	id, err := gonanoid.New()
	if err != nil {
		return GenerateRandomString(21)
	}
	return id
}

func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return GenerateID(length)
	}
	return base64.RawURLEncoding.EncodeToString(bytes)[:length]
}
