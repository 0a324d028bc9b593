// Package sharing generates share tokens and QR codes for shareable lists.
package sharing

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// TokenBytes is the amount of randomness in a share token (128 bits).
const TokenBytes = 16

// NewToken returns a fresh URL-safe share token.
func NewToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating share token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ValidToken reports whether s has the shape of a token produced by NewToken.
func ValidToken(s string) bool {
	if len(s) != base64.RawURLEncoding.EncodedLen(TokenBytes) {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(s)
	return err == nil
}

// ShareURL builds the public URL for a token.
func ShareURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/share/" + token
}

// QRCode encodes url as a PNG QR code of the given pixel size.
func QRCode(url string, size int) ([]byte, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}
	return png, nil
}
