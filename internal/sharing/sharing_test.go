package sharing

import (
	"bytes"
	"testing"
)

func TestNewTokenShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := NewToken()
		if err != nil {
			t.Fatalf("NewToken: %v", err)
		}
		if len(tok) != 22 {
			t.Errorf("expected 22 chars, got %d (%q)", len(tok), tok)
		}
		if !ValidToken(tok) {
			t.Errorf("token %q does not validate", tok)
		}
		if seen[tok] {
			t.Errorf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}

func TestValidToken(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"short", false},
		{"AAAAAAAAAAAAAAAAAAAAAA", true},
		{"AAAAAAAAAAAAAAAAAAAA+/", false},
		{"AAAAAAAAAAAAAAAAAAAAAAA", false},
	}
	for _, tt := range tests {
		if got := ValidToken(tt.in); got != tt.want {
			t.Errorf("ValidToken(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShareURL(t *testing.T) {
	if got := ShareURL("http://localhost:8080/", "abc"); got != "http://localhost:8080/share/abc" {
		t.Errorf("unexpected url %q", got)
	}
}

func TestQRCode(t *testing.T) {
	png, err := QRCode("http://localhost:8080/share/abc", 256)
	if err != nil {
		t.Fatalf("QRCode: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected PNG output")
	}
}
