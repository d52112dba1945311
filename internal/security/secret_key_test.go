package security

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateSecretKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "empty", raw: "   ", wantErr: ErrSecretKeyMissing},
		{name: "placeholder", raw: "change_me_in_production", wantErr: ErrSecretKeyPlaceholder},
		{name: "example value", raw: "replace_with_at_least_32_random_characters", wantErr: ErrSecretKeyPlaceholder},
		{name: "too short", raw: "short-secret", wantErr: ErrSecretKeyTooShort},
		{name: "trimmed valid key", raw: "  0123456789abcdef0123456789abcdef  ", want: "0123456789abcdef0123456789abcdef"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := ValidateSecretKey(test.raw)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("ValidateSecretKey(%q) error = %v, want %v", test.raw, err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateSecretKey(%q) returned error: %v", test.raw, err)
			}
			if got != test.want {
				t.Fatalf("ValidateSecretKey(%q) = %q, want %q", test.raw, got, test.want)
			}
		})
	}
}

func TestGenerateSecretKeyPassesValidation(t *testing.T) {
	t.Parallel()

	key, err := GenerateSecretKey(8)
	if err != nil {
		t.Fatalf("GenerateSecretKey returned error: %v", err)
	}
	if len(key) != MinSecretKeyLength {
		t.Fatalf("expected short request to be raised to %d characters, got %d", MinSecretKeyLength, len(key))
	}
	if _, err := ValidateSecretKey(key); err != nil {
		t.Fatalf("generated key failed validation: %v", err)
	}
	for _, char := range key {
		if !strings.ContainsRune(secretKeyAlphabet, char) {
			t.Fatalf("key %q contains char %q outside alphabet", key, char)
		}
	}
}

func TestRandomStringRejectsBadArguments(t *testing.T) {
	t.Parallel()

	if _, err := randomString(-1, "abc"); err == nil {
		t.Fatal("expected negative length to fail")
	}
	if _, err := randomString(1, ""); err == nil {
		t.Fatal("expected empty alphabet to fail")
	}
	if got, err := randomString(0, "abc"); err != nil || got != "" {
		t.Fatalf("expected empty string for zero length, got %q, %v", got, err)
	}
	if got, err := randomString(6, "X"); err != nil || got != "XXXXXX" {
		t.Fatalf("expected single-letter alphabet to repeat, got %q, %v", got, err)
	}
}
