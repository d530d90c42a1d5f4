package auth

import (
	"strings"
	"testing"
)

func TestGenerateToken_Live(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(EnvLive)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	// Check plaintext format
	if !strings.HasPrefix(tok.Plaintext, "tl_live_") {
		t.Errorf("Token should start with tl_live_, got: %s", tok.Plaintext)
	}

	// Check prefix length
	if len(tok.Prefix) != TokenPrefixLen {
		t.Errorf("Prefix should be %d chars, got: %d", TokenPrefixLen, len(tok.Prefix))
	}

	// Check hash is not empty and in PHC format
	if tok.Hash == "" {
		t.Error("Hash should not be empty")
	}
	if !strings.HasPrefix(tok.Hash, "$argon2id$v=") {
		t.Errorf("Hash should be in PHC format, got: %s", tok.Hash)
	}

	// Verify plaintext contains prefix
	if !strings.Contains(tok.Plaintext, tok.Prefix) {
		t.Error("Plaintext should contain prefix")
	}
}

func TestGenerateToken_Test(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(EnvTest)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if !strings.HasPrefix(tok.Plaintext, "tl_test_") {
		t.Errorf("Token should start with tl_test_, got: %s", tok.Plaintext)
	}
}

func TestGenerateToken_DefaultsToLive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  string
	}{
		{"invalid env", "invalid"},
		{"empty env", ""},
		{"prod env", "prod"},
		{"staging env", "staging"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tok, err := GenerateToken(tt.env)
			if err != nil {
				t.Fatalf("GenerateToken failed: %v", err)
			}
			if !strings.HasPrefix(tok.Plaintext, "tl_live_") {
				t.Errorf("Expected tl_live_ prefix for env %q, got: %s", tt.env, tok.Plaintext)
			}
		})
	}
}

func TestGenerateToken_UniqueSecrets(t *testing.T) {
	t.Parallel()

	const numTokens = 100
	secrets := make(map[string]bool, numTokens)

	for i := 0; i < numTokens; i++ {
		tok, err := GenerateToken(EnvLive)
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}

		// Extract secret from plaintext (last 32 chars after final underscore)
		parts := strings.Split(tok.Plaintext, "_")
		if len(parts) != 4 {
			t.Fatalf("Expected 4 parts in token, got %d", len(parts))
		}
		secret := parts[3]

		if secrets[secret] {
			t.Errorf("Duplicate secret found at iteration %d", i)
		}
		secrets[secret] = true
	}

	if len(secrets) != numTokens {
		t.Errorf("Expected %d unique secrets, got %d", numTokens, len(secrets))
	}
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(EnvLive)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	parsed, err := ParseToken(tok.Plaintext)
	if err != nil {
		t.Fatalf("ParseToken failed on generated token: %v", err)
	}

	if parsed.Prefix != tok.Prefix {
		t.Errorf("Parsed prefix = %s, want %s", parsed.Prefix, tok.Prefix)
	}

	match, err := VerifyPassword(tok.Plaintext, tok.Hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !match {
		t.Error("Generated token should verify against its own hash")
	}
}

func TestParseToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		token      string
		wantEnv    string
		wantPrefix string
		wantErr    error
	}{
		{
			name:       "valid live token",
			token:      "tl_live_abc123_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b",
			wantEnv:    "live",
			wantPrefix: "abc123",
			wantErr:    nil,
		},
		{
			name:       "valid test token",
			token:      "tl_test_def456_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b",
			wantEnv:    "test",
			wantPrefix: "def456",
			wantErr:    nil,
		},
		{
			name:    "wrong scheme sk_",
			token:   "sk_live_abc123_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b",
			wantErr: ErrInvalidTokenFormat,
		},
		{
			name:    "wrong env prod",
			token:   "tl_prod_abc123_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b",
			wantErr: ErrInvalidTokenFormat,
		},
		{
			name:    "short prefix 3 chars",
			token:   "tl_live_abc_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b",
			wantErr: ErrInvalidTokenFormat,
		},
		{
			name:    "short secret 8 chars",
			token:   "tl_live_abc123_4f8d2e1b",
			wantErr: ErrInvalidTokenFormat,
		},
		{
			name:    "long secret 33 chars",
			token:   "tl_live_abc123_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1bf",
			wantErr: ErrInvalidTokenFormat,
		},
		{
			name:    "empty string",
			token:   "",
			wantErr: ErrInvalidTokenFormat,
		},
		{
			name:    "just invalid",
			token:   "invalid",
			wantErr: ErrInvalidTokenFormat,
		},
		{
			name:    "missing parts tl_abc",
			token:   "tl_abc",
			wantErr: ErrInvalidTokenFormat,
		},
		{
			name:    "tl_live_ only",
			token:   "tl_live_",
			wantErr: ErrInvalidTokenFormat,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := ParseToken(tt.token)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("ParseToken(%q) error = %v, want %v", tt.token, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseToken(%q) unexpected error: %v", tt.token, err)
			}

			if parsed.Env != tt.wantEnv {
				t.Errorf("Env = %s, want %s", parsed.Env, tt.wantEnv)
			}

			if parsed.Prefix != tt.wantPrefix {
				t.Errorf("Prefix = %s, want %s", parsed.Prefix, tt.wantPrefix)
			}
		})
	}
}

func TestValidateTokenFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"valid live token", "tl_live_abc123_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b", true},
		{"valid test token", "tl_test_def456_0123456789abcdef0123456789abcdef", true},
		{"not a token", "not-a-token", false},
		{"wrong scheme", "sk_live_abc123_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b", false},
		{"empty", "", false},
		{"uppercase hex", "tl_live_ABC123_4F8D2E1B9C7A5F3D2E1B9C7A5F3D2E1B", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ValidateTokenFormat(tt.token)
			if got != tt.want {
				t.Errorf("ValidateTokenFormat(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
