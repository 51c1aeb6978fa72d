package auth

import "testing"

func TestJWTManager_RoundTrip(t *testing.T) {
	jm := NewJWTManager("secret", "ktbb-dmr")

	token, err := jm.GenerateToken("trader-1", "t@example.com", 24)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := jm.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "trader-1" || claims.Email != "t@example.com" || claims.Issuer != "ktbb-dmr" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	jm := NewJWTManager("secret", "ktbb-dmr")
	token, _ := jm.GenerateToken("trader-1", "t@example.com", 1)

	tests := []struct {
		name string
		mgr  *JWTManager
	}{
		{"wrong secret", NewJWTManager("other", "ktbb-dmr")},
		{"wrong issuer", NewJWTManager("secret", "someone-else")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.mgr.ValidateToken(token); err == nil {
				t.Error("ValidateToken() error = nil, want error")
			}
		})
	}

	if _, err := jm.GenerateToken("trader-1", "", 0); err == nil {
		t.Error("GenerateToken(hours=0) error = nil, want error")
	}
}
