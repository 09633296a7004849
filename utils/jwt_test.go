package utils

import (
	"strings"
	"testing"
)

func TestTableTokenRoundTrip(t *testing.T) {
	token, err := GenerateTableToken(1, 7, "01")
	if err != nil {
		t.Fatalf("GenerateTableToken returned error: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}

	if got := ClaimString(claims, "role"); got != RoleTable {
		t.Errorf("role = %q, want %q", got, RoleTable)
	}
	if got := ClaimInt(claims, "store_id"); got != 1 {
		t.Errorf("store_id = %d, want 1", got)
	}
	if got := ClaimInt(claims, "table_id"); got != 7 {
		t.Errorf("table_id = %d, want 7", got)
	}
	if got := ClaimString(claims, "table_number"); got != "01" {
		t.Errorf("table_number = %q, want %q", got, "01")
	}
}

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken(3, "owner")
	if err != nil {
		t.Fatalf("GenerateAdminToken returned error: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}

	if got := ClaimString(claims, "role"); got != RoleAdmin {
		t.Errorf("role = %q, want %q", got, RoleAdmin)
	}
	if got := ClaimInt(claims, "store_id"); got != 3 {
		t.Errorf("store_id = %d, want 3", got)
	}
	if got := ClaimString(claims, "username"); got != "owner" {
		t.Errorf("username = %q, want %q", got, "owner")
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	token, err := GenerateTableToken(1, 7, "01")
	if err != nil {
		t.Fatalf("GenerateTableToken returned error: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + ".AAAA"

	if _, err := ValidateToken(tampered); err == nil {
		t.Error("ValidateToken should reject a tampered signature")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("ValidateToken should reject malformed input")
	}
}
