package deeplink_test

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/makerhub/internal/app/system/deeplink"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestMinter_RoundTrip(t *testing.T) {
	m, err := deeplink.NewMinter(testSecret, time.Minute)
	if err != nil {
		t.Fatalf("NewMinter failed: %v", err)
	}

	id := deeplink.Identity{UID: "u1", Email: "ada@example.com", Name: "Ada", Role: "student"}
	token, err := m.Mint(id, time.Now())
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	got, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got != id {
		t.Errorf("identity: got %+v, want %+v", got, id)
	}
}

func TestMinter_RejectsExpired(t *testing.T) {
	m, err := deeplink.NewMinter(testSecret, time.Minute)
	if err != nil {
		t.Fatalf("NewMinter failed: %v", err)
	}

	token, err := m.Mint(deeplink.Identity{UID: "u1"}, time.Now().Add(-2*time.Minute))
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	if _, err := m.Verify(token); err != deeplink.ErrExpired {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestMinter_RejectsTampering(t *testing.T) {
	m, err := deeplink.NewMinter(testSecret, time.Minute)
	if err != nil {
		t.Fatalf("NewMinter failed: %v", err)
	}

	token, err := m.Mint(deeplink.Identity{UID: "u1", Role: "student"}, time.Now())
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := m.Verify(tampered); err != deeplink.ErrInvalid {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestMinter_RejectsOtherKey(t *testing.T) {
	m1, _ := deeplink.NewMinter(testSecret, time.Minute)
	m2, _ := deeplink.NewMinter("ffffffffffffffffffffffffffffffff", time.Minute)

	token, err := m1.Mint(deeplink.Identity{UID: "u1"}, time.Now())
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if _, err := m2.Verify(token); err == nil {
		t.Error("expected verification failure with different key")
	}
}

func TestNewMinter_RejectsShortSecret(t *testing.T) {
	if _, err := deeplink.NewMinter("short", time.Minute); err == nil {
		t.Error("expected error for short secret")
	}
}
