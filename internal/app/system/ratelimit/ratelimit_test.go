package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	l := New(2, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("expected first two requests to be allowed")
	}
	if l.Allow("a") {
		t.Error("expected third request to be refused")
	}
	if !l.Allow("b") {
		t.Error("expected other keys to be independent")
	}

	now = now.Add(time.Minute + time.Second)
	if !l.Allow("a") {
		t.Error("expected a new window after expiry")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, time.Minute)
	l.Allow("a")
	if l.Allow("a") {
		t.Fatal("expected limit to be reached")
	}
	l.Reset("a")
	if !l.Allow("a") {
		t.Error("expected Reset to clear the window")
	}
}

func TestLimiter_SweepsExpiredWindows(t *testing.T) {
	l := New(1, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("a")
	l.Allow("b")
	now = now.Add(3 * time.Minute)
	l.Allow("c")

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.windows) != 1 {
		t.Errorf("expected expired windows to be swept, have %d", len(l.windows))
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/login-donor", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	if got := ClientIP(r); got != "203.0.113.7" {
		t.Errorf("ClientIP = %q, want 203.0.113.7", got)
	}
	r.RemoteAddr = "203.0.113.7"
	if got := ClientIP(r); got != "203.0.113.7" {
		t.Errorf("ClientIP without port = %q", got)
	}
}

func TestLoginLimiter(t *testing.T) {
	ll := NewLoginLimiter(100, 2)
	r := httptest.NewRequest("POST", "/login-donor", nil)

	for i := 0; i < 2; i++ {
		if ok, _ := ll.Check(r, "donor", "a@x.com"); !ok {
			t.Fatalf("attempt %d refused", i+1)
		}
	}
	if ok, msg := ll.Check(r, "donor", " A@X.com "); ok || msg == "" {
		t.Error("expected account limit to apply case-insensitively")
	}
	if ok, _ := ll.Check(r, "orphanage", "a@x.com"); !ok {
		t.Error("expected separate windows per identity kind")
	}

	ll.Succeeded("donor", "a@x.com")
	if ok, _ := ll.Check(r, "donor", "a@x.com"); !ok {
		t.Error("expected success to clear the account window")
	}
}

func TestLoginLimiter_IPLimit(t *testing.T) {
	ll := NewLoginLimiter(1, 0)
	r := httptest.NewRequest("POST", "/login-donor", nil)

	if ok, _ := ll.Check(r, "donor", "a@x.com"); !ok {
		t.Fatal("first attempt refused")
	}
	if ok, _ := ll.Check(r, "donor", "b@x.com"); ok {
		t.Error("expected IP limit to apply across accounts")
	}
}

func TestLoginLimiter_Nil(t *testing.T) {
	var ll *LoginLimiter
	if ok, _ := ll.Check(httptest.NewRequest("POST", "/", nil), "donor", "a@x.com"); !ok {
		t.Error("nil limiter must allow")
	}
	ll.Succeeded("donor", "a@x.com")
}
