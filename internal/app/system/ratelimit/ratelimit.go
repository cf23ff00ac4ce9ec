// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter is a fixed-window counter per key. It is safe for concurrent use.
// Expired windows are swept lazily from Allow, so no goroutine is needed.
type Limiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	limit     int           // max requests per window
	duration  time.Duration // window duration
	lastSweep time.Time
	now       func() time.Time
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing limit requests per key per duration.
func New(limit int, duration time.Duration) *Limiter {
	return &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      time.Now,
	}
}

// Allow reports whether one more request for key fits in its window, and
// counts it if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, exists := l.windows[key]
	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Reset clears the window for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// sweep drops expired windows at most once per two window durations.
// Caller holds l.mu.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < 2*l.duration {
		return
	}
	for key, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, key)
		}
	}
	l.lastSweep = now
}

// ClientIP returns the host part of r.RemoteAddr. Proxy headers are
// resolved earlier by chi's RealIP middleware.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr might not have a port
		return r.RemoteAddr
	}
	return ip
}

// LoginLimiter throttles login attempts per client IP and per account, so
// both spraying from one address and guessing one account are slowed.
type LoginLimiter struct {
	ipLimiter      *Limiter
	accountLimiter *Limiter
}

// NewLoginLimiter allows ipLimit attempts per IP per minute and
// accountLimit attempts per account per five minutes. A limit of zero or
// less disables that check.
func NewLoginLimiter(ipLimit, accountLimit int) *LoginLimiter {
	ll := &LoginLimiter{}
	if ipLimit > 0 {
		ll.ipLimiter = New(ipLimit, time.Minute)
	}
	if accountLimit > 0 {
		ll.accountLimiter = New(accountLimit, 5*time.Minute)
	}
	return ll
}

// Check counts one attempt from r against account (kind plus email) and
// returns the message to send when it is refused. A nil LoginLimiter
// allows everything.
func (ll *LoginLimiter) Check(r *http.Request, kind, email string) (bool, string) {
	if ll == nil {
		return true, ""
	}
	if ll.ipLimiter != nil && !ll.ipLimiter.Allow(ClientIP(r)) {
		return false, "Too many login attempts. Please wait a minute before trying again."
	}
	if ll.accountLimiter != nil && email != "" && !ll.accountLimiter.Allow(accountKey(kind, email)) {
		return false, "Too many login attempts for this account. Please wait a few minutes."
	}
	return true, ""
}

// Succeeded clears the account window after a successful login.
func (ll *LoginLimiter) Succeeded(kind, email string) {
	if ll == nil || ll.accountLimiter == nil {
		return
	}
	ll.accountLimiter.Reset(accountKey(kind, email))
}

func accountKey(kind, email string) string {
	return kind + ":" + strings.ToLower(strings.TrimSpace(email))
}
