package main

import (
	"context"
	"net/http"
	"sync"
)

// sessionLocks serialises the session reads and writes of concurrent requests that share a session cookie.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu sync.Mutex
	// refs counts the requests holding or waiting for the lock.
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{mu: sync.Mutex{}, locks: map[string]*sessionLock{}}
}

// heldSession is the lock of one request. The request may release it while it waits for the provider and
// reacquire it before it stores the outcome. A nil heldSession is a no-op.
type heldSession struct {
	locks *sessionLocks
	token string
	lock  *sessionLock
	held  bool
}

func (l *sessionLocks) acquire(token string) *heldSession {
	l.mu.Lock()
	lock, ok := l.locks[token]
	if !ok {
		lock = &sessionLock{mu: sync.Mutex{}, refs: 0}
		l.locks[token] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return &heldSession{locks: l, token: token, lock: lock, held: true}
}

func (h *heldSession) unlock() {
	if h == nil || !h.held {
		return
	}
	h.held = false
	h.lock.mu.Unlock()
}

func (h *heldSession) relock() {
	if h == nil || h.held {
		return
	}
	h.lock.mu.Lock()
	h.held = true
}

// release unlocks and forgets the lock once no other request uses it.
func (h *heldSession) release() {
	if h == nil {
		return
	}
	h.unlock()
	h.locks.mu.Lock()
	defer h.locks.mu.Unlock()
	h.lock.refs--
	if h.lock.refs == 0 {
		delete(h.locks.locks, h.token)
	}
}

type heldSessionKey struct{}

func sessionHeld(ctx context.Context) *heldSession {
	h, _ := ctx.Value(heldSessionKey{}).(*heldSession)
	return h
}

// lockSession holds the session lock from loading the session until it is saved. It has to wrap LoadAndSave.
func (app *application) lockSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(app.sessionManager.Cookie.Name)
		if err != nil || cookie.Value == "" {
			// A new session is not shared with any other request yet.
			next.ServeHTTP(w, r)
			return
		}
		h := app.sessionLocks.acquire(cookie.Value)
		defer h.release()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), heldSessionKey{}, h)))
	})
}
