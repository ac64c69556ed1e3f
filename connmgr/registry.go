// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package connmgr

import (
	"sync"

	"github.com/btcguild/bchannel/channel"
	"github.com/btcguild/bchannel/channelerr"
)

// Registry is a thread-safe set of live channels, keyed for uniqueness by
// both authority and nonce. A stopped Registry never accepts another Store
// and, once its member list is copied out for Stop, is frozen for good.
type Registry struct {
	mu      sync.RWMutex
	members []*channel.Channel
	stopped bool
}

// NewRegistry returns an empty, running Registry sized to hold n members
// without early reallocation.
func NewRegistry(n int) *Registry {
	return &Registry{members: make([]*channel.Channel, 0, n)}
}

// Store adds ch to the registry unless the registry has stopped or an
// existing member shares ch's authority or nonce.
func (r *Registry) Store(ch *channel.Channel) error {
	r.mu.RLock()
	stopped := r.stopped
	found := !stopped && r.findLocked(ch)
	r.mu.RUnlock()

	if stopped {
		return channelerr.ErrServiceStopped
	}
	if found {
		return channelerr.ErrAddressInUse
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return channelerr.ErrServiceStopped
	}
	if r.findLocked(ch) {
		return channelerr.ErrAddressInUse
	}
	r.members = append(r.members, ch)
	log.Debugf("Stored channel for %s (%d total)", ch.Authority(), len(r.members))
	return nil
}

// findLocked reports whether any current member shares ch's authority or
// nonce. Callers must hold r.mu (read or write).
func (r *Registry) findLocked(ch *channel.Channel) bool {
	for _, m := range r.members {
		if m.Authority() == ch.Authority() || m.Nonce() == ch.Nonce() {
			return true
		}
	}
	return false
}

// Remove deletes ch from the registry. It is idempotent: removing a channel
// that is not a member (or is already removed) returns not_found rather
// than panicking or erroring destructively.
func (r *Registry) Remove(ch *channel.Channel) error {
	r.mu.RLock()
	idx := r.indexOfLocked(ch)
	r.mu.RUnlock()

	if idx < 0 {
		return channelerr.ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx = r.indexOfLocked(ch)
	if idx < 0 {
		return channelerr.ErrNotFound
	}
	r.members = append(r.members[:idx], r.members[idx+1:]...)
	log.Debugf("Removed channel for %s (%d total)", ch.Authority(), len(r.members))
	return nil
}

func (r *Registry) indexOfLocked(ch *channel.Channel) int {
	for i, m := range r.members {
		if m == ch {
			return i
		}
	}
	return -1
}

// Exists reports whether any member has the given authority.
func (r *Registry) Exists(authority channel.Authority) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members {
		if m.Authority() == authority {
			return true
		}
	}
	return false
}

// Count returns the current number of members.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Stop marks the registry stopped, so no further Store succeeds, then stops
// every current member with ec. The member list is copied and cleared under
// the lock; each channel is stopped outside the lock because a channel's
// stop subscribers typically call back into Remove, which would deadlock
// against a held write lock.
func (r *Registry) Stop(ec error) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	members := r.members
	r.members = nil
	r.mu.Unlock()

	log.Infof("Stopping registry (%d channels)", len(members))
	for _, m := range members {
		m.Stop(ec)
	}
}
