package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/tutorbridge/meetsignal/internal/core"
	"github.com/tutorbridge/meetsignal/internal/domain"
)

// Registry keeps the bidirectional bookkeeping between durable user
// identity and transient connection identity, plus the conn->room reverse
// index the coordinator needs for O(1) cleanup on disconnect.
//
// All maps are owned here and only mutated through these methods.
type Registry struct {
	mu     sync.RWMutex
	conns  map[core.ConnID]core.SignalConnection
	users  map[domain.UserID]core.ConnID
	userOf map[core.ConnID]domain.UserID
	roomOf map[core.ConnID]domain.RoomID
}

func NewRegistry() *Registry {
	return &Registry{
		conns:  make(map[core.ConnID]core.SignalConnection),
		users:  make(map[domain.UserID]core.ConnID),
		userOf: make(map[core.ConnID]domain.UserID),
		roomOf: make(map[core.ConnID]domain.RoomID),
	}
}

// Register makes a connection addressable for relays and fan-out.
func (r *Registry) Register(cid core.ConnID, conn core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[cid] = conn
	log.Info().Str("module", "app.registry").Str("cid", string(cid)).Msg("connection registered")
}

// Unregister drops the connection and any user channel it owns.
// Room membership is the coordinator's to clear, not ours.
func (r *Registry) Unregister(cid core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if uid, ok := r.userOf[cid]; ok {
		// A reconnect may have superseded this association already;
		// only remove it if it still points at us.
		if cur, ok := r.users[uid]; ok && cur == cid {
			delete(r.users, uid)
		}
		delete(r.userOf, cid)
	}
	delete(r.conns, cid)
	log.Info().Str("module", "app.registry").Str("cid", string(cid)).Msg("connection unregistered")
}

// Conn resolves a connection id to its transport endpoint.
func (r *Registry) Conn(cid core.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[cid]
	return c, ok
}

// AssociateUser records that uid is currently reachable at cid,
// silently superseding any prior association for that user.
func (r *Registry) AssociateUser(uid domain.UserID, cid core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.users[uid]; ok && old != cid {
		delete(r.userOf, old)
	}
	if prev, ok := r.userOf[cid]; ok && prev != uid {
		delete(r.users, prev)
	}
	r.users[uid] = cid
	r.userOf[cid] = uid
	log.Info().Str("module", "app.registry").Str("cid", string(cid)).Str("user", string(uid)).Msg("user channel joined")
}

// DissociateUser removes the association if present; absent is a no-op.
func (r *Registry) DissociateUser(uid domain.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cid, ok := r.users[uid]
	if !ok {
		return
	}
	if owner, ok := r.userOf[cid]; ok && owner == uid {
		delete(r.userOf, cid)
	}
	delete(r.users, uid)
	log.Info().Str("module", "app.registry").Str("cid", string(cid)).Str("user", string(uid)).Msg("user channel left")
}

// ResolveUser returns the connection a user is currently reachable at.
// A missing user is routine, not an error.
func (r *Registry) ResolveUser(uid domain.UserID) (core.ConnID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cid, ok := r.users[uid]
	return cid, ok
}

// RecordRoomMembership sets the reverse-index entry for cid.
func (r *Registry) RecordRoomMembership(cid core.ConnID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roomOf[cid] = room
}

// ClearRoomMembership drops the reverse-index entry for cid.
func (r *Registry) ClearRoomMembership(cid core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roomOf, cid)
}

// RoomOf answers which room cid currently occupies, if any.
func (r *Registry) RoomOf(cid core.ConnID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.roomOf[cid]
	return room, ok
}

// ConnCount reports live connections, for the stats endpoint.
func (r *Registry) ConnCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
