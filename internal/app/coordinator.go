package app

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tutorbridge/meetsignal/internal/core"
	"github.com/tutorbridge/meetsignal/internal/domain"
)

// Coordinator owns room membership and relays signaling and chat payloads
// among room members. Rooms come into existence on first join and vanish
// when the last member leaves; an empty room is never kept around.
//
// Every operation is total and fire-and-forget: joining twice, leaving
// twice or signaling a dead target all return normally with no effect.
type Coordinator struct {
	reg *Registry
	now func() time.Time

	mu    sync.RWMutex
	rooms map[domain.RoomID]map[core.ConnID]struct{}
}

func NewCoordinator(reg *Registry) *Coordinator {
	return &Coordinator{
		reg:   reg,
		now:   time.Now,
		rooms: make(map[domain.RoomID]map[core.ConnID]struct{}),
	}
}

// JoinRoom adds cid to roomID, creating the room if needed, and tells
// every other member about the newcomer. Re-joining the current room is a
// silent no-op. Joining a different room while still joined leaves the old
// room first, so the one-room-per-connection invariant holds.
func (c *Coordinator) JoinRoom(cid core.ConnID, roomID domain.RoomID) {
	if roomID == "" {
		log.Debug().Str("module", "app.coordinator").Str("cid", string(cid)).Msg("join with empty room id declined")
		return
	}
	if cur, ok := c.reg.RoomOf(cid); ok {
		if cur == roomID {
			return
		}
		c.LeaveRoom(cid)
	}

	c.mu.Lock()
	members, ok := c.rooms[roomID]
	if !ok {
		members = make(map[core.ConnID]struct{})
		c.rooms[roomID] = members
	}
	members[cid] = struct{}{}
	peers := membersExcept(members, cid)
	c.mu.Unlock()

	c.reg.RecordRoomMembership(cid, roomID)

	ev := newParticipantEvent{Type: "new-participant", SocketID: cid}
	for _, p := range peers {
		c.send(p, ev)
	}
	log.Info().Str("module", "app.coordinator").Str("cid", string(cid)).Str("room", string(roomID)).Int("peers", len(peers)).Msg("joined room")
}

// LeaveRoom removes cid from its current room, notifies the remaining
// members and deletes the room once empty. This is the only cleanup path;
// both an explicit leave and a transport disconnect land here.
func (c *Coordinator) LeaveRoom(cid core.ConnID) {
	roomID, ok := c.reg.RoomOf(cid)
	if !ok {
		return
	}

	c.mu.Lock()
	var remaining []core.ConnID
	if members, ok := c.rooms[roomID]; ok {
		delete(members, cid)
		if len(members) == 0 {
			delete(c.rooms, roomID)
		} else {
			remaining = membersExcept(members, cid)
		}
	}
	c.mu.Unlock()

	c.reg.ClearRoomMembership(cid)

	ev := partnerLeftEvent{Type: "partner-left", SocketID: cid}
	for _, p := range remaining {
		c.send(p, ev)
	}
	log.Info().Str("module", "app.coordinator").Str("cid", string(cid)).Str("room", string(roomID)).Int("remaining", len(remaining)).Msg("left room")
}

// RelaySignal forwards an opaque offer/answer/candidate blob to exactly
// one target connection, tagged with the sender. No room check: the peers
// already agreed to talk, and the payload is never inspected. A dead
// target drops the message on the floor.
func (c *Coordinator) RelaySignal(kind core.SignalKind, from, target core.ConnID, payload json.RawMessage) {
	if _, ok := c.reg.Conn(target); !ok {
		log.Debug().Str("module", "app.coordinator").Str("kind", kind.String()).Str("from", string(from)).Str("target", string(target)).Msg("relay target gone, dropped")
		return
	}
	c.send(target, relayEvent(kind, from, payload))
}

// BroadcastRoomMessage fans a chat payload out to every member of roomID,
// the sender included, so everyone renders the same server-confirmed
// message in the same order. A nonexistent room is a silent no-op.
func (c *Coordinator) BroadcastRoomMessage(roomID domain.RoomID, from core.ConnID, sender, text string) {
	c.mu.RLock()
	members, ok := c.rooms[roomID]
	var all []core.ConnID
	if ok {
		all = make([]core.ConnID, 0, len(members))
		for m := range members {
			all = append(all, m)
		}
	}
	c.mu.RUnlock()
	if !ok {
		return
	}

	ev := roomMessageEvent{
		Type:      "room-message",
		Message:   text,
		Sender:    sender,
		Timestamp: c.now().UnixMilli(),
		SocketID:  from,
	}
	for _, m := range all {
		c.send(m, ev)
	}
	log.Debug().Str("module", "app.coordinator").Str("room", string(roomID)).Int("recipients", len(all)).Msg("room message")
}

// Disconnect runs the full cleanup for a dropped transport: leave the
// current room, then forget the connection and its user channel.
func (c *Coordinator) Disconnect(cid core.ConnID) {
	c.LeaveRoom(cid)
	c.reg.Unregister(cid)
}

// RoomInfo is a read-only view for the REST surface.
type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"member_count"`
}

func (c *Coordinator) Rooms() []RoomInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]RoomInfo, 0, len(c.rooms))
	for id, members := range c.rooms {
		out = append(out, RoomInfo{ID: id, MemberCount: len(members)})
	}
	return out
}

func (c *Coordinator) Stats() (rooms, conns int) {
	c.mu.RLock()
	rooms = len(c.rooms)
	c.mu.RUnlock()
	return rooms, c.reg.ConnCount()
}

func (c *Coordinator) send(cid core.ConnID, v any) {
	conn, ok := c.reg.Conn(cid)
	if !ok {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.coordinator").Msg("event marshal")
		return
	}
	if err := conn.TrySend(b); err != nil {
		log.Debug().Err(err).Str("module", "app.coordinator").Str("cid", string(cid)).Msg("send dropped")
	}
}

func membersExcept(members map[core.ConnID]struct{}, skip core.ConnID) []core.ConnID {
	out := make([]core.ConnID, 0, len(members))
	for m := range members {
		if m != skip {
			out = append(out, m)
		}
	}
	return out
}
