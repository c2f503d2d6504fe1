package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorbridge/meetsignal/internal/core"
	"github.com/tutorbridge/meetsignal/internal/domain"
)

func TestRegistry_UserChannel(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *Registry)
		resolve  domain.UserID
		wantCID  core.ConnID
		wantLive bool
	}{
		{
			name: "associate then resolve",
			setup: func(r *Registry) {
				r.AssociateUser("u1", "c1")
			},
			resolve:  "u1",
			wantCID:  "c1",
			wantLive: true,
		},
		{
			name: "reconnect supersedes old association",
			setup: func(r *Registry) {
				r.AssociateUser("u1", "c1")
				r.AssociateUser("u1", "c2")
			},
			resolve:  "u1",
			wantCID:  "c2",
			wantLive: true,
		},
		{
			name: "dissociate removes it",
			setup: func(r *Registry) {
				r.AssociateUser("u1", "c1")
				r.DissociateUser("u1")
			},
			resolve:  "u1",
			wantLive: false,
		},
		{
			name:     "unknown user is routine, not an error",
			setup:    func(r *Registry) {},
			resolve:  "ghost",
			wantLive: false,
		},
		{
			name: "dissociating an absent user is a no-op",
			setup: func(r *Registry) {
				r.DissociateUser("nobody")
				r.AssociateUser("u1", "c1")
			},
			resolve:  "u1",
			wantCID:  "c1",
			wantLive: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			tt.setup(r)

			cid, ok := r.ResolveUser(tt.resolve)
			assert.Equal(t, tt.wantLive, ok)
			if tt.wantLive {
				assert.Equal(t, tt.wantCID, cid)
			}
		})
	}
}

func TestRegistry_UnregisterDropsOwnedChannelOnly(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", &mockConn{})
	r.Register("c2", &mockConn{})

	r.AssociateUser("u1", "c1")
	// u1 reconnects on c2 before c1's transport notices it is gone.
	r.AssociateUser("u1", "c2")

	r.Unregister("c1")

	cid, ok := r.ResolveUser("u1")
	require.True(t, ok, "late disconnect of a superseded connection must not evict the user")
	assert.Equal(t, core.ConnID("c2"), cid)

	r.Unregister("c2")
	_, ok = r.ResolveUser("u1")
	assert.False(t, ok)
}

func TestRegistry_ReverseIndex(t *testing.T) {
	r := NewRegistry()

	_, ok := r.RoomOf("c1")
	assert.False(t, ok)

	r.RecordRoomMembership("c1", "R1")
	room, ok := r.RoomOf("c1")
	require.True(t, ok)
	assert.Equal(t, domain.RoomID("R1"), room)

	r.RecordRoomMembership("c1", "R2")
	room, _ = r.RoomOf("c1")
	assert.Equal(t, domain.RoomID("R2"), room)

	r.ClearRoomMembership("c1")
	_, ok = r.RoomOf("c1")
	assert.False(t, ok)

	// Clearing twice stays quiet.
	r.ClearRoomMembership("c1")
}

func TestRegistry_ConnLifecycle(t *testing.T) {
	r := NewRegistry()
	c := &mockConn{}

	r.Register("c1", c)
	got, ok := r.Conn("c1")
	require.True(t, ok)
	assert.Same(t, c, got.(*mockConn))
	assert.Equal(t, 1, r.ConnCount())

	r.Unregister("c1")
	_, ok = r.Conn("c1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.ConnCount())
}
