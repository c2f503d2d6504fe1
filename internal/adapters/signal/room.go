package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/tutorbridge/meetsignal/internal/core"
	"github.com/tutorbridge/meetsignal/internal/domain"
)

func (ctl *Controller) handleJoinRoom(cid core.ConnID, data []byte) {
	var p struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join-room payload")
		return
	}
	roomID, err := domain.ParseRoomID(p.RoomID)
	if err != nil {
		// Malformed room id: decline, log, don't crash and don't action it.
		log.Debug().Err(err).Str("module", "signal").Str("cid", string(cid)).Msg("join-room declined")
		return
	}
	ctl.Coord.JoinRoom(cid, roomID)
}

func (ctl *Controller) handleLeaveRoom(cid core.ConnID) {
	ctl.Coord.LeaveRoom(cid)
}

func (ctl *Controller) handleRoomMessage(cid core.ConnID, data []byte) {
	var p struct {
		Type    string `json:"type"`
		RoomID  string `json:"roomId"`
		Message string `json:"message"`
		Sender  string `json:"sender"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad send-room-message payload")
		return
	}
	ctl.Coord.BroadcastRoomMessage(domain.RoomID(p.RoomID), cid, p.Sender, p.Message)
}
