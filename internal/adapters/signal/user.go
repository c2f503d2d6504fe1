package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/tutorbridge/meetsignal/internal/core"
	"github.com/tutorbridge/meetsignal/internal/domain"
)

func (ctl *Controller) handleJoinUserChannel(cid core.ConnID, data []byte) {
	var p struct {
		Type   string `json:"type"`
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join-user-channel payload")
		return
	}
	uid, err := domain.ParseUserID(p.UserID)
	if err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("cid", string(cid)).Msg("join-user-channel declined")
		return
	}
	ctl.Reg.AssociateUser(uid, cid)
}

func (ctl *Controller) handleLeaveUserChannel(cid core.ConnID, data []byte) {
	var p struct {
		Type   string `json:"type"`
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad leave-user-channel payload")
		return
	}
	ctl.Reg.DissociateUser(domain.UserID(p.UserID))
}
