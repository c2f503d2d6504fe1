package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/tutorbridge/meetsignal/internal/core"
)

// SDP and ICE blobs pass through untouched; only the target is read.

func (ctl *Controller) handleOffer(cid core.ConnID, data []byte) {
	var p struct {
		Type   string          `json:"type"`
		Target string          `json:"target"`
		Offer  json.RawMessage `json:"offer"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad offer payload")
		return
	}
	ctl.Coord.RelaySignal(core.KindOffer, cid, core.ConnID(p.Target), p.Offer)
}

func (ctl *Controller) handleAnswer(cid core.ConnID, data []byte) {
	var p struct {
		Type   string          `json:"type"`
		Target string          `json:"target"`
		Answer json.RawMessage `json:"answer"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad answer payload")
		return
	}
	ctl.Coord.RelaySignal(core.KindAnswer, cid, core.ConnID(p.Target), p.Answer)
}

func (ctl *Controller) handleCandidate(cid core.ConnID, data []byte) {
	var p struct {
		Type      string          `json:"type"`
		Target    string          `json:"target"`
		Candidate json.RawMessage `json:"candidate"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad ice-candidate payload")
		return
	}
	ctl.Coord.RelaySignal(core.KindICECandidate, cid, core.ConnID(p.Target), p.Candidate)
}
