package http

import (
	"github.com/pion/webrtc/v4"

	"github.com/tutorbridge/meetsignal/internal/config"
)

// ICEServers builds the server list clients plug into their
// RTCPeerConnection configuration. The server itself never opens a peer
// connection; media flows directly between clients.
func ICEServers(cfg *config.Config) []webrtc.ICEServer {
	servers := make([]webrtc.ICEServer, 0, len(cfg.STUNURLs)+1)
	for _, u := range cfg.STUNURLs {
		servers = append(servers, webrtc.ICEServer{URLs: []string{u}})
	}
	if cfg.TURNURL != "" {
		servers = append(servers, webrtc.ICEServer{
			URLs:       []string{cfg.TURNURL},
			Username:   cfg.TURNUser,
			Credential: cfg.TURNPass,
		})
	}
	return servers
}
