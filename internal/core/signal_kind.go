package core

// SignalKind selects the outbound event name for a relayed signaling
// payload. The payload itself stays opaque end to end.
type SignalKind int

const (
	KindOffer SignalKind = iota
	KindAnswer
	KindICECandidate
)

func (k SignalKind) String() string {
	switch k {
	case KindOffer:
		return "offer"
	case KindAnswer:
		return "answer"
	case KindICECandidate:
		return "ice-candidate"
	}
	return "unknown"
}

// PayloadField is the JSON key the relayed blob travels under.
func (k SignalKind) PayloadField() string {
	switch k {
	case KindOffer:
		return "offer"
	case KindAnswer:
		return "answer"
	case KindICECandidate:
		return "candidate"
	}
	return "payload"
}
