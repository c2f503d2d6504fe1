package core

// Frame is a raw payload, already encoded for the wire.
type Frame []byte

// ConnID names one live transport session. The adapter assigns it on
// connect and it is never reused after disconnect.
type ConnID string

// SignalConnection abstracts a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
