package types

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// headerLength is the fixed-size prefix of an encoded message:
// version(1) + nonce(4) + origin(4) + sender(32) + destination(4) + recipient(32).
const headerLength = 77

// Message is a Hyperlane message as dispatched by a mailbox.
type Message struct {
	Version     uint8
	Nonce       uint32
	Origin      Domain
	Sender      Address
	Destination Domain
	Recipient   Address
	Body        []byte
}

// Encode returns the canonical packed wire encoding of the message.
func (m Message) Encode() []byte {
	buf := make([]byte, 0, headerLength+len(m.Body))
	buf = append(buf, m.Version)
	buf = binary.BigEndian.AppendUint32(buf, m.Nonce)
	buf = binary.BigEndian.AppendUint32(buf, uint32(m.Origin))
	buf = append(buf, m.Sender.Bytes()...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(m.Destination))
	buf = append(buf, m.Recipient.Bytes()...)
	buf = append(buf, m.Body...)
	return buf
}

// ID returns the keccak256 hash of the encoded message.
func (m Message) ID() [32]byte {
	var id [32]byte
	copy(id[:], crypto.Keccak256(m.Encode()))
	return id
}

// DecodeMessage parses a packed message encoding.
func DecodeMessage(raw []byte) (Message, error) {
	if len(raw) < headerLength {
		return Message{}, fmt.Errorf("message too short: %d bytes, need at least %d", len(raw), headerLength)
	}
	var m Message
	m.Version = raw[0]
	m.Nonce = binary.BigEndian.Uint32(raw[1:5])
	m.Origin = Domain(binary.BigEndian.Uint32(raw[5:9]))
	copy(m.Sender[:], raw[9:41])
	m.Destination = Domain(binary.BigEndian.Uint32(raw[41:45]))
	copy(m.Recipient[:], raw[45:77])
	if len(raw) > headerLength {
		m.Body = append([]byte(nil), raw[headerLength:]...)
	}
	return m, nil
}
