package parcel

import "fmt"

// EnvSystem is the environment marker ("TSYS" little-endian) Android 11
// and later write into transaction headers.
const EnvSystem uint32 = 0x53595354

// IncomingMessage is the header of a transaction received by a binder
// service. Which header fields exist depends on the Android version
// that produced the transaction.
type IncomingMessage struct {
	StrictModePolicy uint32
	WorkSourceUID    uint32
	Environment      uint32
	Descriptor       string
	Data             []byte
}

// ParseIncoming splits a raw incoming transaction into its header and
// payload. The interface descriptor identifies the binder interface
// the payload belongs to.
func ParseIncoming(data []byte, androidVersion int) (*IncomingMessage, error) {
	r := NewReader(data)

	msg := &IncomingMessage{}
	msg.StrictModePolicy = r.Uint32()
	switch {
	case androidVersion >= 11:
		msg.WorkSourceUID = r.Uint32()
		msg.Environment = r.Uint32()
	case androidVersion == 10:
		msg.WorkSourceUID = r.Uint32()
	}
	msg.Descriptor = r.String16()

	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("parse transaction header: %w", err)
	}
	msg.Data = r.Remaining()
	return msg, nil
}

// OutgoingMessage is a transaction reply. Replies carry no descriptor
// on the wire; the caller supplies the interface it talked to.
type OutgoingMessage struct {
	Descriptor string
	Data       []byte
}

func NewOutgoing(descriptor string, data []byte) *OutgoingMessage {
	return &OutgoingMessage{Descriptor: descriptor, Data: data}
}
