package message

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Framing errors.
var (
	// ErrShortHeader is returned when a frame ends inside the exchange header.
	ErrShortHeader = errors.New("im: frame shorter than its exchange header")

	// ErrForeignProtocol is returned when a frame carries another protocol.
	ErrForeignProtocol = errors.New("im: frame is not an Interaction Model message")
)

// Exchange flag bits.
// Matter Core: Section 4.4.3.1
const (
	flagInitiator         uint8 = 0x01
	flagAcknowledgement   uint8 = 0x02
	flagReliability       uint8 = 0x04
	flagSecuredExtensions uint8 = 0x08
	flagVendor            uint8 = 0x10
)

// minHeaderSize covers flags, opcode, exchange id and protocol id.
const minHeaderSize = 6

// ExchangeHeader is the protocol header in front of an IM payload. It
// names the opcode and the exchange the message belongs to.
// Matter Core: Section 4.4.3
type ExchangeHeader struct {
	Opcode     Opcode `yaml:"opcode"`
	ExchangeID uint16 `yaml:"exchangeID"`

	Initiator   bool `yaml:"initiator,omitempty"`
	Reliability bool `yaml:"reliability,omitempty"`

	// AckedCounter is set when the frame piggybacks an acknowledgement.
	AckedCounter *uint32 `yaml:"ackedCounter,omitempty"`
}

// Size returns the encoded header size.
func (h *ExchangeHeader) Size() int {
	if h.AckedCounter != nil {
		return minHeaderSize + 4
	}
	return minHeaderSize
}

func (h *ExchangeHeader) flags() uint8 {
	var f uint8
	if h.Initiator {
		f |= flagInitiator
	}
	if h.AckedCounter != nil {
		f |= flagAcknowledgement
	}
	if h.Reliability {
		f |= flagReliability
	}
	return f
}

// AppendTo appends the encoded header to buf.
func (h *ExchangeHeader) AppendTo(buf []byte) []byte {
	buf = append(buf, h.flags(), uint8(h.Opcode))
	buf = binary.LittleEndian.AppendUint16(buf, h.ExchangeID)
	buf = binary.LittleEndian.AppendUint16(buf, ProtocolID)
	if h.AckedCounter != nil {
		buf = binary.LittleEndian.AppendUint32(buf, *h.AckedCounter)
	}
	return buf
}

// Decode parses the header at the start of data and returns its length.
// Vendor-qualified protocol ids other than the Matter vendor and secured
// extensions are rejected as foreign.
func (h *ExchangeHeader) Decode(data []byte) (int, error) {
	if len(data) < minHeaderSize {
		return 0, ErrShortHeader
	}
	flags := data[0]
	*h = ExchangeHeader{
		Opcode:      Opcode(data[1]),
		ExchangeID:  binary.LittleEndian.Uint16(data[2:]),
		Initiator:   flags&flagInitiator != 0,
		Reliability: flags&flagReliability != 0,
	}
	n := 4

	if flags&flagVendor != 0 {
		if len(data) < n+2 {
			return 0, ErrShortHeader
		}
		if vendor := binary.LittleEndian.Uint16(data[n:]); vendor != 0 {
			return 0, fmt.Errorf("%w: vendor 0x%04x", ErrForeignProtocol, vendor)
		}
		n += 2
	}
	if len(data) < n+2 {
		return 0, ErrShortHeader
	}
	if id := binary.LittleEndian.Uint16(data[n:]); id != ProtocolID {
		return 0, fmt.Errorf("%w: protocol 0x%04x", ErrForeignProtocol, id)
	}
	n += 2

	if flags&flagAcknowledgement != 0 {
		if len(data) < n+4 {
			return 0, ErrShortHeader
		}
		c := binary.LittleEndian.Uint32(data[n:])
		h.AckedCounter = &c
		n += 4
	}
	if flags&flagSecuredExtensions != 0 {
		return 0, fmt.Errorf("%w: secured extensions", ErrForeignProtocol)
	}
	return n, nil
}

// EncodeFrame encodes m behind an exchange header. The header opcode is
// taken from m.
func EncodeFrame(h ExchangeHeader, m Message) ([]byte, error) {
	payload, err := EncodeMessage(m)
	if err != nil {
		return nil, err
	}
	h.Opcode = m.Opcode()
	buf := make([]byte, 0, h.Size()+len(payload))
	return append(h.AppendTo(buf), payload...), nil
}

// DecodeFrame splits a frame into its header and decoded message.
func DecodeFrame(data []byte) (ExchangeHeader, Message, error) {
	var h ExchangeHeader
	n, err := h.Decode(data)
	if err != nil {
		return ExchangeHeader{}, nil, err
	}
	m, err := DecodeMessage(h.Opcode, data[n:])
	if err != nil {
		return ExchangeHeader{}, nil, err
	}
	return h, m, nil
}
