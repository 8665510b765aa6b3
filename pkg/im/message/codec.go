package message

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/backkem/matter-im/pkg/tlv"
)

// Message is implemented by every Interaction Model envelope.
type Message interface {
	Opcode() Opcode
	Encode(w *tlv.Writer) error
	Decode(r *tlv.Reader) error
}

// NewMessage returns an empty envelope for op.
func NewMessage(op Opcode) (Message, error) {
	switch op {
	case OpcodeStatusResponse:
		return &StatusResponseMessage{}, nil
	case OpcodeReadRequest:
		return &ReadRequestMessage{}, nil
	case OpcodeSubscribeRequest:
		return &SubscribeRequestMessage{}, nil
	case OpcodeSubscribeResponse:
		return &SubscribeResponseMessage{}, nil
	case OpcodeReportData:
		return &ReportDataMessage{}, nil
	case OpcodeWriteRequest:
		return &WriteRequestMessage{}, nil
	case OpcodeWriteResponse:
		return &WriteResponseMessage{}, nil
	case OpcodeInvokeRequest:
		return &InvokeRequestMessage{}, nil
	case OpcodeInvokeResponse:
		return &InvokeResponseMessage{}, nil
	case OpcodeTimedRequest:
		return &TimedRequestMessage{}, nil
	}
	return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownOpcode, uint8(op))
}

// DecodeMessage decodes payload as the envelope for op. The result aliases
// payload: attribute and command values view the received bytes.
func DecodeMessage(op Opcode, payload []byte) (Message, error) {
	m, err := NewMessage(op)
	if err != nil {
		return nil, err
	}
	r := tlv.NewReader(payload)
	if err := m.Decode(r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", op, err)
	}
	if err := r.Next(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = tlv.ErrTrailingData
		}
		return nil, fmt.Errorf("decode %s: %w", op, err)
	}
	return m, nil
}

// EncodeMessage serializes m. Value providers run during this call.
func EncodeMessage(m Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Encode(tlv.NewWriter(&buf)); err != nil {
		return nil, fmt.Errorf("encode %s: %w", m.Opcode(), err)
	}
	return buf.Bytes(), nil
}
