package message

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestExchangeHeader_Encoding(t *testing.T) {
	acked := uint32(0x01020304)
	tests := []struct {
		name   string
		header ExchangeHeader
		want   []byte
	}{
		{
			name:   "minimal",
			header: ExchangeHeader{Opcode: OpcodeReadRequest, ExchangeID: 0x1234},
			want:   []byte{0x00, 0x02, 0x34, 0x12, 0x01, 0x00},
		},
		{
			name:   "initiator reliable",
			header: ExchangeHeader{Opcode: OpcodeInvokeRequest, ExchangeID: 7, Initiator: true, Reliability: true},
			want:   []byte{0x05, 0x08, 0x07, 0x00, 0x01, 0x00},
		},
		{
			name:   "ack",
			header: ExchangeHeader{Opcode: OpcodeStatusResponse, ExchangeID: 7, AckedCounter: &acked},
			want:   []byte{0x02, 0x01, 0x07, 0x00, 0x01, 0x00, 0x04, 0x03, 0x02, 0x01},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.header.AppendTo(nil)
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("AppendTo = % X, want % X", got, tt.want)
			}
			if len(got) != tt.header.Size() {
				t.Errorf("Size() = %d, encoded %d", tt.header.Size(), len(got))
			}

			var h ExchangeHeader
			n, err := h.Decode(got)
			if err != nil {
				t.Fatal(err)
			}
			if n != len(got) || !reflect.DeepEqual(h, tt.header) {
				t.Errorf("Decode = %+v (%d bytes), want %+v", h, n, tt.header)
			}
		})
	}
}

func TestExchangeHeader_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", []byte{0x00, 0x02, 0x01}, ErrShortHeader},
		{"short ack", []byte{0x02, 0x01, 0x07, 0x00, 0x01, 0x00, 0x04}, ErrShortHeader},
		{"secure channel", []byte{0x00, 0x20, 0x07, 0x00, 0x00, 0x00}, ErrForeignProtocol},
		{"vendor", []byte{0x10, 0x02, 0x07, 0x00, 0xF1, 0xFF, 0x01, 0x00}, ErrForeignProtocol},
		{"matter vendor", []byte{0x10, 0x02, 0x07, 0x00, 0x00, 0x00, 0x01, 0x00}, nil},
		{"secured extensions", []byte{0x08, 0x02, 0x07, 0x00, 0x01, 0x00}, ErrForeignProtocol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h ExchangeHeader
			if _, err := h.Decode(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("Decode error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFrame(t *testing.T) {
	msg := &TimedRequestMessage{Timeout: 500}
	frame, err := EncodeFrame(ExchangeHeader{ExchangeID: 9, Initiator: true, Opcode: OpcodeReportData}, msg)
	if err != nil {
		t.Fatal(err)
	}
	if frame[1] != byte(OpcodeTimedRequest) {
		t.Errorf("frame opcode = 0x%02x, want the message opcode", frame[1])
	}

	h, got, err := DecodeFrame(frame)
	if err != nil {
		t.Fatal(err)
	}
	if h.ExchangeID != 9 || !h.Initiator || h.Opcode != OpcodeTimedRequest {
		t.Errorf("header = %+v", h)
	}
	if !reflect.DeepEqual(got, msg) {
		t.Errorf("message = %+v, want %+v", got, msg)
	}

	if _, _, err := DecodeFrame(frame[:7]); err == nil {
		t.Error("truncated payload should fail")
	}
}
