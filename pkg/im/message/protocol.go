package message

// ProtocolID is the Interaction Model protocol identifier.
const ProtocolID uint16 = 0x0001

// Opcode identifies an Interaction Model message.
// Matter Core: Section 10.2.1, Table 10-1
type Opcode uint8

const (
	OpcodeStatusResponse    Opcode = 0x01
	OpcodeReadRequest       Opcode = 0x02
	OpcodeSubscribeRequest  Opcode = 0x03
	OpcodeSubscribeResponse Opcode = 0x04
	OpcodeReportData        Opcode = 0x05
	OpcodeWriteRequest      Opcode = 0x06
	OpcodeWriteResponse     Opcode = 0x07
	OpcodeInvokeRequest     Opcode = 0x08
	OpcodeInvokeResponse    Opcode = 0x09
	OpcodeTimedRequest      Opcode = 0x0a
)

var opcodeNames = map[Opcode]string{
	OpcodeStatusResponse:    "StatusResponse",
	OpcodeReadRequest:       "ReadRequest",
	OpcodeSubscribeRequest:  "SubscribeRequest",
	OpcodeSubscribeResponse: "SubscribeResponse",
	OpcodeReportData:        "ReportData",
	OpcodeWriteRequest:      "WriteRequest",
	OpcodeWriteResponse:     "WriteResponse",
	OpcodeInvokeRequest:     "InvokeRequest",
	OpcodeInvokeResponse:    "InvokeResponse",
	OpcodeTimedRequest:      "TimedRequest",
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return "Unknown"
}

// ParseOpcode resolves an opcode by name, as printed by String.
func ParseOpcode(name string) (Opcode, bool) {
	for op, n := range opcodeNames {
		if n == name {
			return op, true
		}
	}
	return 0, false
}
