package im

import (
	"bytes"
	"errors"
	"sync"

	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/backkem/matter-im/pkg/tlv"
)

// ErrChunkingInProgress is returned when a chunk arrives for a different
// message type than the one being assembled.
var ErrChunkingInProgress = errors.New("im: chunk assembly of another message in progress")

const (
	// DefaultMTU is the IPv6 minimum MTU.
	DefaultMTU = 1280

	// MessageHeaderOverhead approximates the message header, protocol
	// header and encryption overhead.
	MessageHeaderOverhead = 100

	// DefaultMaxPayload is the default maximum IM payload per chunk.
	DefaultMaxPayload = DefaultMTU - MessageHeaderOverhead
)

// Bytes taken by each envelope around its array of blocks: structure
// start/end, optional flags, subscription id and the array start/end.
const (
	reportDataOverhead     = 16
	writeRequestOverhead   = 12
	invokeResponseOverhead = 12
)

// ChunkType identifies what type of message is being chunked.
type ChunkType int

const (
	ChunkTypeNone ChunkType = iota
	ChunkTypeWriteRequest
	ChunkTypeReportData
	ChunkTypeInvokeResponse
)

func (t ChunkType) String() string {
	switch t {
	case ChunkTypeNone:
		return "None"
	case ChunkTypeWriteRequest:
		return "WriteRequest"
	case ChunkTypeReportData:
		return "ReportData"
	case ChunkTypeInvokeResponse:
		return "InvokeResponse"
	default:
		return "Unknown"
	}
}

// Assembler collects chunked messages until complete. Each chunk carries
// part of the message's block array; the header fields of the first chunk
// apply to the assembled message.
// Matter Core: Section 10.3.2
type Assembler struct {
	mu        sync.Mutex
	chunkType ChunkType

	writeRequests    []message.AttributeDataIB
	attributeReports []message.AttributeReportIB
	invokeResponses  []message.InvokeResponseIB

	suppressResponse *bool
	timedRequest     *bool
	subscriptionID   *message.SubscriptionID
}

// NewAssembler creates a new chunk assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Reset drops any partially assembled message.
func (a *Assembler) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
}

func (a *Assembler) reset() {
	a.chunkType = ChunkTypeNone
	a.writeRequests = nil
	a.attributeReports = nil
	a.invokeResponses = nil
	a.suppressResponse = nil
	a.timedRequest = nil
	a.subscriptionID = nil
}

// IsAssembling returns true if assembly is in progress.
func (a *Assembler) IsAssembling() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chunkType != ChunkTypeNone
}

// ChunkType returns the message type being assembled.
func (a *Assembler) ChunkType() ChunkType {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chunkType
}

func (a *Assembler) begin(t ChunkType) error {
	switch a.chunkType {
	case ChunkTypeNone:
		a.chunkType = t
		return nil
	case t:
		return nil
	}
	return ErrChunkingInProgress
}

// AddWriteRequest adds a WriteRequest chunk. It returns the assembled
// message and true once the final chunk has been added.
func (a *Assembler) AddWriteRequest(msg *message.WriteRequestMessage) (*message.WriteRequestMessage, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	first := a.chunkType == ChunkTypeNone
	if err := a.begin(ChunkTypeWriteRequest); err != nil {
		return nil, false, err
	}
	if first {
		a.suppressResponse = msg.SuppressResponse
		a.timedRequest = msg.TimedRequest
	}
	a.writeRequests = append(a.writeRequests, msg.WriteRequests...)
	if msg.HasMoreChunks() {
		return nil, false, nil
	}

	result := &message.WriteRequestMessage{
		SuppressResponse: a.suppressResponse,
		TimedRequest:     a.timedRequest,
		WriteRequests:    a.writeRequests,
	}
	a.reset()
	return result, true, nil
}

// AddReportData adds a ReportData chunk.
func (a *Assembler) AddReportData(msg *message.ReportDataMessage) (*message.ReportDataMessage, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	first := a.chunkType == ChunkTypeNone
	if err := a.begin(ChunkTypeReportData); err != nil {
		return nil, false, err
	}
	if first {
		a.subscriptionID = msg.SubscriptionID
	}
	a.attributeReports = append(a.attributeReports, msg.AttributeReports...)
	if msg.HasMoreChunks() {
		return nil, false, nil
	}

	result := &message.ReportDataMessage{
		SubscriptionID:   a.subscriptionID,
		AttributeReports: a.attributeReports,
		SuppressResponse: msg.SuppressResponse,
	}
	a.reset()
	return result, true, nil
}

// AddInvokeResponse adds an InvokeResponse chunk.
func (a *Assembler) AddInvokeResponse(msg *message.InvokeResponseMessage) (*message.InvokeResponseMessage, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	first := a.chunkType == ChunkTypeNone
	if err := a.begin(ChunkTypeInvokeResponse); err != nil {
		return nil, false, err
	}
	if first {
		a.suppressResponse = msg.SuppressResponse
	}
	a.invokeResponses = append(a.invokeResponses, msg.InvokeResponses...)
	if msg.MoreChunkedMessages != nil && *msg.MoreChunkedMessages {
		return nil, false, nil
	}

	result := &message.InvokeResponseMessage{
		SuppressResponse: a.suppressResponse,
		InvokeResponses:  a.invokeResponses,
	}
	a.reset()
	return result, true, nil
}

// Fragmenter splits messages into chunks whose encoding fits maxPayload.
// Blocks are measured by encoding them, so value providers run inside the
// Fragment call and the chunks carry the resulting bytes. A block larger
// than maxPayload on its own is sent alone in its chunk.
type Fragmenter struct {
	maxPayload int
}

// NewFragmenter creates a fragmenter. A non-positive maxPayload selects
// DefaultMaxPayload.
func NewFragmenter(maxPayload int) *Fragmenter {
	if maxPayload <= 0 {
		maxPayload = DefaultMaxPayload
	}
	return &Fragmenter{maxPayload: maxPayload}
}

// MaxPayload returns the chunk size limit.
func (f *Fragmenter) MaxPayload() int {
	return f.maxPayload
}

// FragmentReportData splits msg into ReportData chunks. Every chunk but the
// last sets MoreChunkedMessages and leaves SuppressResponse unset so the
// peer acknowledges it; the last carries msg.SuppressResponse.
func (f *Fragmenter) FragmentReportData(msg *message.ReportDataMessage) ([]*message.ReportDataMessage, error) {
	reports, sizes, err := materializeAll(msg.AttributeReports)
	if err != nil {
		return nil, err
	}

	var chunks []*message.ReportDataMessage
	for _, span := range f.split(sizes, reportDataOverhead) {
		chunks = append(chunks, &message.ReportDataMessage{
			SubscriptionID:      msg.SubscriptionID,
			AttributeReports:    reports[span.start:span.end],
			MoreChunkedMessages: message.Ptr(true),
		})
	}
	last := chunks[len(chunks)-1]
	last.MoreChunkedMessages = nil
	last.SuppressResponse = msg.SuppressResponse
	return chunks, nil
}

// FragmentWriteRequest splits msg into WriteRequest chunks.
func (f *Fragmenter) FragmentWriteRequest(msg *message.WriteRequestMessage) ([]*message.WriteRequestMessage, error) {
	requests, sizes, err := materializeAll(msg.WriteRequests)
	if err != nil {
		return nil, err
	}

	var chunks []*message.WriteRequestMessage
	for _, span := range f.split(sizes, writeRequestOverhead) {
		chunks = append(chunks, &message.WriteRequestMessage{
			SuppressResponse:    msg.SuppressResponse,
			TimedRequest:        msg.TimedRequest,
			WriteRequests:       requests[span.start:span.end],
			MoreChunkedMessages: message.Ptr(true),
		})
	}
	chunks[len(chunks)-1].MoreChunkedMessages = nil
	return chunks, nil
}

// FragmentInvokeResponse splits msg into InvokeResponse chunks.
func (f *Fragmenter) FragmentInvokeResponse(msg *message.InvokeResponseMessage) ([]*message.InvokeResponseMessage, error) {
	responses, sizes, err := materializeAll(msg.InvokeResponses)
	if err != nil {
		return nil, err
	}

	var chunks []*message.InvokeResponseMessage
	for _, span := range f.split(sizes, invokeResponseOverhead) {
		chunks = append(chunks, &message.InvokeResponseMessage{
			SuppressResponse:    msg.SuppressResponse,
			InvokeResponses:     responses[span.start:span.end],
			MoreChunkedMessages: message.Ptr(true),
		})
	}
	chunks[len(chunks)-1].MoreChunkedMessages = nil
	return chunks, nil
}

type span struct {
	start, end int
}

// split groups consecutive block sizes into spans whose total plus overhead
// stays within maxPayload. It always returns at least one span.
func (f *Fragmenter) split(sizes []int, overhead int) []span {
	var spans []span
	cur, size := span{}, overhead
	for i, n := range sizes {
		if cur.end > cur.start && size+n > f.maxPayload {
			spans = append(spans, cur)
			cur, size = span{start: i, end: i}, overhead
		}
		cur.end = i + 1
		size += n
	}
	return append(spans, cur)
}

// codecBlock is satisfied by pointers to IB types.
type codecBlock[T any] interface {
	*T
	EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error
	Decode(r *tlv.Reader) error
}

// materialize encodes b once and decodes the result, returning a copy whose
// values view the encoded bytes along with its encoded size.
func materialize[T any, P codecBlock[T]](b T) (T, int, error) {
	var buf bytes.Buffer
	if err := P(&b).EncodeWithTag(tlv.NewWriter(&buf), tlv.Anonymous()); err != nil {
		var zero T
		return zero, 0, err
	}
	var out T
	if err := P(&out).Decode(tlv.NewReader(buf.Bytes())); err != nil {
		var zero T
		return zero, 0, err
	}
	return out, buf.Len(), nil
}

func materializeAll[T any, P codecBlock[T]](blocks []T) ([]T, []int, error) {
	out := make([]T, len(blocks))
	sizes := make([]int, len(blocks))
	for i, b := range blocks {
		m, n, err := materialize[T, P](b)
		if err != nil {
			return nil, nil, err
		}
		out[i], sizes[i] = m, n
	}
	return out, sizes, nil
}
