package im

import (
	"context"
	"fmt"
	"sync"

	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/pion/logging"
)

// Outbound is a message the exchange wants sent to the peer. Payload is the
// encoded form of Message.
type Outbound struct {
	Opcode  message.Opcode
	Message message.Message
	Payload []byte
}

// Exchange is one conversation between the engine and a peer. It tracks
// the timed-interaction window, the chunks still waiting for the peer's
// acknowledgement and the chunks of a write being assembled.
type Exchange struct {
	engine *Engine
	log    logging.LeveledLogger

	mu                sync.Mutex
	timed             bool
	pending           []message.Message
	subscribe         *Subscription
	keepSubscriptions bool
	assembler         *Assembler
}

// HandleMessage processes one received message and returns the reply, or
// nil when nothing is to be sent. Protocol failures are answered with a
// StatusResponse; the returned error is reserved for local failures such as
// a cancelled context.
func (x *Exchange) HandleMessage(ctx context.Context, opcode message.Opcode, payload []byte) (*Outbound, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	msg, err := message.DecodeMessage(opcode, payload)
	if err != nil {
		if x.log != nil {
			x.log.Warnf("dropping %s: %v", opcode, err)
		}
		x.abort()
		return x.statusResponse(ErrorToStatus(err))
	}

	if len(x.pending) > 0 {
		return x.handleAck(msg)
	}

	timed := x.timed
	x.timed = false

	if _, ok := msg.(*message.WriteRequestMessage); !ok && x.assembler.IsAssembling() {
		err = fmt.Errorf("%w: %s during a chunked write", ErrUnexpectedMessage, opcode)
		if x.log != nil {
			x.log.Warn(err.Error())
		}
		x.abort()
		return x.statusResponse(ErrorToStatus(err))
	}

	switch m := msg.(type) {
	case *message.StatusResponseMessage:
		if x.log != nil {
			x.log.Debugf("status %s with nothing outstanding", m.Status)
		}
		return nil, nil
	case *message.TimedRequestMessage:
		if x.log != nil {
			x.log.Debugf("timed interaction armed for %dms", m.Timeout)
		}
		x.timed = true
		return x.statusResponse(message.StatusSuccess)
	case *message.ReadRequestMessage:
		return x.handleRead(ctx, m)
	case *message.SubscribeRequestMessage:
		return x.handleSubscribe(ctx, m)
	case *message.WriteRequestMessage:
		return x.handleWrite(ctx, m, timed)
	case *message.InvokeRequestMessage:
		return x.handleInvoke(ctx, m, timed)
	}

	err = fmt.Errorf("%w: %s", ErrUnexpectedMessage, opcode)
	if x.log != nil {
		x.log.Warn(err.Error())
	}
	return x.statusResponse(ErrorToStatus(err))
}

// Close drops any pending chunks and partially assembled write.
func (x *Exchange) Close() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.abort()
	x.timed = false
}

// Pending returns the number of messages waiting for the peer to
// acknowledge the previous one.
func (x *Exchange) Pending() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.pending)
}

// handleAck releases the next pending message on a successful
// StatusResponse. Anything else abandons the interaction.
func (x *Exchange) handleAck(msg message.Message) (*Outbound, error) {
	sr, ok := msg.(*message.StatusResponseMessage)
	if !ok {
		err := fmt.Errorf("%w: %s while chunks are pending", ErrUnexpectedMessage, msg.Opcode())
		if x.log != nil {
			x.log.Warn(err.Error())
		}
		x.abort()
		return x.statusResponse(ErrorToStatus(err))
	}
	if !sr.Status.IsSuccess() {
		if x.log != nil {
			x.log.Debugf("peer aborted chunked interaction: %s", sr.Status)
		}
		x.abort()
		return nil, nil
	}

	next := x.pending[0]
	x.pending = x.pending[1:]
	if _, ok := next.(*message.SubscribeResponseMessage); ok && x.subscribe != nil {
		x.engine.addSubscription(*x.subscribe, x.keepSubscriptions)
		x.subscribe = nil
	}
	return x.send(next)
}

func (x *Exchange) abort() {
	x.pending = nil
	x.subscribe = nil
	x.assembler.Reset()
}

// queue sends the first message and keeps the rest until acknowledged.
func (x *Exchange) queue(msgs ...message.Message) (*Outbound, error) {
	out, err := x.send(msgs[0])
	if err != nil {
		return nil, err
	}
	x.pending = msgs[1:]
	return out, nil
}

func (x *Exchange) send(m message.Message) (*Outbound, error) {
	payload, err := message.EncodeMessage(m)
	if err != nil {
		return nil, err
	}
	return &Outbound{Opcode: m.Opcode(), Message: m, Payload: payload}, nil
}

func (x *Exchange) statusResponse(s message.Status) (*Outbound, error) {
	return x.send(&message.StatusResponseMessage{Status: s})
}
