// Package agent consumes framed Binder transaction captures and hands
// each record to a listener. A capture stream is a sequence of frames,
// each a JSON header line followed by the raw transaction payload:
//
//	{"type":"bshark_transaction_start","code":1,"size":24}\n<24 bytes>
//
// Where the frames come from is up to the caller: a capture file, a
// pipe, or a socket forwarded from a device.
package agent

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("bshark.agent")

// Record types understood by the pump. Frames with other types are
// skipped.
const (
	RecordTransaction = "bshark_transaction_start"
	RecordReply       = "bshark_transaction_reply"
)

// TransactionListener receives capture records. OnTransaction carries
// the full incoming message including its header; OnReply carries the
// reply payload together with the interface descriptor the capture
// tool observed.
type TransactionListener interface {
	OnTransaction(code uint32, data []byte)
	OnReply(code uint32, descriptor string, data []byte)
}

type frameHeader struct {
	Type       string `json:"type"`
	Code       uint32 `json:"code"`
	Descriptor string `json:"descriptor,omitempty"`
	Size       int    `json:"size"`
}

// Agent pumps a capture stream until it ends or Stop is called.
type Agent struct {
	listener TransactionListener
	src      io.Reader
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
	err      error
}

func New(listener TransactionListener) *Agent {
	return &Agent{
		listener: listener,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Attach starts pumping frames from src in a background goroutine.
func (a *Agent) Attach(src io.Reader) {
	a.src = src
	go a.run()
}

// Stop terminates the pump and waits for it to exit. If the source is
// closable it is closed to unblock a pending read. Calling Stop more
// than once, or before Attach, is safe.
func (a *Agent) Stop() {
	a.stopOnce.Do(func() {
		close(a.stopCh)
		if c, ok := a.src.(io.Closer); ok {
			c.Close()
		}
	})
	if a.src == nil {
		return
	}
	<-a.doneCh
}

// Wait blocks until the pump exits and returns its error, if any. A
// stream that ends cleanly yields nil.
func (a *Agent) Wait() error {
	<-a.doneCh
	return a.err
}

func (a *Agent) run() {
	defer close(a.doneCh)

	r := bufio.NewReader(a.src)
	for {
		select {
		case <-a.stopCh:
			return
		default:
		}

		header, payload, err := readFrame(r)
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			select {
			case <-a.stopCh:
				// Read failures after Stop closed the source are
				// expected.
			default:
				a.err = err
				log.Errorf("capture stream: %s", err.Error())
			}
			return
		}

		switch header.Type {
		case RecordTransaction:
			a.listener.OnTransaction(header.Code, payload)
		case RecordReply:
			a.listener.OnReply(header.Code, header.Descriptor, payload)
		default:
			log.Debugf("skipping record of type %q", header.Type)
		}
	}
}

func readFrame(r *bufio.Reader) (*frameHeader, []byte, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) == 0 {
			return nil, nil, io.EOF
		}
		return nil, nil, fmt.Errorf("read frame header: %w", err)
	}

	var header frameHeader
	if err := json.Unmarshal(line, &header); err != nil {
		return nil, nil, fmt.Errorf("parse frame header: %w", err)
	}
	if header.Size < 0 {
		return nil, nil, fmt.Errorf("invalid frame size %d", header.Size)
	}

	payload := make([]byte, header.Size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, nil, fmt.Errorf("read frame payload: %w", err)
	}
	return &header, payload, nil
}
