// file: websocket/fake_conn_test.go
package websocket

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mentora-hub/logger"
)

func init() {
	logger.InitNop()
}

// fakeConn implements WSConn. Reads block until a message is queued or the
// connection is closed; text writes are captured.
type fakeConn struct {
	mu      sync.Mutex
	inbound chan []byte
	written chan []byte
	closed  chan struct{}
	once    sync.Once
	pings   int
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		inbound: make(chan []byte, 8),
		written: make(chan []byte, 64),
		closed:  make(chan struct{}),
	}
}

func (fc *fakeConn) WriteMessage(messageType int, data []byte) error {
	select {
	case <-fc.closed:
		return errors.New("closed")
	default:
	}
	switch messageType {
	case websocket.PingMessage:
		fc.mu.Lock()
		fc.pings++
		fc.mu.Unlock()
	case websocket.TextMessage:
		fc.written <- data
	}
	return nil
}

func (fc *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (fc *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case msg := <-fc.inbound:
		return websocket.TextMessage, msg, nil
	case <-fc.closed:
		return 0, nil, errors.New("closed")
	}
}

func (fc *fakeConn) Close() error {
	fc.once.Do(func() { close(fc.closed) })
	return nil
}

func (fc *fakeConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 12345}
}

func (fc *fakeConn) SetReadLimit(int64) {}

func (fc *fakeConn) SetReadDeadline(time.Time) error { return nil }

func (fc *fakeConn) SetPongHandler(func(string) error) {}
