package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebsocketDialer is the production Dialer backed by gorilla/websocket.
type WebsocketDialer struct {
	Dialer *websocket.Dialer // nil uses websocket.DefaultDialer
	Header http.Header

	// ReadTimeout, when positive, fails a read that sees no frame or pong for
	// that long, so a stalled socket goes through the normal close path.
	ReadTimeout time.Duration
	// PingInterval, when positive, sends a ping on that interval.
	PingInterval time.Duration
}

func (d *WebsocketDialer) Dial(ctx context.Context, url string) (Conn, error) {
	dialer := d.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	ws, resp, err := dialer.DialContext(ctx, url, d.Header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket handshake with %s: %s: %w", url, resp.Status, err)
		}
		return nil, err
	}

	c := &wsConn{ws: ws, readTimeout: d.ReadTimeout, done: make(chan struct{})}
	if d.ReadTimeout > 0 {
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(d.ReadTimeout))
		})
	}
	if d.PingInterval > 0 {
		go c.pingLoop(d.PingInterval)
	}
	return c, nil
}

type wsConn struct {
	ws          *websocket.Conn
	writeMu     sync.Mutex
	readTimeout time.Duration
	closeOnce   sync.Once
	done        chan struct{}
}

func (c *wsConn) ReadMessage() ([]byte, error) {
	if c.readTimeout > 0 {
		if err := c.ws.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return nil, err
		}
	}
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || errors.Is(err, net.ErrClosed) {
			return nil, io.EOF
		}
		return nil, err
	}
	return data, nil
}

func (c *wsConn) WriteMessage(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *wsConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		err = c.ws.Close()
	})
	return err
}

func (c *wsConn) pingLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(interval)); err != nil {
				return
			}
		}
	}
}
