package stream

import (
	"errors"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/normalizer"
)

var (
	// ErrMalformedFrame marks an inbound frame that could not be decoded. The
	// frame is dropped and the connection is unaffected.
	ErrMalformedFrame = normalizer.ErrMalformedFrame

	// ErrConnection is the transport error surfaced to subscribers through
	// OnError. Recovery is driven by the close path that always follows it.
	ErrConnection = errors.New("telemetry connection error")

	// ErrReconnectExhausted is surfaced once the retry budget is spent. The
	// connection stays closed until a new subscription starts a fresh cycle.
	ErrReconnectExhausted = errors.New("telemetry reconnect attempts exhausted")

	// ErrNotConnected is returned by SendCommand when the stream is not open.
	ErrNotConnected = errors.New("telemetry stream not connected")
)
