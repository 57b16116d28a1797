package stream

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/monitor"
)

// CommandMessage is the outbound wire frame.
type CommandMessage struct {
	Type      string         `json:"type"`
	Command   string         `json:"command"`
	Params    map[string]any `json:"params"`
	Timestamp int64          `json:"timestamp"` // epoch milliseconds
}

// Command names understood by the telemetry backend.
const (
	CommandSubscribe   = "subscribe"
	CommandUnsubscribe = "unsubscribe"
)

// SendCommand writes a command frame if the stream is open. Otherwise the
// command is dropped, not queued, and ErrNotConnected is returned.
func (c *Client) SendCommand(command string, params map[string]any) error {
	c.mu.Lock()
	conn, open := c.conn, c.state == StateOpen
	c.mu.Unlock()

	if !open || conn == nil {
		c.logger.Printf("telemetry stream: dropping command %q: not connected", command)
		c.emitEvent(monitor.NewCommandDropped(command, "not_connected"))
		return ErrNotConnected
	}

	if params == nil {
		params = map[string]any{}
	}
	data, err := json.Marshal(CommandMessage{
		Type:      "command",
		Command:   command,
		Params:    params,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		c.emitEvent(monitor.NewCommandDropped(command, "encode_failed"))
		return fmt.Errorf("encode command %q: %w", command, err)
	}

	if err := conn.WriteMessage(data); err != nil {
		c.logger.Printf("telemetry stream: dropping command %q: %v", command, err)
		c.emitEvent(monitor.NewCommandDropped(command, "write_failed"))
		return fmt.Errorf("%w: write command %q: %v", ErrConnection, command, err)
	}
	c.emitEvent(monitor.NewCommandSent(command))
	return nil
}

// SubscribeVehicle asks the backend to stream the given vehicle.
func (c *Client) SubscribeVehicle(vehicleID string) error {
	return c.SendCommand(CommandSubscribe, map[string]any{"vehicle_id": vehicleID})
}

// UnsubscribeVehicle asks the backend to stop streaming the given vehicle.
func (c *Client) UnsubscribeVehicle(vehicleID string) error {
	return c.SendCommand(CommandUnsubscribe, map[string]any{"vehicle_id": vehicleID})
}
