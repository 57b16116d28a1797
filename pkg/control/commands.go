package control

import (
	"context"
	"errors"
	"math"
	"net/http"
)

// CommandResult is the acknowledgement returned by vehicle commands.
type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// MissionStatus reports mission progress for one vehicle.
type MissionStatus struct {
	VehicleID       string `json:"vehicle_id,omitempty"`
	State           string `json:"state"`
	CurrentWaypoint int    `json:"current_waypoint"`
	TotalWaypoints  int    `json:"total_waypoints"`
}

func (c *Client) command(ctx context.Context, vehicleID string, body any, parts ...string) (CommandResult, error) {
	path, err := vehiclePath(vehicleID, parts...)
	if err != nil {
		return CommandResult{}, err
	}
	var resp CommandResult
	if err := c.doJSON(ctx, http.MethodPost, path, body, &resp); err != nil {
		return CommandResult{}, err
	}
	return resp, nil
}

func (c *Client) Arm(ctx context.Context, vehicleID string) (CommandResult, error) {
	return c.command(ctx, vehicleID, nil, "arm")
}

func (c *Client) Disarm(ctx context.Context, vehicleID string) (CommandResult, error) {
	return c.command(ctx, vehicleID, nil, "disarm")
}

// Takeoff climbs to altitude meters above home.
func (c *Client) Takeoff(ctx context.Context, vehicleID string, altitude float64) (CommandResult, error) {
	if altitude <= 0 || math.IsNaN(altitude) || math.IsInf(altitude, 0) {
		return CommandResult{}, errors.New("control: takeoff altitude must be positive")
	}
	return c.command(ctx, vehicleID, map[string]any{"altitude": altitude}, "takeoff")
}

func (c *Client) Land(ctx context.Context, vehicleID string) (CommandResult, error) {
	return c.command(ctx, vehicleID, nil, "land")
}

func (c *Client) ReturnToLaunch(ctx context.Context, vehicleID string) (CommandResult, error) {
	return c.command(ctx, vehicleID, nil, "rtl")
}

func (c *Client) StartMission(ctx context.Context, vehicleID string) (CommandResult, error) {
	return c.command(ctx, vehicleID, nil, "mission", "start")
}

func (c *Client) PauseMission(ctx context.Context, vehicleID string) (CommandResult, error) {
	return c.command(ctx, vehicleID, nil, "mission", "pause")
}

func (c *Client) StopMission(ctx context.Context, vehicleID string) (CommandResult, error) {
	return c.command(ctx, vehicleID, nil, "mission", "stop")
}

// UploadMission validates plan and replaces the vehicle's mission with it.
func (c *Client) UploadMission(ctx context.Context, vehicleID string, plan MissionPlan) (CommandResult, error) {
	if err := plan.Validate(); err != nil {
		return CommandResult{}, err
	}
	return c.command(ctx, vehicleID, plan, "mission")
}

func (c *Client) MissionStatus(ctx context.Context, vehicleID string) (MissionStatus, error) {
	path, err := vehiclePath(vehicleID, "mission", "status")
	if err != nil {
		return MissionStatus{}, err
	}
	var status MissionStatus
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &status); err != nil {
		return MissionStatus{}, err
	}
	return status, nil
}
