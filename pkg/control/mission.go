package control

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/normalizer"
)

// Waypoint is one mission item. Alt is meters above home, Speed m/s, Hold
// seconds.
type Waypoint struct {
	Lat   float64 `yaml:"lat" json:"lat"`
	Lon   float64 `yaml:"lon" json:"lon"`
	Alt   float64 `yaml:"alt" json:"alt"`
	Speed float64 `yaml:"speed,omitempty" json:"speed,omitempty"`
	Hold  float64 `yaml:"hold,omitempty" json:"hold,omitempty"`
}

// MissionPlan is an ordered list of waypoints.
type MissionPlan struct {
	Name      string     `yaml:"name" json:"name,omitempty"`
	Waypoints []Waypoint `yaml:"waypoints" json:"waypoints"`
}

// Validate checks every waypoint.
func (p MissionPlan) Validate() error {
	if len(p.Waypoints) == 0 {
		return errors.New("control: mission has no waypoints")
	}
	for i, wp := range p.Waypoints {
		if !normalizer.ValidCoordinate(wp.Lat, wp.Lon) {
			return fmt.Errorf("control: waypoint %d: invalid coordinate %v,%v", i, wp.Lat, wp.Lon)
		}
		if wp.Alt < 0 {
			return fmt.Errorf("control: waypoint %d: negative altitude", i)
		}
		if wp.Speed < 0 || wp.Hold < 0 {
			return fmt.Errorf("control: waypoint %d: negative speed or hold", i)
		}
	}
	return nil
}

// LoadMissionFile reads and validates a YAML mission plan.
func LoadMissionFile(path string) (MissionPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MissionPlan{}, err
	}
	var plan MissionPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return MissionPlan{}, fmt.Errorf("control: parse %s: %w", path, err)
	}
	if err := plan.Validate(); err != nil {
		return MissionPlan{}, err
	}
	return plan, nil
}
