// pkg/game/campaign.go
package game

import (
	"fmt"

	"github.com/opd-ai/go-spaceman/pkg/config"
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/scenery"
)

// Campaign describes how a play session starts.
type Campaign struct {
	Name  string
	Ship  string
	Start physics.Vector2D
}

// DevCampaign is the quick start used during development.
func DevCampaign() *Campaign {
	return &Campaign{Name: "dev", Ship: "Skalk", Start: physics.Vec(250, 230)}
}

// BasicStart puts the player in the campaign ship, lays the starfield
// behind it and shows the HUD.
func (c *Campaign) BasicStart(s *Session) error {
	ship, err := s.World.Spawn(c.Ship, c.Start)
	if err != nil {
		return fmt.Errorf("campaign %s: %w", c.Name, err)
	}
	s.Player.Board(ship)

	if s.Starfield == nil {
		s.Starfield = scenery.NewStarfield(
			s.Settings.Width(), s.Settings.Height(),
			s.Settings.Float(config.KeyStarDensity, 1), nil, s.Player,
		)
		s.Engine.AddObject(s.Starfield)
	}
	s.HUD.Show()
	return nil
}
