package game

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/planarforge/oracle-server-go/internal/game/events"
)

// TokenSpec describes the tokens a handler wants on the battlefield.
type TokenSpec struct {
	Name      string
	Power     int
	Toughness int
	Colors    []string
	Types     []string
	Subtypes  []string
	Abilities []string
	Tapped    bool
}

// TreasureSpec is the predefined Treasure artifact token.
func TreasureSpec() TokenSpec {
	return TokenSpec{
		Name:      "Treasure Token",
		Types:     []string{"Artifact"},
		Subtypes:  []string{"Treasure"},
		Abilities: []string{"{T}, Sacrifice this artifact: Add one mana of any color."},
	}
}

// FoodSpec is the predefined Food artifact token.
func FoodSpec() TokenSpec {
	return TokenSpec{
		Name:      "Food Token",
		Types:     []string{"Artifact"},
		Subtypes:  []string{"Food"},
		Abilities: []string{"{2}, {T}, Sacrifice this artifact: You gain 3 life."},
	}
}

// ClueSpec is the predefined Clue artifact token investigate creates.
func ClueSpec() TokenSpec {
	return TokenSpec{
		Name:      "Clue Token",
		Types:     []string{"Artifact"},
		Subtypes:  []string{"Clue"},
		Abilities: []string{"{2}, Sacrifice this artifact: Draw a card."},
	}
}

// CreateTokens puts count new token permanents onto the battlefield under
// the given controller and returns their permanent ids. Each token gets its
// own brand-new card identity; the requested ability list is attached
// verbatim.
func (g *GameState) CreateTokens(controllerID string, count int, spec TokenSpec) []string {
	player := g.Player(controllerID)
	if player == nil || count <= 0 {
		return nil
	}
	types := spec.Types
	if len(types) == 0 {
		types = []string{"Creature"}
	}
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		card := &Card{
			ID:       uuid.NewString(),
			Name:     spec.Name,
			Types:    append([]string(nil), types...),
			Subtypes: append([]string(nil), spec.Subtypes...),
			Colors:   append([]string(nil), spec.Colors...),
			Keywords: append([]string(nil), spec.Abilities...),
			OwnerID:  controllerID,
			Token:    true,
		}
		if spec.Power != 0 || spec.Toughness != 0 || card.HasType("Creature") {
			card.Power = strconv.Itoa(spec.Power)
			card.Toughness = strconv.Itoa(spec.Toughness)
		}
		g.Cards[card.ID] = card
		perm := g.EnterBattlefield(card, controllerID)
		perm.Tapped = spec.Tapped
		ids = append(ids, perm.ID)
	}
	ev := events.New(events.EventTokenCreated, g.GameID, controllerID)
	ev.Amount = count
	ev.Description = spec.Name
	g.publish(ev)
	g.AddMessage(fmt.Sprintf("%s creates %d %s(s)", player.Name, count, spec.Name), "action")
	return ids
}

// CreateEmblem adds a player-scoped emblem carrying the quoted abilities.
func (g *GameState) CreateEmblem(controllerID, sourceName string, abilities []string) *Emblem {
	player := g.Player(controllerID)
	if player == nil {
		return nil
	}
	emblem := &Emblem{
		ID:           uuid.NewString(),
		ControllerID: controllerID,
		SourceName:   sourceName,
		Abilities:    append([]string(nil), abilities...),
	}
	g.Emblems = append(g.Emblems, emblem)
	ev := events.New(events.EventEmblemCreated, g.GameID, controllerID)
	ev.SourceName = sourceName
	g.publish(ev)
	g.AddMessage(fmt.Sprintf("%s gets an emblem from %s", player.Name, sourceName), "action")
	return emblem
}
