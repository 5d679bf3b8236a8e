package game

import (
	"github.com/planarforge/oracle-server-go/internal/game/events"
	"github.com/planarforge/oracle-server-go/internal/game/turn"
)

var permanentTypes = []string{"Creature", "Artifact", "Enchantment", "Land", "Planeswalker", "Battle"}

// isPreservableExile reports whether an exiled card rides out a restart:
// it must be a permanent type and not an Aura, which would return with
// nothing to enchant.
func isPreservableExile(card *Card) bool {
	if card.HasSubtype("Aura") {
		return false
	}
	for _, t := range permanentTypes {
		if card.HasType(t) {
			return true
		}
	}
	return false
}

// Restart rebuilds the match from scratch, preserving cards the restarting
// source exiled. Every sub-step tolerates missing pieces; a restart must
// never leave the match unplayable.
func (g *GameState) Restart(restarterID, sourceName string) {
	g.Scheduled.Clear()
	for _, player := range g.Players {
		player.Mana.Empty()
	}

	var preserved []*Card
	for _, player := range g.Players {
		exile := player.Zones.Exile
		for _, card := range append([]*Card(nil), exile.Cards...) {
			if card.ExiledWith == sourceName && isPreservableExile(card) {
				exile.Remove(card.ID)
				preserved = append(preserved, card)
			}
		}
	}

	battlefield := make([]string, 0, len(g.Battlefield))
	for _, perm := range g.Battlefield {
		battlefield = append(battlefield, perm.ID)
	}
	for _, id := range battlefield {
		perm := g.FindPermanent(id)
		if perm == nil {
			continue
		}
		if perm.Card.IsCommander {
			if card := g.RemovePermanent(id, ZoneCommand); card != nil {
				if owner := g.Player(card.OwnerID); owner != nil {
					owner.CommanderTax[card.ID] = 0
				}
			}
			continue
		}
		g.RemovePermanent(id, ZoneLibrary)
	}

	for _, player := range g.Players {
		for _, zone := range []*Zone{player.Zones.Hand, player.Zones.Graveyard, player.Zones.Exile} {
			for _, card := range zone.TakeAll() {
				player.Zones.Library.AddBottom(card)
			}
		}
	}

	for _, id := range g.PlayerOrder {
		g.ShuffleLibrary(id)
	}

	for _, player := range g.Players {
		player.Life = g.StartingLife
		player.Poison = 0
		player.Energy = 0
		player.Experience = 0
	}
	for _, id := range g.PlayerOrder {
		g.DrawCards(id, g.OpeningHand)
	}

	g.Turn.Reset(g.Turn.PrecedingPlayer(restarterID), 0)
	if err := g.Delegate.InitializeBeginningPhase(); err != nil {
		g.Turn.ForceState(turn.PhaseBeginning, turn.StepUpkeep)
	}

	for _, card := range preserved {
		card.ExiledWith = ""
		g.EnterBattlefield(card, restarterID)
	}

	g.RestartCount++
	ev := events.New(events.EventGameRestarted, g.GameID, restarterID)
	ev.SourceName = sourceName
	g.publish(ev)
	g.AddMessage("The game restarts", "action")
}
