package game

import (
	"fmt"

	"github.com/planarforge/oracle-server-go/internal/game/counters"
	"github.com/planarforge/oracle-server-go/internal/game/events"
)

// DrawCards moves up to n cards from the top of the player's library to
// their hand and returns how many actually moved. Drawing from an empty
// library is a no-op here; losing the game for it is the state-based sweep's
// business, not the effect engine's.
func (g *GameState) DrawCards(playerID string, n int) int {
	player := g.Player(playerID)
	if player == nil || n <= 0 {
		return 0
	}
	drawn := 0
	for i := 0; i < n; i++ {
		card := player.Zones.Library.TakeTop()
		if card == nil {
			break
		}
		player.Zones.Hand.AddBottom(card)
		drawn++
	}
	if drawn > 0 {
		ev := events.New(events.EventDrewCard, g.GameID, playerID)
		ev.Amount = drawn
		g.publish(ev)
		g.AddMessage(fmt.Sprintf("%s draws %d card(s)", player.Name, drawn), "action")
	}
	return drawn
}

// Mill moves up to n cards from the top of the player's library into their
// graveyard and returns the milled cards.
func (g *GameState) Mill(playerID string, n int) []*Card {
	player := g.Player(playerID)
	if player == nil || n <= 0 {
		return nil
	}
	var milled []*Card
	for i := 0; i < n; i++ {
		card := player.Zones.Library.TakeTop()
		if card == nil {
			break
		}
		player.Zones.Graveyard.AddTop(card)
		milled = append(milled, card)
	}
	if len(milled) > 0 {
		ev := events.New(events.EventMilledCard, g.GameID, playerID)
		ev.Amount = len(milled)
		g.publish(ev)
		g.AddMessage(fmt.Sprintf("%s mills %d card(s)", player.Name, len(milled)), "action")
	}
	return milled
}

// Discard moves the named card from the player's hand to their graveyard.
func (g *GameState) Discard(playerID, cardID string) bool {
	player := g.Player(playerID)
	if player == nil {
		return false
	}
	card := player.Zones.Hand.Remove(cardID)
	if card == nil {
		return false
	}
	player.Zones.Graveyard.AddTop(card)
	ev := events.New(events.EventDiscardedCard, g.GameID, playerID)
	ev.TargetID = card.ID
	ev.Description = card.Name
	g.publish(ev)
	g.AddMessage(fmt.Sprintf("%s discards %s", player.Name, card.Name), "action")
	return true
}

// ShuffleLibrary shuffles the player's library with the match's seeded
// random source.
func (g *GameState) ShuffleLibrary(playerID string) {
	player := g.Player(playerID)
	if player == nil {
		return
	}
	lib := player.Zones.Library.Cards
	g.Rand.Shuffle(len(lib), func(i, j int) {
		lib[i], lib[j] = lib[j], lib[i]
	})
	g.publish(events.New(events.EventLibraryShuffled, g.GameID, playerID))
}

// findCardZone locates a card in some player's zone set.
func (g *GameState) findCardZone(cardID string) (*Player, ZoneName) {
	for _, id := range g.PlayerOrder {
		player := g.Players[id]
		for _, name := range []ZoneName{ZoneHand, ZoneLibrary, ZoneGraveyard, ZoneExile, ZoneCommand} {
			if player.Zones.Zone(name).Contains(cardID) {
				return player, name
			}
		}
	}
	return nil, ""
}

// MoveCardToZone moves a card from wherever it currently is into the named
// zone of its owner. Battlefield moves go through EnterBattlefield so the
// card is wrapped into a fresh permanent. Libraries receive on top,
// graveyards on top, everything else appends.
func (g *GameState) MoveCardToZone(card *Card, to ZoneName) bool {
	if card == nil {
		return false
	}
	owner := g.Player(card.OwnerID)
	if owner == nil {
		return false
	}

	var from ZoneName
	if perm := g.FindPermanent(card.ID); perm != nil {
		from = ZoneBattlefield
		g.detachAndUnschedule(perm)
		g.removeFromBattlefield(perm)
		if perm.Token {
			delete(g.Cards, card.ID)
			g.publishZoneChange(card, ZoneBattlefield, "")
			return true
		}
	} else if holder, name := g.findCardZone(card.ID); holder != nil {
		from = name
		holder.Zones.Zone(name).Remove(card.ID)
	}

	if to != ZoneExile {
		card.ExiledWith = ""
	}

	switch to {
	case ZoneBattlefield:
		g.EnterBattlefield(card, card.OwnerID)
	case ZoneLibrary, ZoneGraveyard:
		owner.Zones.Zone(to).AddTop(card)
	default:
		zone := owner.Zones.Zone(to)
		if zone == nil {
			return false
		}
		zone.AddBottom(card)
	}
	g.publishZoneChange(card, from, to)
	return true
}

func (g *GameState) publishZoneChange(card *Card, from, to ZoneName) {
	ev := events.New(events.EventZoneChange, g.GameID, card.OwnerID)
	ev.TargetID = card.ID
	ev.Description = card.Name
	ev.Data = map[string]string{"from": string(from), "to": string(to)}
	g.publish(ev)
}

func (g *GameState) removeFromBattlefield(perm *Permanent) {
	for i, p := range g.Battlefield {
		if p.ID == perm.ID {
			g.Battlefield = append(g.Battlefield[:i], g.Battlefield[i+1:]...)
			return
		}
	}
}

// detachAndUnschedule severs attachment links and drops every scheduled
// record keyed to the leaving permanent.
func (g *GameState) detachAndUnschedule(perm *Permanent) {
	for _, attID := range perm.Attachments {
		if att := g.FindPermanent(attID); att != nil {
			att.AttachedTo = ""
		}
	}
	if perm.AttachedTo != "" {
		if host := g.FindPermanent(perm.AttachedTo); host != nil {
			for i, id := range host.Attachments {
				if id == perm.ID {
					host.Attachments = append(host.Attachments[:i], host.Attachments[i+1:]...)
					break
				}
			}
		}
	}
	g.Scheduled.DropByPermanent(perm.ID)
}

// RemovePermanent takes a permanent off the battlefield and puts its card
// into the named zone of the card's owner. Tokens cease to exist instead.
// Returns the card, or nil for a token or an unknown id.
func (g *GameState) RemovePermanent(permanentID string, to ZoneName) *Card {
	perm := g.FindPermanent(permanentID)
	if perm == nil {
		return nil
	}
	card := perm.Card
	g.detachAndUnschedule(perm)
	g.removeFromBattlefield(perm)
	if perm.Token {
		delete(g.Cards, card.ID)
		g.publishZoneChange(card, ZoneBattlefield, "")
		return nil
	}
	owner := g.Player(card.OwnerID)
	if owner == nil {
		return nil
	}
	if to != ZoneExile {
		card.ExiledWith = ""
	}
	switch to {
	case ZoneLibrary, ZoneGraveyard:
		owner.Zones.Zone(to).AddTop(card)
	default:
		zone := owner.Zones.Zone(to)
		if zone == nil {
			return nil
		}
		zone.AddBottom(card)
	}
	g.publishZoneChange(card, ZoneBattlefield, to)
	return card
}

// DestroyPermanent destroys a battlefield permanent. A regeneration shield
// replaces the destruction when regeneration is allowed: the permanent taps,
// its damage clears, and it stays put.
func (g *GameState) DestroyPermanent(permanentID string, canRegenerate bool) bool {
	perm := g.FindPermanent(permanentID)
	if perm == nil {
		return false
	}
	if canRegenerate && perm.RegenerationShields > 0 {
		perm.RegenerationShields--
		perm.Tapped = true
		perm.Damage = 0
		perm.DamageSources = make(map[string]int)
		g.AddMessage(fmt.Sprintf("%s regenerates", perm.Name), "action")
		return true
	}
	name := perm.Name
	controller := perm.ControllerID
	g.RemovePermanent(perm.ID, ZoneGraveyard)
	ev := events.New(events.EventDestroyed, g.GameID, controller)
	ev.TargetID = permanentID
	ev.Description = name
	g.publish(ev)
	g.AddMessage(fmt.Sprintf("%s is destroyed", name), "action")
	return true
}

// SacrificePermanent moves a permanent its controller sacrifices to the
// graveyard. Sacrifice ignores regeneration.
func (g *GameState) SacrificePermanent(permanentID string) bool {
	perm := g.FindPermanent(permanentID)
	if perm == nil {
		return false
	}
	name := perm.Name
	controller := perm.ControllerID
	g.RemovePermanent(perm.ID, ZoneGraveyard)
	ev := events.New(events.EventSacrificed, g.GameID, controller)
	ev.TargetID = permanentID
	ev.Description = name
	g.publish(ev)
	who := controller
	if player := g.Player(controller); player != nil {
		who = player.Name
	}
	g.AddMessage(fmt.Sprintf("%s sacrifices %s", who, name), "action")
	return true
}

// ExilePermanent exiles a permanent, tagging the card with the exiling
// source so a restart can tell preserved cards apart.
func (g *GameState) ExilePermanent(permanentID, exiledWith string) *Card {
	perm := g.FindPermanent(permanentID)
	if perm == nil {
		return nil
	}
	card := g.RemovePermanent(perm.ID, ZoneExile)
	if card != nil {
		card.ExiledWith = exiledWith
	}
	return card
}

// ModifyLife applies a life delta and reports the player's new total.
func (g *GameState) ModifyLife(playerID string, delta int, sourceName string) (int, bool) {
	player := g.Player(playerID)
	if player == nil {
		return 0, false
	}
	if delta == 0 {
		return player.Life, true
	}
	player.Life += delta
	ev := events.New(events.EventLifeChanged, g.GameID, playerID)
	ev.Amount = delta
	ev.SourceName = sourceName
	g.publish(ev)
	verb := "gains"
	amount := delta
	if delta < 0 {
		verb = "loses"
		amount = -delta
	}
	g.AddMessage(fmt.Sprintf("%s %s %d life", player.Name, verb, amount), "action")
	return player.Life, true
}

// DealDamageToPlayer marks damage on a player as a life loss.
func (g *GameState) DealDamageToPlayer(playerID string, amount int, sourceID, sourceName string) {
	player := g.Player(playerID)
	if player == nil || amount <= 0 {
		return
	}
	player.Life -= amount
	ev := events.New(events.EventDamagedPlayer, g.GameID, playerID)
	ev.Amount = amount
	ev.SourceID = sourceID
	ev.SourceName = sourceName
	g.publish(ev)
	g.AddMessage(fmt.Sprintf("%s deals %d damage to %s", sourceName, amount, player.Name), "action")
}

// DealDamageToPermanent marks damage on a creature or removes loyalty from
// a planeswalker. The excess-damage flag is raised when one instance
// exceeds the remaining toughness; downstream combat logic reads it.
func (g *GameState) DealDamageToPermanent(perm *Permanent, amount int, sourceID, sourceName string) {
	if perm == nil || amount <= 0 {
		return
	}
	if perm.HasType("Planeswalker") && !perm.IsCreature() {
		perm.Counters.Remove(counters.KindLoyalty, amount)
	} else {
		remaining := perm.Toughness() - perm.Damage
		if amount > remaining {
			perm.ExcessDamage = true
		}
		perm.Damage += amount
		perm.DamageSources[sourceID] += amount
	}
	ev := events.New(events.EventDamagedPermanent, g.GameID, perm.ControllerID)
	ev.TargetID = perm.ID
	ev.Amount = amount
	ev.SourceID = sourceID
	ev.SourceName = sourceName
	g.publish(ev)
	g.AddMessage(fmt.Sprintf("%s deals %d damage to %s", sourceName, amount, perm.Name), "action")
}

// UpdateCounters applies a delta map to a permanent's counters. Negative
// deltas clamp at zero per counter kind.
func (g *GameState) UpdateCounters(permanentID string, deltas map[counters.Kind]int) bool {
	perm := g.FindPermanent(permanentID)
	if perm == nil {
		return false
	}
	for kind, delta := range deltas {
		switch {
		case delta > 0:
			perm.Counters.Add(kind, delta)
		case delta < 0:
			perm.Counters.Remove(kind, -delta)
		}
	}
	ev := events.New(events.EventCountersChanged, g.GameID, perm.ControllerID)
	ev.TargetID = perm.ID
	g.publish(ev)
	return true
}
