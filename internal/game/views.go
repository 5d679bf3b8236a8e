package game

import (
	"time"

	"github.com/planarforge/oracle-server-go/internal/game/counters"
	"github.com/planarforge/oracle-server-go/internal/game/mana"
)

// GameView is the complete game state as one player is allowed to see it.
type GameView struct {
	GameID         string          `json:"game_id"`
	Status         Status          `json:"status"`
	Phase          string          `json:"phase"`
	Step           string          `json:"step"`
	Turn           int             `json:"turn"`
	ActivePlayerID string          `json:"active_player_id"`
	PriorityPlayer string          `json:"priority_player"`
	Players        []PlayerView    `json:"players"`
	Battlefield    []PermanentView `json:"battlefield"`
	Emblems        []Emblem        `json:"emblems,omitempty"`
	Messages       []Message       `json:"messages"`
	WinnerID       string          `json:"winner_id,omitempty"`
	RestartCount   int             `json:"restart_count,omitempty"`
	StartedAt      time.Time       `json:"started_at"`
}

// PlayerView is one player's public state. Hand contents are filled in only
// for the requesting player; everyone else gets face-down stubs.
type PlayerView struct {
	PlayerID     string       `json:"player_id"`
	Name         string       `json:"name"`
	Life         int          `json:"life"`
	Poison       int          `json:"poison"`
	Energy       int          `json:"energy"`
	Experience   int          `json:"experience"`
	LibraryCount int          `json:"library_count"`
	HandCount    int          `json:"hand_count"`
	Hand         []CardView   `json:"hand"`
	Graveyard    []CardView   `json:"graveyard"`
	Exile        []CardView   `json:"exile"`
	Command      []CardView   `json:"command"`
	Mana         ManaPoolView `json:"mana"`
	Lost         bool         `json:"lost"`
	Won          bool         `json:"won"`
}

// CardView is a card in any non-battlefield zone.
type CardView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	ManaCost   string   `json:"mana_cost,omitempty"`
	Types      []string `json:"types,omitempty"`
	Subtypes   []string `json:"subtypes,omitempty"`
	Supertypes []string `json:"supertypes,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	Power      string   `json:"power,omitempty"`
	Toughness  string   `json:"toughness,omitempty"`
	Loyalty    string   `json:"loyalty,omitempty"`
	RulesText  string   `json:"rules_text,omitempty"`
	OwnerID    string   `json:"owner_id,omitempty"`
	ExiledWith string   `json:"exiled_with,omitempty"`
	FaceDown   bool     `json:"face_down,omitempty"`
}

// PermanentView is a battlefield object with its effective values computed.
type PermanentView struct {
	ID           string        `json:"id"`
	Card         CardView      `json:"card"`
	Name         string        `json:"name"`
	ControllerID string        `json:"controller_id"`
	Tapped       bool          `json:"tapped"`
	Power        int           `json:"power"`
	Toughness    int           `json:"toughness"`
	Abilities    []string      `json:"abilities,omitempty"`
	Counters     []CounterView `json:"counters,omitempty"`
	AttachedTo   string        `json:"attached_to,omitempty"`
	Attachments  []string      `json:"attachments,omitempty"`
	Token        bool          `json:"token,omitempty"`
	Damage       int           `json:"damage,omitempty"`
}

// CounterView is one counter kind and its count.
type CounterView struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// ManaPoolView is a pool snapshot. Restricted counts fold into the totals.
type ManaPoolView struct {
	White     int `json:"white"`
	Blue      int `json:"blue"`
	Black     int `json:"black"`
	Red       int `json:"red"`
	Green     int `json:"green"`
	Colorless int `json:"colorless"`
}

// BuildGameView snapshots the game as seen by requestingPlayerID. Opponent
// hands come back as face-down stubs with the real counts.
func BuildGameView(g *GameState, requestingPlayerID string) *GameView {
	view := &GameView{
		GameID:         g.GameID,
		Status:         g.Status,
		Phase:          g.Turn.CurrentPhase().String(),
		Step:           g.Turn.CurrentStep().String(),
		Turn:           g.Turn.TurnNumber(),
		ActivePlayerID: g.Turn.ActivePlayer(),
		PriorityPlayer: g.Turn.PriorityPlayer(),
		Players:        buildPlayerViews(g, requestingPlayerID),
		Battlefield:    buildPermanentViews(g.Battlefield),
		Emblems:        buildEmblemViews(g.Emblems),
		Messages:       append([]Message(nil), g.Messages...),
		WinnerID:       g.WinnerID,
		RestartCount:   g.RestartCount,
		StartedAt:      g.StartedAt(),
	}
	return view
}

func buildPlayerViews(g *GameState, requestingPlayerID string) []PlayerView {
	views := make([]PlayerView, 0, len(g.PlayerOrder))
	for _, playerID := range g.PlayerOrder {
		player := g.Player(playerID)
		if player == nil {
			continue
		}
		view := PlayerView{
			PlayerID:     player.ID,
			Name:         player.Name,
			Life:         player.Life,
			Poison:       player.Poison,
			Energy:       player.Energy,
			Experience:   player.Experience,
			LibraryCount: player.Zones.Library.Count,
			HandCount:    player.Zones.Hand.Count,
			Graveyard:    buildCardViews(player.Zones.Graveyard.Cards),
			Exile:        buildCardViews(player.Zones.Exile.Cards),
			Command:      buildCardViews(player.Zones.Command.Cards),
			Mana:         buildManaPoolView(player.Mana),
			Lost:         player.Lost,
			Won:          player.Won,
		}
		if playerID == requestingPlayerID {
			view.Hand = buildCardViews(player.Zones.Hand.Cards)
		} else {
			view.Hand = make([]CardView, player.Zones.Hand.Count)
			for i, card := range player.Zones.Hand.Cards {
				view.Hand[i] = CardView{ID: card.ID, FaceDown: true}
			}
		}
		views = append(views, view)
	}
	return views
}

func buildEmblemViews(emblems []*Emblem) []Emblem {
	views := make([]Emblem, len(emblems))
	for i, emblem := range emblems {
		views[i] = *emblem
	}
	return views
}

func buildCardViews(cards []*Card) []CardView {
	views := make([]CardView, len(cards))
	for i, card := range cards {
		views[i] = buildCardView(card)
	}
	return views
}

func buildCardView(card *Card) CardView {
	return CardView{
		ID:         card.ID,
		Name:       card.Name,
		ManaCost:   card.ManaCost,
		Types:      append([]string(nil), card.Types...),
		Subtypes:   append([]string(nil), card.Subtypes...),
		Supertypes: append([]string(nil), card.Supertypes...),
		Colors:     append([]string(nil), card.Colors...),
		Power:      card.Power,
		Toughness:  card.Toughness,
		Loyalty:    card.Loyalty,
		RulesText:  card.RulesText,
		OwnerID:    card.OwnerID,
		ExiledWith: card.ExiledWith,
	}
}

func buildPermanentViews(perms []*Permanent) []PermanentView {
	views := make([]PermanentView, len(perms))
	for i, perm := range perms {
		views[i] = PermanentView{
			ID:           perm.ID,
			Card:         buildCardView(perm.Card),
			Name:         perm.Name,
			ControllerID: perm.ControllerID,
			Tapped:       perm.Tapped,
			Power:        perm.Power(),
			Toughness:    perm.Toughness(),
			Abilities:    perm.EffectiveAbilities(),
			Counters:     buildCounterViews(perm.Counters),
			AttachedTo:   perm.AttachedTo,
			Attachments:  append([]string(nil), perm.Attachments...),
			Token:        perm.Token,
			Damage:       perm.Damage,
		}
	}
	return views
}

func buildCounterViews(m *counters.Map) []CounterView {
	views := make([]CounterView, 0)
	for _, kind := range m.Kinds() {
		views = append(views, CounterView{Kind: string(kind), Count: m.Count(kind)})
	}
	return views
}

func buildManaPoolView(pool *mana.Pool) ManaPoolView {
	return ManaPoolView{
		White:     pool.Count(mana.White) + pool.RestrictedCount(mana.White),
		Blue:      pool.Count(mana.Blue) + pool.RestrictedCount(mana.Blue),
		Black:     pool.Count(mana.Black) + pool.RestrictedCount(mana.Black),
		Red:       pool.Count(mana.Red) + pool.RestrictedCount(mana.Red),
		Green:     pool.Count(mana.Green) + pool.RestrictedCount(mana.Green),
		Colorless: pool.Count(mana.Colorless) + pool.RestrictedCount(mana.Colorless),
	}
}
