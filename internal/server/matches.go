package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/planarforge/oracle-server-go/internal/game"
)

// DeckResolver turns card names into full card definitions. The pgx-backed
// card store implements it; requests may also carry inline deck lists.
type DeckResolver interface {
	ResolveDeck(ctx context.Context, names []string) ([]*game.Card, error)
}

type createMatchRequest struct {
	GameID  string              `json:"game_id"`
	Players []createMatchPlayer `json:"players"`
	Options createMatchOptions  `json:"options"`
}

type createMatchPlayer struct {
	ID         string       `json:"id"`
	Name       string       `json:"name,omitempty"`
	DeckNames  []string     `json:"deck_names,omitempty"`
	Deck       []*game.Card `json:"deck,omitempty"`
	Commanders []string     `json:"commanders,omitempty"`
}

type createMatchOptions struct {
	Seed         int64 `json:"seed,omitempty"`
	StartingLife int   `json:"starting_life,omitempty"`
	OpeningHand  int   `json:"opening_hand,omitempty"`
}

// handleMatches is the admin surface: POST creates a match, DELETE tears one
// down. Players then attach over /ws.
func (g *Gateway) handleMatches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		g.createMatch(w, r)
	case http.MethodDelete:
		g.deleteMatch(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (g *Gateway) createMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	setups := make([]game.PlayerSetup, 0, len(req.Players))
	for _, p := range req.Players {
		deck := p.Deck
		if len(deck) == 0 && len(p.DeckNames) > 0 {
			if g.opts.Decks == nil {
				http.Error(w, "deck_names requires a configured card database", http.StatusUnprocessableEntity)
				return
			}
			resolved, err := g.opts.Decks.ResolveDeck(r.Context(), p.DeckNames)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			deck = resolved
		}
		setups = append(setups, game.PlayerSetup{
			ID:         p.ID,
			Name:       p.Name,
			Deck:       deck,
			Commanders: p.Commanders,
		})
	}

	opts := game.MatchOptions{
		Seed:         req.Options.Seed,
		StartingLife: req.Options.StartingLife,
		OpeningHand:  req.Options.OpeningHand,
	}
	if opts.StartingLife == 0 {
		opts.StartingLife = g.opts.StartingLife
	}
	if opts.OpeningHand == 0 {
		opts.OpeningHand = g.opts.OpeningHand
	}

	if err := g.engine.StartMatch(req.GameID, setups, opts); err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "already exists") {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}

	g.logger.Info("match created",
		zap.String("game_id", req.GameID),
		zap.Int("players", len(setups)),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"game_id": req.GameID})
}

func (g *Gateway) deleteMatch(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("id")
	if gameID == "" {
		http.Error(w, "id query parameter is required", http.StatusBadRequest)
		return
	}
	if err := g.engine.CleanupGame(r.Context(), gameID); err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	g.dropSession(gameID)
	g.logger.Info("match removed", zap.String("game_id", gameID))
	w.WriteHeader(http.StatusNoContent)
}
