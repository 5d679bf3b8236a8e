package server

import (
	"context"

	"go.uber.org/zap"
)

// gameFrames is one delivery request: per-player frame lists for a game.
// When only is set, frames go to that client alone.
type gameFrames struct {
	gameID    string
	perPlayer map[string][][]byte
	only      *Client
}

// Hub owns the client set. All map mutations happen on the run loop, fed by
// unbuffered channels, so delivery order follows request order.
type Hub struct {
	logger *zap.Logger

	register   chan *Client
	unregister chan *Client
	join       chan *Client
	deliver    chan gameFrames

	clients map[*Client]bool
	byGame  map[string]map[*Client]bool
}

func newHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan *Client),
		deliver:    make(chan gameFrames),
		clients:    make(map[*Client]bool),
		byGame:     make(map[string]map[*Client]bool),
	}
}

// run processes hub requests until the context is cancelled, then closes
// every client's send channel.
func (h *Hub) run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			h.drop(client)

		case client := <-h.join:
			if !h.clients[client] {
				continue
			}
			game := h.byGame[client.gameID]
			if game == nil {
				game = make(map[*Client]bool)
				h.byGame[client.gameID] = game
			}
			game[client] = true
			h.logger.Debug("client joined game",
				zap.String("game_id", client.gameID),
				zap.String("player_id", client.playerID),
			)

		case frames := <-h.deliver:
			h.fanOut(frames)

		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		}
	}
}

func (h *Hub) fanOut(frames gameFrames) {
	if frames.only != nil {
		if h.clients[frames.only] {
			h.sendFrames(frames.only, frames.perPlayer[frames.only.playerID])
		}
		return
	}
	for client := range h.byGame[frames.gameID] {
		h.sendFrames(client, frames.perPlayer[client.playerID])
	}
}

// sendFrames queues frames on the client's buffer; a client too slow to
// drain its buffer is dropped.
func (h *Hub) sendFrames(client *Client, frames [][]byte) {
	for _, frame := range frames {
		select {
		case client.send <- frame:
		default:
			h.logger.Warn("dropping slow client",
				zap.String("game_id", client.gameID),
				zap.String("player_id", client.playerID),
			)
			h.drop(client)
			return
		}
	}
}

func (h *Hub) drop(client *Client) {
	if !h.clients[client] {
		return
	}
	delete(h.clients, client)
	if game := h.byGame[client.gameID]; game != nil {
		delete(game, client)
		if len(game) == 0 {
			delete(h.byGame, client.gameID)
		}
	}
	close(client.send)
}
