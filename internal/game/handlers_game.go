package game

import (
	"github.com/planarforge/oracle-server-go/internal/game/events"
)

func handleRestartGame(rc *resolutionContext, params interface{}) bool {
	if rc.replaying() {
		return true
	}
	rc.state.Restart(rc.controllerID, rc.sourceName)
	return true
}

func (g *GameState) declareWinner(playerID string) {
	player := g.Player(playerID)
	if player == nil || g.Status == StatusFinished {
		return
	}
	player.Won = true
	g.Status = StatusFinished
	g.WinnerID = player.ID
	ev := events.New(events.EventGameEnded, g.GameID, player.ID)
	ev.Description = player.Name + " wins the game"
	g.publish(ev)
	g.AddMessage(player.Name+" wins the game", "action")
}

func handleWinGame(rc *resolutionContext, params interface{}) bool {
	if rc.replaying() {
		return true
	}
	rc.state.declareWinner(rc.controllerID)
	return true
}

func handleLoseGame(rc *resolutionContext, params interface{}) bool {
	player := rc.controller()
	if player == nil {
		return true
	}
	if rc.replaying() {
		return true
	}
	player.Lost = true
	rc.state.AddMessage(player.Name+" loses the game", "action")

	var survivors []*Player
	for _, id := range rc.state.PlayerOrder {
		if p := rc.state.Player(id); p != nil && !p.Lost {
			survivors = append(survivors, p)
		}
	}
	if len(survivors) == 1 {
		rc.state.declareWinner(survivors[0].ID)
	}
	return true
}
