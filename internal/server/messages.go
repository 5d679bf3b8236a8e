package server

import (
	"github.com/planarforge/oracle-server-go/internal/game"
	"github.com/planarforge/oracle-server-go/internal/game/queue"
)

// Inbound message types.
const (
	msgJoinGame     = "join_game"
	msgCompleteStep = "complete_step"
	msgResolveText  = "resolve_text"
)

// Outbound message types.
const (
	msgJoined       = "joined"
	msgGameState    = "game_state"
	msgPendingSteps = "pending_steps"
	msgResolveAck   = "resolve_ack"
	msgError        = "error"
)

// clientMessage is the envelope every inbound frame carries.
type clientMessage struct {
	Type     string `json:"type"`
	GameID   string `json:"game_id,omitempty"`
	PlayerID string `json:"player_id,omitempty"`
	Token    string `json:"token,omitempty"`

	// complete_step
	StepID string        `json:"step_id,omitempty"`
	Answer *queue.Answer `json:"answer,omitempty"`

	// resolve_text
	Text       string          `json:"text,omitempty"`
	SourceName string          `json:"source_name,omitempty"`
	Trigger    *triggerPayload `json:"trigger,omitempty"`
}

// triggerPayload is the wire form of a trigger item.
type triggerPayload struct {
	SourceID  string   `json:"source_id,omitempty"`
	TargetIDs []string `json:"target_ids,omitempty"`
	XValue    int      `json:"x_value,omitempty"`
	Replaying bool     `json:"replaying,omitempty"`
}

func (p *triggerPayload) toTriggerItem() game.TriggerItem {
	if p == nil {
		return game.TriggerItem{}
	}
	return game.TriggerItem{
		SourceID:  p.SourceID,
		TargetIDs: p.TargetIDs,
		XValue:    p.XValue,
		Replaying: p.Replaying,
	}
}

// serverMessage is the envelope every outbound frame carries.
type serverMessage struct {
	Type   string      `json:"type"`
	GameID string      `json:"game_id,omitempty"`
	Error  string      `json:"error,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// resolveAck reports the outcome of a resolve_text request.
type resolveAck struct {
	Handled    bool   `json:"handled"`
	Text       string `json:"text"`
	SourceName string `json:"source_name,omitempty"`
}
