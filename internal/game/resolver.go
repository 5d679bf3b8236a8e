package game

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/planarforge/oracle-server-go/internal/game/events"
	"github.com/planarforge/oracle-server-go/internal/game/oracle"
	"github.com/planarforge/oracle-server-go/internal/game/queue"
)

// TriggerItem carries the activation context of the ability being resolved:
// resolved targets, the chosen X value, and whether this is a replay of a
// resolution that already ran once.
type TriggerItem struct {
	SourceID  string
	TargetIDs []string
	XValue    int
	Replaying bool
}

// resolutionContext is handed to every handler. It lives for one Resolve
// call.
type resolutionContext struct {
	ctx          context.Context
	engine       *Engine
	state        *GameState
	trig         TriggerItem
	controllerID string
	sourceName   string
	logger       *zap.Logger
}

func (rc *resolutionContext) controller() *Player {
	return rc.state.Player(rc.controllerID)
}

func (rc *resolutionContext) replaying() bool { return rc.trig.Replaying }

// target returns the i-th resolved target id, or "".
func (rc *resolutionContext) target(i int) string {
	if i < 0 || i >= len(rc.trig.TargetIDs) {
		return ""
	}
	return rc.trig.TargetIDs[i]
}

func (rc *resolutionContext) firstTarget() string { return rc.target(0) }

// targetPermanent resolves the first target id to a battlefield permanent.
func (rc *resolutionContext) targetPermanent() *Permanent {
	id := rc.firstTarget()
	if id == "" {
		return nil
	}
	return rc.state.FindPermanent(id)
}

// targetPlayer resolves the first target id to a player.
func (rc *resolutionContext) targetPlayer() *Player {
	return rc.state.Player(rc.firstTarget())
}

// targetPermanents resolves every target id that still points at a
// battlefield permanent.
func (rc *resolutionContext) targetPermanents() []*Permanent {
	var out []*Permanent
	for _, id := range rc.trig.TargetIDs {
		if p := rc.state.FindPermanent(id); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// enqueue hands an interactive step to the queue store. Replays never
// enqueue: the step from the first attempt is still pending.
func (rc *resolutionContext) enqueue(step queue.Step) {
	if rc.replaying() {
		return
	}
	if err := rc.engine.steps.AddStep(rc.ctx, step); err != nil {
		rc.logger.Warn("failed to enqueue resolution step",
			zap.String("game_id", rc.state.GameID),
			zap.String("step_type", string(step.Type)),
			zap.Error(err),
		)
		return
	}
	ev := events.New(events.EventStepEnqueued, rc.state.GameID, step.PlayerID)
	ev.Description = step.Description
	ev.Data = map[string]string{"step_id": step.ID, "step_type": string(step.Type)}
	rc.state.publish(ev)
}

// newStep starts a step descriptor bound to this resolution's continuation
// identity.
func (rc *resolutionContext) newStep(playerID string, stepType queue.StepType, tag string) queue.Step {
	step := queue.NewStep(rc.state.GameID, playerID, stepType)
	step.Continuation = queue.Continuation{
		Tag:          tag,
		SourceID:     rc.trig.SourceID,
		SourceName:   rc.sourceName,
		ControllerID: rc.controllerID,
	}
	return step
}

// Resolve classifies one ability text and applies the first recognized
// reading. The returned bool follows the handler contract: true means some
// template recognized the text (manual resolution included), false means the
// match itself is unknown.
func (e *Engine) Resolve(ctx context.Context, gameID, effectText string, trig TriggerItem, controllerID, sourceName string) bool {
	state, ok := e.Game(gameID)
	if !ok {
		e.logger.Warn("resolve against unknown game", zap.String("game_id", gameID))
		return false
	}
	rc := &resolutionContext{
		ctx:          ctx,
		engine:       e,
		state:        state,
		trig:         trig,
		controllerID: controllerID,
		sourceName:   sourceName,
		logger:       e.logger,
	}
	return rc.resolveText(effectText)
}

// resolveText classifies one ability text and applies it. A text no single
// template covers is split into sentences and resolved clause by clause;
// whatever still isn't recognized degrades to a manual-resolution step,
// never an error.
func (rc *resolutionContext) resolveText(effectText string) bool {
	prepared := effectText
	if rc.sourceName != "" {
		prepared = strings.ReplaceAll(prepared, rc.sourceName, "~")
	}
	if rc.applyFirstTemplate(prepared) {
		return true
	}
	if sentences := splitSentences(prepared); len(sentences) > 1 {
		applied := false
		var unmatched []string
		for _, sentence := range sentences {
			if rc.applyFirstTemplate(sentence) {
				applied = true
				continue
			}
			unmatched = append(unmatched, sentence)
		}
		if applied {
			for _, sentence := range unmatched {
				handleManualResolution(rc, oracle.RawTextParams{Text: sentence})
			}
			return true
		}
	}
	handleManualResolution(rc, oracle.RawTextParams{Text: prepared})
	return true
}

// applyFirstTemplate walks the non-terminal catalog candidates for one text
// and runs handlers until one accepts.
func (rc *resolutionContext) applyFirstTemplate(text string) bool {
	for _, tmpl := range oracle.Candidates(text) {
		if tmpl.Kind == oracle.KindManualResolution {
			continue
		}
		handler, ok := rc.engine.handlers[tmpl.Kind]
		if !ok {
			rc.logger.Warn("no handler bound for kind", zap.String("kind", string(tmpl.Kind)))
			continue
		}
		if !handler(rc, tmpl.Params) {
			continue
		}
		rc.logger.Debug("effect resolved",
			zap.String("game_id", rc.state.GameID),
			zap.String("kind", string(tmpl.Kind)),
			zap.String("source", rc.sourceName),
		)
		ev := events.New(events.EventEffectResolved, rc.state.GameID, rc.controllerID)
		ev.SourceID = rc.trig.SourceID
		ev.SourceName = rc.sourceName
		ev.Description = text
		ev.Data = map[string]string{"kind": string(tmpl.Kind)}
		rc.state.publish(ev)
		return true
	}
	return false
}

// splitSentences breaks an ability text on sentence boundaries, leaving
// periods inside quoted ability text alone.
func splitSentences(text string) []string {
	var out []string
	var b strings.Builder
	inQuote := false
	runes := []rune(text)
	for i, r := range runes {
		switch r {
		case '"':
			inQuote = !inQuote
			b.WriteRune(r)
		case '.':
			if inQuote || (i+1 < len(runes) && runes[i+1] != ' ') {
				b.WriteRune(r)
				continue
			}
			if s := strings.TrimSpace(b.String()); s != "" {
				out = append(out, s)
			}
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}
