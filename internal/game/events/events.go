// Package events provides the notification bus the effect engine publishes
// state changes on. The websocket gateway and the game log subscribe to it.
package events

import (
	"sync"
	"time"
)

// Type indicates the category of an engine event.
type Type string

const (
	// Match lifecycle
	EventGameStarted   Type = "GAME_STARTED"
	EventGameRestarted Type = "GAME_RESTARTED"
	EventGameEnded     Type = "GAME_ENDED"
	EventTurnStarted   Type = "TURN_STARTED"
	EventStepChanged   Type = "STEP_CHANGED"
	EventExtraTurn     Type = "EXTRA_TURN"

	// Cards and zones
	EventDrewCard       Type = "DREW_CARD"
	EventDiscardedCard  Type = "DISCARDED_CARD"
	EventMilledCard     Type = "MILLED_CARD"
	EventZoneChange     Type = "ZONE_CHANGE"
	EventLibraryShuffled Type = "LIBRARY_SHUFFLED"
	EventSearchedLibrary Type = "SEARCHED_LIBRARY"

	// Life and damage
	EventLifeChanged      Type = "LIFE_CHANGED"
	EventDamagedPlayer    Type = "DAMAGED_PLAYER"
	EventDamagedPermanent Type = "DAMAGED_PERMANENT"

	// Battlefield
	EventTokenCreated    Type = "TOKEN_CREATED"
	EventEmblemCreated   Type = "EMBLEM_CREATED"
	EventCountersChanged Type = "COUNTERS_CHANGED"
	EventControlChanged  Type = "CONTROL_CHANGED"
	EventPermanentTapped Type = "PERMANENT_TAPPED"
	EventSacrificed      Type = "SACRIFICED"
	EventDestroyed       Type = "DESTROYED"

	// Resources
	EventManaAdded     Type = "MANA_ADDED"
	EventLandBonus     Type = "LAND_BONUS"
	EventEnergyChanged Type = "ENERGY_CHANGED"

	// Effect resolution
	EventEffectResolved   Type = "EFFECT_RESOLVED"
	EventManualResolution Type = "MANUAL_RESOLUTION"
	EventStepEnqueued     Type = "STEP_ENQUEUED"
	EventStepCompleted    Type = "STEP_COMPLETED"

	// Temporary effects
	EventEffectExpired Type = "EFFECT_EXPIRED"
	EventDelayedFired  Type = "DELAYED_FIRED"
)

// Event is one state change other subsystems may react to.
type Event struct {
	Type        Type
	GameID      string
	PlayerID    string
	TargetID    string
	SourceID    string
	SourceName  string
	Amount      int
	Description string
	Data        map[string]string
	Timestamp   time.Time
}

// New creates an event with common fields populated.
func New(t Type, gameID, playerID string) Event {
	return Event{
		Type:      t,
		GameID:    gameID,
		PlayerID:  playerID,
		Timestamp: time.Now(),
	}
}

// Listener reacts to incoming events.
type Listener func(Event)

type typedListener struct {
	handle   int
	callback Listener
}

// Bus is a synchronous publish/subscribe bus with optional type filtering.
// Subscribers run on the publishing goroutine; the gateway hands events off
// to its own channels.
type Bus struct {
	mu         sync.RWMutex
	listeners  map[int]Listener
	typed      map[Type][]typedListener
	nextHandle int
}

// NewBus constructs a fresh bus.
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[int]Listener),
		typed:     make(map[Type][]typedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (b *Bus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	handle := b.nextHandle
	b.nextHandle++
	b.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for one event type.
func (b *Bus) SubscribeTyped(t Type, listener Listener) int {
	if listener == nil {
		return -1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	handle := b.nextHandle
	b.nextHandle++
	b.typed[t] = append(b.typed[t], typedListener{handle: handle, callback: listener})
	return handle
}

// Unsubscribe removes the listener identified by handle.
func (b *Bus) Unsubscribe(handle int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, handle)
	for t, listeners := range b.typed {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].handle == handle {
				b.typed[t] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to every registered listener synchronously.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, listener := range b.listeners {
		listener(event)
	}
	for _, listener := range b.typed[event.Type] {
		listener.callback(event)
	}
}
