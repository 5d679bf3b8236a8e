package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planarforge/oracle-server-go/internal/game"
)

type stubResolver struct{}

func (stubResolver) ResolveDeck(_ context.Context, names []string) ([]*game.Card, error) {
	deck := make([]*game.Card, 0, len(names))
	for _, name := range names {
		deck = append(deck, &game.Card{
			Name:  name,
			Types: []string{"Creature"}, Subtypes: []string{"Bear"},
			Power: "2", Toughness: "2",
		})
	}
	return deck, nil
}

func postJSON(t *testing.T, client *http.Client, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func inlineMatchRequest(gameID string) createMatchRequest {
	return createMatchRequest{
		GameID: gameID,
		Players: []createMatchPlayer{
			{ID: alice, Name: "Alice", Deck: testDeck(30)},
			{ID: bob, Name: "Bob", Deck: testDeck(30)},
		},
		Options: createMatchOptions{Seed: 1},
	}
}

func TestCreateMatchWithInlineDecks(t *testing.T) {
	gateway, engine := newTestGateway(t, Options{})
	srv := httptest.NewServer(gateway.Handler())
	t.Cleanup(srv.Close)

	resp := postJSON(t, srv.Client(), srv.URL+"/games", inlineMatchRequest("m1"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	state, ok := engine.Game("m1")
	require.True(t, ok)
	assert.Equal(t, 7, state.Player(alice).Zones.Hand.Count)
	assert.Equal(t, 20, state.Player(alice).Life)
}

func TestCreateMatchUsesConfiguredDefaults(t *testing.T) {
	gateway, engine := newTestGateway(t, Options{StartingLife: 40, OpeningHand: 5})
	srv := httptest.NewServer(gateway.Handler())
	t.Cleanup(srv.Close)

	resp := postJSON(t, srv.Client(), srv.URL+"/games", inlineMatchRequest("m1"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	state, ok := engine.Game("m1")
	require.True(t, ok)
	assert.Equal(t, 40, state.Player(bob).Life)
	assert.Equal(t, 5, state.Player(bob).Zones.Hand.Count)
}

func TestCreateMatchResolvesDeckNames(t *testing.T) {
	gateway, engine := newTestGateway(t, Options{Decks: stubResolver{}})
	srv := httptest.NewServer(gateway.Handler())
	t.Cleanup(srv.Close)

	names := make([]string, 30)
	for i := range names {
		names[i] = fmt.Sprintf("Grizzly Bears %d", i)
	}
	req := createMatchRequest{
		GameID: "m1",
		Players: []createMatchPlayer{
			{ID: alice, DeckNames: names},
			{ID: bob, DeckNames: names},
		},
		Options: createMatchOptions{Seed: 1},
	}

	resp := postJSON(t, srv.Client(), srv.URL+"/games", req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	state, ok := engine.Game("m1")
	require.True(t, ok)
	player := state.Player(alice)
	assert.Equal(t, 30, player.Zones.Hand.Count+player.Zones.Library.Count)
}

func TestCreateMatchRequiresResolverForNames(t *testing.T) {
	gateway, _ := newTestGateway(t, Options{})
	srv := httptest.NewServer(gateway.Handler())
	t.Cleanup(srv.Close)

	req := createMatchRequest{
		GameID: "m1",
		Players: []createMatchPlayer{
			{ID: alice, DeckNames: []string{"Grizzly Bears"}},
			{ID: bob, DeckNames: []string{"Grizzly Bears"}},
		},
	}
	resp := postJSON(t, srv.Client(), srv.URL+"/games", req)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateMatchDuplicateConflicts(t *testing.T) {
	gateway, _ := newTestGateway(t, Options{})
	srv := httptest.NewServer(gateway.Handler())
	t.Cleanup(srv.Close)

	first := postJSON(t, srv.Client(), srv.URL+"/games", inlineMatchRequest("m1"))
	first.Body.Close()
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second := postJSON(t, srv.Client(), srv.URL+"/games", inlineMatchRequest("m1"))
	defer second.Body.Close()
	assert.Equal(t, http.StatusConflict, second.StatusCode)
}

func TestDeleteMatch(t *testing.T) {
	gateway, engine := newTestGateway(t, Options{})
	srv := httptest.NewServer(gateway.Handler())
	t.Cleanup(srv.Close)

	resp := postJSON(t, srv.Client(), srv.URL+"/games", inlineMatchRequest("m1"))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/games?id=m1", nil)
	require.NoError(t, err)
	del, err := srv.Client().Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)

	_, ok := engine.Game("m1")
	assert.False(t, ok)

	again, err := srv.Client().Do(req)
	require.NoError(t, err)
	again.Body.Close()
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}

func TestMatchesRejectsOtherMethods(t *testing.T) {
	gateway, _ := newTestGateway(t, Options{})
	srv := httptest.NewServer(gateway.Handler())
	t.Cleanup(srv.Close)

	resp, err := srv.Client().Get(srv.URL + "/games")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
