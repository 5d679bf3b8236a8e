package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/planarforge/oracle-server-go/internal/game"
)

// ErrCardNotFound is returned when a named card has no definition row.
var ErrCardNotFound = errors.New("card not found")

// CardRecord is one card definition as stored in the cards table. The name
// is the primary key; decks reference cards by name.
type CardRecord struct {
	Name       string
	Types      []string
	Subtypes   []string
	Supertypes []string
	Keywords   []string
	Colors     []string
	ManaCost   string
	ManaValue  int
	Power      string
	Toughness  string
	Loyalty    string
	RulesText  string
}

// GameCard builds a fresh engine card from the definition. Every call
// returns an independent instance: the engine mutates owner, id and exile
// tags on the cards it is handed.
func (r CardRecord) GameCard() *game.Card {
	return &game.Card{
		Name:       r.Name,
		Types:      append([]string(nil), r.Types...),
		Subtypes:   append([]string(nil), r.Subtypes...),
		Supertypes: append([]string(nil), r.Supertypes...),
		Keywords:   append([]string(nil), r.Keywords...),
		Colors:     append([]string(nil), r.Colors...),
		ManaCost:   r.ManaCost,
		ManaValue:  r.ManaValue,
		Power:      r.Power,
		Toughness:  r.Toughness,
		Loyalty:    r.Loyalty,
		RulesText:  r.RulesText,
	}
}

// CardStore reads and writes card definitions.
type CardStore struct {
	db *DB
}

// NewCardStore creates a store over the shared pool.
func NewCardStore(db *DB) *CardStore {
	return &CardStore{db: db}
}

const cardsSchema = `
CREATE TABLE IF NOT EXISTS cards (
	name        TEXT PRIMARY KEY,
	types       TEXT[] NOT NULL DEFAULT '{}',
	subtypes    TEXT[] NOT NULL DEFAULT '{}',
	supertypes  TEXT[] NOT NULL DEFAULT '{}',
	keywords    TEXT[] NOT NULL DEFAULT '{}',
	colors      TEXT[] NOT NULL DEFAULT '{}',
	mana_cost   TEXT NOT NULL DEFAULT '',
	mana_value  INT  NOT NULL DEFAULT 0,
	power       TEXT NOT NULL DEFAULT '',
	toughness   TEXT NOT NULL DEFAULT '',
	loyalty     TEXT NOT NULL DEFAULT '',
	rules_text  TEXT NOT NULL DEFAULT ''
)`

// EnsureSchema creates the cards table when it does not exist yet.
func (s *CardStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.pool.Exec(ctx, cardsSchema); err != nil {
		return fmt.Errorf("failed to create cards table: %w", err)
	}
	return nil
}

const upsertCardSQL = `
INSERT INTO cards (
	name, types, subtypes, supertypes, keywords, colors,
	mana_cost, mana_value, power, toughness, loyalty, rules_text
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (name) DO UPDATE SET
	types = EXCLUDED.types,
	subtypes = EXCLUDED.subtypes,
	supertypes = EXCLUDED.supertypes,
	keywords = EXCLUDED.keywords,
	colors = EXCLUDED.colors,
	mana_cost = EXCLUDED.mana_cost,
	mana_value = EXCLUDED.mana_value,
	power = EXCLUDED.power,
	toughness = EXCLUDED.toughness,
	loyalty = EXCLUDED.loyalty,
	rules_text = EXCLUDED.rules_text`

// Upsert writes one card definition.
func (s *CardStore) Upsert(ctx context.Context, rec CardRecord) error {
	_, err := s.db.pool.Exec(ctx, upsertCardSQL,
		rec.Name, rec.Types, rec.Subtypes, rec.Supertypes, rec.Keywords, rec.Colors,
		rec.ManaCost, rec.ManaValue, rec.Power, rec.Toughness, rec.Loyalty, rec.RulesText,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert card %s: %w", rec.Name, err)
	}
	return nil
}

// UpsertBatch writes a batch of definitions in one transaction and reports
// how many rows were written.
func (s *CardStore) UpsertBatch(ctx context.Context, recs []CardRecord) (int, error) {
	tx, err := s.db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	written := 0
	for _, rec := range recs {
		if _, err := tx.Exec(ctx, upsertCardSQL,
			rec.Name, rec.Types, rec.Subtypes, rec.Supertypes, rec.Keywords, rec.Colors,
			rec.ManaCost, rec.ManaValue, rec.Power, rec.Toughness, rec.Loyalty, rec.RulesText,
		); err != nil {
			return written, fmt.Errorf("failed to upsert card %s: %w", rec.Name, err)
		}
		written++
	}
	if err := tx.Commit(ctx); err != nil {
		return written, fmt.Errorf("failed to commit batch: %w", err)
	}
	return written, nil
}

const selectCardColumns = `
	name, types, subtypes, supertypes, keywords, colors,
	mana_cost, mana_value, power, toughness, loyalty, rules_text`

func scanCard(row pgx.Row) (CardRecord, error) {
	var rec CardRecord
	err := row.Scan(
		&rec.Name, &rec.Types, &rec.Subtypes, &rec.Supertypes, &rec.Keywords, &rec.Colors,
		&rec.ManaCost, &rec.ManaValue, &rec.Power, &rec.Toughness, &rec.Loyalty, &rec.RulesText,
	)
	return rec, err
}

// GetByName looks up one card definition.
func (s *CardStore) GetByName(ctx context.Context, name string) (CardRecord, error) {
	row := s.db.pool.QueryRow(ctx, `SELECT`+selectCardColumns+` FROM cards WHERE name = $1`, name)
	rec, err := scanCard(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return CardRecord{}, fmt.Errorf("%w: %s", ErrCardNotFound, name)
	}
	if err != nil {
		return CardRecord{}, fmt.Errorf("failed to load card %s: %w", name, err)
	}
	return rec, nil
}

// ListNames returns every stored card name in alphabetical order.
func (s *CardStore) ListNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.pool.Query(ctx, `SELECT name FROM cards ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan card name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read card names: %w", err)
	}
	return names, nil
}

// Count returns how many definitions are stored.
func (s *CardStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cards`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

// ResolveDeck turns a list of card names (duplicates allowed, one entry per
// copy) into fresh engine cards. Unknown names fail the whole resolution.
func (s *CardStore) ResolveDeck(ctx context.Context, names []string) ([]*game.Card, error) {
	if len(names) == 0 {
		return nil, nil
	}
	unique := make(map[string]bool, len(names))
	distinct := make([]string, 0, len(names))
	for _, n := range names {
		if !unique[n] {
			unique[n] = true
			distinct = append(distinct, n)
		}
	}

	rows, err := s.db.pool.Query(ctx, `SELECT`+selectCardColumns+` FROM cards WHERE name = ANY($1)`, distinct)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck cards: %w", err)
	}
	defer rows.Close()

	byName := make(map[string]CardRecord, len(distinct))
	for rows.Next() {
		rec, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deck card: %w", err)
		}
		byName[rec.Name] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deck cards: %w", err)
	}

	deck := make([]*game.Card, 0, len(names))
	for _, n := range names {
		rec, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrCardNotFound, n)
		}
		deck = append(deck, rec.GameCard())
	}
	return deck, nil
}
