package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/planarforge/oracle-server-go/internal/config"
	"github.com/planarforge/oracle-server-go/internal/repository"
)

// CSV layout: name, types, subtypes, supertypes, keywords, colors,
// mana_cost, mana_value, power, toughness, loyalty, rules_text.
// List columns are semicolon-separated.
const importColumns = 12

var importBatchSize int

var importCardsCmd = &cobra.Command{
	Use:   "import-cards <csv>",
	Short: "Import card definitions from a CSV export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportCards,
}

func init() {
	importCardsCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	importCardsCmd.Flags().IntVar(&importBatchSize, "batch-size", 1000, "cards per transaction")
	rootCmd.AddCommand(importCardsCmd)
}

func runImportCards(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := initLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	absPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve csv path: %w", err)
	}

	cards, skipped, err := readCardCSV(absPath, logger)
	if err != nil {
		return err
	}
	logger.Info("parsed card export",
		zap.String("csv", absPath),
		zap.Int("cards", len(cards)),
		zap.Int("skipped_rows", skipped),
	)

	db, err := repository.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	store := repository.NewCardStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure card schema: %w", err)
	}

	start := time.Now()
	imported := 0
	for i := 0; i < len(cards); i += importBatchSize {
		end := i + importBatchSize
		if end > len(cards) {
			end = len(cards)
		}
		written, err := store.UpsertBatch(ctx, cards[i:end])
		imported += written
		if err != nil {
			return fmt.Errorf("failed to import batch starting at card %d: %w", i+1, err)
		}
		logger.Info("import progress", zap.Int("imported", imported), zap.Int("total", len(cards)))
	}
	duration := time.Since(start)

	total, err := store.Count(ctx)
	if err != nil {
		logger.Warn("failed to count cards after import", zap.Error(err))
	}

	logger.Info("card import complete",
		zap.Int("imported", imported),
		zap.Duration("took", duration),
		zap.Int64("cards_in_database", total),
	)
	return nil
}

func readCardCSV(path string, logger *zap.Logger) ([]repository.CardRecord, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, 0, fmt.Errorf("csv file %s has no data rows", path)
	}

	cards := make([]repository.CardRecord, 0, len(records)-1)
	skipped := 0
	for i, record := range records[1:] { // skip header
		if len(record) < importColumns || record[0] == "" {
			logger.Warn("skipping malformed row", zap.Int("row", i+2))
			skipped++
			continue
		}
		rec := repository.CardRecord{
			Name:       record[0],
			Types:      splitList(record[1]),
			Subtypes:   splitList(record[2]),
			Supertypes: splitList(record[3]),
			Keywords:   splitList(record[4]),
			Colors:     splitList(record[5]),
			ManaCost:   record[6],
			Power:      record[8],
			Toughness:  record[9],
			Loyalty:    record[10],
			RulesText:  record[11],
		}
		if manaValue, err := strconv.Atoi(record[7]); err == nil {
			rec.ManaValue = manaValue
		}
		cards = append(cards, rec)
	}
	return cards, skipped, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
