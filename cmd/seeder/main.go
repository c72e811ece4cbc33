package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// quizDefinition describes one dataset to load from the data directory.
type quizDefinition struct {
	Key         string
	Title       string
	Description string
	Level       int32
	File        string
}

var quizDefinitions = []quizDefinition{
	{Key: "HSK1", Title: "HSK 1", Description: "Vocabulaire officiel HSK niveau 1.", Level: 1, File: "hsk1.csv"},
	{Key: "HSK2", Title: "HSK 2", Description: "Vocabulaire officiel HSK niveau 2.", Level: 2, File: "hsk2.csv"},
}

type csvEntry struct {
	Hanzi           string
	Pinyin          string
	Translation     string
	AltTranslations string
	Tags            string
}

func main() {
	var (
		dataDir = flag.String("data", "data", "Directory containing dataset CSV files")
		force   = flag.Bool("force", false, "Seed even when quizzes already exist")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	ctx := context.Background()

	pool, err := connect(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if !*force {
		var count int
		if err := pool.QueryRow(ctx, `SELECT count(*) FROM quizzes`).Scan(&count); err != nil {
			log.Fatal().Err(err).Msg("failed to check existing quizzes")
		}
		if count > 0 {
			log.Info().Int("quizzes", count).Msg("database already seeded, nothing to do")
			return
		}
	}

	for _, def := range quizDefinitions {
		path := filepath.Join(*dataDir, def.File)
		entries, err := loadCSV(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping dataset")
			continue
		}
		if len(entries) == 0 {
			log.Warn().Str("file", path).Msg("no entries found, skipping")
			continue
		}

		inserted, err := seedQuiz(ctx, pool, def, entries)
		if err != nil {
			log.Fatal().Err(err).Str("quiz", def.Key).Msg("failed to seed quiz")
		}
		log.Info().Str("quiz", def.Key).Int("entries", inserted).Msg("dataset seeded")
	}
}

func connect(ctx context.Context) (*pgxpool.Pool, error) {
	user := os.Getenv("PG_USER")
	password := os.Getenv("PG_PASSWORD")
	database := os.Getenv("PG_DATABASE")
	if user == "" || password == "" || database == "" {
		return nil, fmt.Errorf("PG_USER, PG_PASSWORD and PG_DATABASE are required")
	}

	host := os.Getenv("PG_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("PG_PORT")
	if port == "" {
		port = "5432"
	}
	sslMode := os.Getenv("PG_SSL_MODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	connString := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslMode)
	return pgxpool.New(ctx, connString)
}

// loadCSV reads a dataset file. The header row names the columns;
// hanzi, pinyin and translation are required per row, the rest are
// optional.
func loadCSV(path string) ([]csvEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var entries []csvEntry
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		entry := csvEntry{
			Hanzi:           field(row, "hanzi"),
			Pinyin:          field(row, "pinyin"),
			Translation:     field(row, "translation"),
			AltTranslations: field(row, "alt_translations"),
			Tags:            field(row, "tags"),
		}
		if entry.Hanzi == "" || entry.Pinyin == "" || entry.Translation == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func seedQuiz(ctx context.Context, pool *pgxpool.Pool, def quizDefinition, entries []csvEntry) (int, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var quizID int32
	err = tx.QueryRow(ctx, `
		INSERT INTO quizzes (key, title, description, level)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET title = EXCLUDED.title, description = EXCLUDED.description, level = EXCLUDED.level
		RETURNING quiz_id`,
		def.Key, def.Title, def.Description, def.Level,
	).Scan(&quizID)
	if err != nil {
		return 0, fmt.Errorf("insert quiz: %w", err)
	}

	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []interface{}{
			quizID, e.Hanzi, e.Pinyin, e.Translation, nullable(e.AltTranslations), nullable(e.Tags), true,
		})
	}

	inserted, err := tx.CopyFrom(ctx,
		pgx.Identifier{"entries"},
		[]string{"quiz_id", "hanzi", "pinyin", "translation", "alt_translations", "tags", "is_active"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("copy entries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(inserted), nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
