package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/exstem-engine/internal/config"
	"github.com/stemsi/exstem-engine/internal/database"
	"github.com/stemsi/exstem-engine/internal/exam"
	"github.com/stemsi/exstem-engine/internal/logger"
	"github.com/stemsi/exstem-engine/internal/model"
	"github.com/stemsi/exstem-engine/internal/repository"
	"github.com/stemsi/exstem-engine/internal/validator"
)

func main() {
	var (
		file   string
		bankID string
		dryRun bool
	)
	flag.StringVar(&file, "file", "", "YAML or JSON question bank file (defaults to QUESTION_FILE)")
	flag.StringVar(&bankID, "id", "", "Bank UUID to replace (defaults to QBANK_ID, or a new UUID)")
	flag.BoolVar(&dryRun, "dry-run", false, "Validate only, do not write")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	validator.Setup()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if file == "" {
		file = cfg.QuestionFile
	}
	if bankID == "" {
		bankID = cfg.QBankID
	}

	fmt.Printf("=== Importing %s ===\n", file)

	set, err := repository.NewQuestionFileRepository("").GetQuestionSet(ctx, file)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read question file")
	}

	bank, warnings, err := exam.NewBank(*set, validator.ValidateQuestion)
	for _, w := range warnings {
		fmt.Printf("  skip #%d %q: %s\n", w.Index+1, w.QuestionID, w.Error())
	}
	if err != nil {
		log.Fatal().Err(err).Msg("No valid questions to import")
	}
	fmt.Printf("Valid: %d, skipped: %d\n", bank.Len(), len(warnings))

	if dryRun {
		fmt.Println("Dry run, nothing written.")
		return
	}

	record := &model.QuestionBankRecord{
		Title:           bank.Title(),
		DurationSeconds: bank.DurationSeconds(),
	}
	if bankID != "" {
		id, err := uuid.Parse(bankID)
		if err != nil {
			log.Fatal().Err(err).Str("id", bankID).Msg("Invalid bank UUID")
		}
		record.ID = id
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if err := repository.NewQuestionRepository(pool).ReplaceAll(ctx, record, bank.Questions()); err != nil {
		log.Fatal().Err(err).Msg("Failed to write question bank")
	}

	// Drop any cached copy so the next exam reads the new questions.
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, cache not invalidated")
	}
	if rdb != nil {
		defer rdb.Close()
		cache := repository.NewQuestionCacheRepository(nil, rdb, cfg.QBankCacheTTL, log)
		if err := cache.Invalidate(ctx, record.ID.String()); err != nil {
			log.Warn().Err(err).Msg("Failed to invalidate cached bank")
		}
	}

	fmt.Printf("Imported %d questions into bank %s\n", bank.Len(), record.ID)
}
