package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/exstem-engine/internal/config"
	"github.com/stemsi/exstem-engine/internal/database"
	"github.com/stemsi/exstem-engine/internal/logger"
	"github.com/stemsi/exstem-engine/internal/model"
	"github.com/stemsi/exstem-engine/internal/response"
	"github.com/stemsi/exstem-engine/internal/service"
	"github.com/stemsi/exstem-engine/internal/validator"
	"golang.org/x/term"
)

func main() {
	var bankRef string
	flag.StringVar(&bankRef, "bank", "", "Question bank: file path, or bank UUID when QUESTION_SOURCE=postgres")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// Stdout belongs to the exam; logs go to stderr.
	log := logger.SetupFile(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	validator.Setup()

	if bankRef == "" {
		bankRef = cfg.QuestionFile
		if cfg.QuestionSource == config.SourcePostgres {
			bankRef = cfg.QBankID
		}
	}
	if bankRef == "" {
		log.Fatal().Msg("No question bank given, set -bank or QBANK_ID")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ─── Connect content stores ────────────────────────────────────────
	var pool *pgxpool.Pool
	if cfg.QuestionSource == config.SourcePostgres {
		p, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer p.Close()
		pool = p
	}

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, loading without cache")
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	source, err := service.NewQuestionSource(cfg, pool, rdb, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up question source")
	}

	// ─── Run the exam ──────────────────────────────────────────────────
	r := newRunner(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
	examService := service.NewExamService(source, cfg, log)

	session, err := examService.Prepare(ctx, bankRef, r.hooks()...)
	if err != nil {
		fmt.Fprintln(os.Stderr, response.GetMessage(response.CodeOf(err)))
		log.Fatal().Err(err).Str("bank", bankRef).Msg("Failed to prepare exam")
	}

	if title := session.Bank().Title(); title != "" {
		fmt.Printf("%s (%d soal, %s)\n", title, session.Bank().Len(), model.FormatClock(session.RemainingSeconds()))
	}

	if _, err := r.run(ctx, session); err != nil {
		log.Fatal().Err(err).Msg("Exam aborted")
	}
}
