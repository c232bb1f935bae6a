package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/urbavisu/urbavisu-api/internal/config"
	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/pkg/database"
	"github.com/urbavisu/urbavisu-api/internal/pkg/logger"
)

const pageSize = 100

// ledgercheck compares every stored balance with the sum of its ledger
// entries and exits non-zero when any account disagrees.
func main() {
	email := flag.String("email", "", "check a single account")
	flag.Parse()

	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	users := user.NewRepository(db)
	credits := credit.NewService(credit.NewRepository(db), database.NewTransactor(db))
	ctx := context.Background()

	var mismatches int
	if *email != "" {
		mismatches, err = checkOne(ctx, users, credits, *email, os.Stdout)
	} else {
		mismatches, err = checkAll(ctx, users, credits, os.Stdout)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Ledger check failed")
	}
	if mismatches > 0 {
		log.Error().Int("accounts", mismatches).Msg("Balances out of step with ledger")
		os.Exit(1)
	}
	log.Info().Msg("All balances match the ledger")
}

func checkOne(ctx context.Context, users user.Repository, credits credit.Service, email string, w io.Writer) (int, error) {
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("find %s: %w", email, err)
	}
	return report(ctx, credits, []*user.User{u}, w)
}

func checkAll(ctx context.Context, users user.Repository, credits credit.Service, w io.Writer) (int, error) {
	var mismatches, seen int
	for offset := 0; ; offset += pageSize {
		page, total, err := users.List(ctx, user.ListFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return mismatches, fmt.Errorf("list users: %w", err)
		}
		n, err := report(ctx, credits, page, w)
		mismatches += n
		if err != nil {
			return mismatches, err
		}
		seen += len(page)
		if len(page) == 0 || seen >= total {
			break
		}
	}
	fmt.Fprintf(w, "checked %d accounts, %d mismatched\n", seen, mismatches)
	return mismatches, nil
}

func report(ctx context.Context, credits credit.Service, users []*user.User, w io.Writer) (int, error) {
	var mismatches int
	for _, u := range users {
		rec, err := credits.Reconcile(ctx, u.ID)
		if err != nil {
			return mismatches, fmt.Errorf("reconcile %s: %w", u.Email, err)
		}
		if !rec.Consistent {
			mismatches++
			fmt.Fprintf(w, "MISMATCH %s | %s | balance %d | ledger %d\n", u.ID, u.Email, rec.Balance, rec.LedgerSum)
		}
	}
	return mismatches, nil
}
