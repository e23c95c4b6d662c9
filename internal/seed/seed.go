// internal/seed/seed.go

// Package seed provisions the well-known test cards for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/sanjaybh2003/PayTabs-Assignment/internal/domain"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/pin"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/repository"
)

// testCards are the cards provisioned on first start. The third card sits
// in an unsupported range and exists to exercise the gateway's routing
// decline.
var testCards = []struct {
	CardNumber string
	PIN        string
	Balance    string
}{
	{"4000123456789012", "1234", "1000.00"},
	{"4000123456789013", "5678", "500.00"},
	{"5000123456789012", "9999", "2000.00"},
}

// Run creates the test cards if no cards exist yet. It is a no-op on a
// populated store.
func Run(ctx context.Context, q repository.DBExecutor, cardRepo repository.CardRepository, logger *slog.Logger) error {
	count, err := cardRepo.CountCards(ctx, q)
	if err != nil {
		return fmt.Errorf("seed: failed to count cards: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, tc := range testCards {
		balance, err := decimal.NewFromString(tc.Balance)
		if err != nil {
			return fmt.Errorf("seed: invalid balance %q: %w", tc.Balance, err)
		}
		card := domain.NewCard(tc.CardNumber, pin.Hash(tc.PIN), balance)
		if err := cardRepo.CreateCard(ctx, q, card); err != nil {
			return fmt.Errorf("seed: failed to create card %s: %w", tc.CardNumber, err)
		}
		logger.Info("test card provisioned", "card_number", tc.CardNumber, "balance", tc.Balance)
	}

	return nil
}
