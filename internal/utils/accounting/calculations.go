package accounting

import (
	"fmt"

	"github.com/finvera/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the correct sign to an entry amount based on the
// account type's normal balance side.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func SignedAmount(amount decimal.Decimal, direction domain.Direction, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
	if !direction.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown entry direction %q", direction)
	}
	if direction == accountType.NormalSide() {
		return amount, nil
	}
	return amount.Neg(), nil
}

// ValidateBalanced checks the double-entry invariant over a set of entry
// lines: at least two lines, every amount strictly positive, and the sum of
// debit amounts exactly equal to the sum of credit amounts.
func ValidateBalanced(entries []domain.Entry) error {
	if len(entries) < 2 {
		return fmt.Errorf("journal must have at least two entries")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, e := range entries {
		if e.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("entry amount must be positive for account %s", e.AccountID)
		}
		switch e.Direction {
		case domain.Debit:
			debits = debits.Add(e.Amount)
		case domain.Credit:
			credits = credits.Add(e.Amount)
		default:
			return fmt.Errorf("unknown entry direction %q for account %s", e.Direction, e.AccountID)
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("journal entries do not balance: debits sum is %s and credits sum is %s",
			debits.String(), credits.String())
	}
	return nil
}
