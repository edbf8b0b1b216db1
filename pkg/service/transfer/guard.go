package transfer

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vmunteanu/mdbank/pkg/config"
	"github.com/vmunteanu/mdbank/pkg/domain"
)

// HighRiskGuard rejects transfers above the manual-approval limit. It is a
// plain pre-check composed in front of the engine calls by the HTTP layer,
// not a wrapper around the service.
type HighRiskGuard struct {
	limit decimal.Decimal
}

// NewHighRiskGuard reads the limit from configuration, defaulting to 10000.
func NewHighRiskGuard(cfg *config.Transfer) *HighRiskGuard {
	limit := decimal.NewFromInt(10000)
	if cfg != nil {
		if l, err := decimal.NewFromString(cfg.HighRiskLimit); err == nil && l.IsPositive() {
			limit = l
		}
	}
	return &HighRiskGuard{limit: limit}
}

// Check returns domain.ErrHighRiskTransfer when amount exceeds the limit.
func (g *HighRiskGuard) Check(amount decimal.Decimal) error {
	if amount.GreaterThan(g.limit) {
		return fmt.Errorf("%w: transfers above %s require manager approval",
			domain.ErrHighRiskTransfer, g.limit.StringFixed(0))
	}
	return nil
}
