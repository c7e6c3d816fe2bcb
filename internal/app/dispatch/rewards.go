// internal/app/dispatch/rewards.go
package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/domain/models"
)

// SaveGadget creates or updates a reward item; presence of an id decides.
func (d *Dispatcher) SaveGadget(ctx context.Context, g models.Gadget) (models.Gadget, error) {
	return d.rewards.UpsertGadget(ctx, g)
}

// SaveContest creates or updates a contest. A contest saved without a
// banner inherits the linked gadget's image, resolved now and stored on the
// contest: later edits to the gadget image do not ripple back.
func (d *Dispatcher) SaveContest(ctx context.Context, c models.Contest) (models.Contest, error) {
	if c.Banner == "" && c.RewardGadgetID != "" {
		gadget, err := d.rewards.GetGadget(ctx, c.RewardGadgetID)
		if err != nil {
			return models.Contest{}, err
		}
		c.Banner = gadget.Image
	}
	return d.rewards.UpsertContest(ctx, c)
}

// ProcessPurchaseRequest finalizes a pending request. A plain status flip;
// stock and point-balance compensation happen elsewhere in the shop's
// lifecycle, not here.
func (d *Dispatcher) ProcessPurchaseRequest(ctx context.Context, id, decision, decidedBy string) error {
	var status string
	switch decision {
	case VerdictApproved, "approve":
		status = models.PurchaseApproved
	case VerdictRejected, "reject":
		status = models.PurchaseRejected
	default:
		return ErrBadDecision
	}
	if decidedBy == "" {
		return ErrReviewerRequired
	}

	if err := d.rewards.DecidePurchase(ctx, id, status, decidedBy); err != nil {
		return err
	}
	d.log.Info("purchase request decided",
		zap.String("purchase_id", id),
		zap.String("status", status),
		zap.String("decided_by", decidedBy))
	return nil
}
