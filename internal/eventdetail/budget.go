package eventdetail

import (
	"context"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/idgen"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/optimistic"
)

// BudgetTab is the event's budget. Only managers and owners see it.
type BudgetTab struct {
	tab
	items *optimistic.Collection[*model.BudgetItem]
}

// BudgetTotals sums the budget lines. Paid is the actual amount of paid
// lines; Remaining is what is left of the plan after actual spending.
type BudgetTotals struct {
	Planned   float64
	Actual    float64
	Paid      float64
	Remaining float64
}

func newBudgetTab(t tab, items []*model.BudgetItem) *BudgetTab {
	return &BudgetTab{tab: t, items: newCollection(t, items,
		func(v *model.BudgetItem) string { return v.ID },
		func(v *model.BudgetItem, id string) { v.ID = id })}
}

// Items returns the budget lines, or ErrForbidden for viewers who cannot
// manage the budget.
func (t *BudgetTab) Items() ([]*model.BudgetItem, error) {
	if err := require(t.page.Perms.CanManageBudget); err != nil {
		return nil, err
	}
	return t.items.Items(), nil
}

// Totals sums the budget lines.
func (t *BudgetTab) Totals() BudgetTotals {
	var tot BudgetTotals
	for _, b := range t.items.Items() {
		tot.Planned += b.Planned
		tot.Actual += b.Actual
		if b.Paid {
			tot.Paid += b.Actual
		}
	}
	tot.Remaining = tot.Planned - tot.Actual
	return tot
}

func (t *BudgetTab) Add(ctx context.Context, b *model.BudgetItem) (*model.BudgetItem, error) {
	if err := require(t.page.Perms.CanManageBudget); err != nil {
		return nil, err
	}
	b.EventID = t.eventID()
	if err := model.ValidateBudgetItem(b); err != nil {
		return nil, err
	}
	return t.items.Create(ctx, b, t.page.backend.CreateBudgetItem, optimistic.Messages{})
}

// SetPaid marks a line as paid or unpaid.
func (t *BudgetTab) SetPaid(ctx context.Context, id string, paid bool) (*model.BudgetItem, error) {
	return t.update(ctx, id, map[string]any{"is_paid": paid}, func(b *model.BudgetItem) { b.Paid = paid })
}

// SetActual records the amount actually spent on a line.
func (t *BudgetTab) SetActual(ctx context.Context, id string, amount float64) (*model.BudgetItem, error) {
	if err := model.ValidateBudgetItem(&model.BudgetItem{Title: "-", Actual: amount}); err != nil {
		return nil, err
	}
	return t.update(ctx, id, map[string]any{"actual_amount": amount}, func(b *model.BudgetItem) { b.Actual = amount })
}

func (t *BudgetTab) update(ctx context.Context, id string, fields map[string]any, apply func(*model.BudgetItem)) (*model.BudgetItem, error) {
	if err := require(t.page.Perms.CanManageBudget); err != nil {
		return nil, err
	}
	if idgen.IsTemp(id) {
		return nil, ErrPending
	}
	return t.items.Update(ctx, id,
		func(b *model.BudgetItem) *model.BudgetItem {
			apply(b)
			return b
		},
		func(ctx context.Context, b *model.BudgetItem) (*model.BudgetItem, error) {
			return t.page.backend.UpdateBudgetItem(ctx, b.ID, fields)
		}, optimistic.Messages{})
}

func (t *BudgetTab) Remove(ctx context.Context, id string) error {
	if err := require(t.page.Perms.CanManageBudget); err != nil {
		return err
	}
	return t.items.Delete(ctx, id, func(ctx context.Context, id string) error {
		return t.page.backend.DeleteBudgetItem(ctx, t.eventID(), id)
	}, optimistic.Messages{})
}
