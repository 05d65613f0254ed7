package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/plancost/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func storedPlan(id, name string) domain.PlanDefinition {
	return domain.PlanDefinition{
		ID:                     id,
		Name:                   name,
		Type:                   "EPO",
		AnnualDeductible:       decimal.NewFromInt(1500),
		AnnualOOPMax:           decimal.NewFromInt(6500),
		PrescriptionDeductible: decimal.NewFromInt(250),
		Benefits: map[domain.Category]domain.BenefitRule{
			domain.PrimaryCare:     domain.Copay(decimal.NewFromInt(30)),
			domain.Specialist:      domain.Copay(decimal.NewFromInt(60)),
			domain.EmergencyRoom:   domain.DeductibleCoinsurance(decimal.NewFromInt(1500), decimal.NewFromInt(20)),
			domain.AdvancedImaging: domain.DeductibleCopay(decimal.NewFromInt(1500), decimal.RequireFromString("37.5")),
			domain.LabTests:        {Kind: domain.KindOther},
		},
		Prescription: map[domain.DrugTier]domain.BenefitRule{
			domain.Tier1: domain.Copay(decimal.NewFromInt(5)),
			domain.Tier5: domain.Coinsurance(decimal.NewFromInt(40)),
			domain.Tier6: domain.Deductible(decimal.NewFromInt(250)),
		},
		Premium: decimal.RequireFromString("3120.48"),
	}
}

func canonical(t *testing.T, plan domain.PlanDefinition) string {
	t.Helper()
	data, err := yaml.Marshal(plan)
	require.NoError(t, err)
	return string(data)
}

func TestPlanRepository_RoundTrip(t *testing.T) {
	for name, store := range map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "plans.yaml")),
	} {
		t.Run(name, func(t *testing.T) {
			repo := NewPlanRepository(store)
			ctx := context.Background()
			plan := storedPlan("epo-1", "Silver EPO")

			require.NoError(t, repo.Save(ctx, plan))

			loaded, err := repo.Load(ctx, "epo-1")
			require.NoError(t, err)
			assert.Equal(t, canonical(t, plan), canonical(t, loaded), "round trip must be lossless")
			assert.True(t, loaded.Premium.Equal(plan.Premium))
			assert.Equal(t, domain.KindOther, loaded.Benefits[domain.LabTests].Kind)
		})
	}
}

func TestPlanRepository_ListAndRemove(t *testing.T) {
	repo := NewPlanRepository(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, storedPlan("3", "Zeta")))
	require.NoError(t, repo.Save(ctx, storedPlan("2", "Alpha")))
	require.NoError(t, repo.Save(ctx, storedPlan("1", "Alpha")))

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "1", plans[0].ID)
	assert.Equal(t, "2", plans[1].ID)
	assert.Equal(t, "Zeta", plans[2].Name)

	require.NoError(t, repo.Remove(ctx, "2"))
	plans, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 2)

	err = repo.Remove(ctx, "2")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Load(ctx, "2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepository_SaveReplaces(t *testing.T) {
	repo := NewPlanRepository(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, storedPlan("p", "Before")))
	require.NoError(t, repo.Save(ctx, storedPlan("p", "After")))

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "After", plans[0].Name)
}

func TestPlanRepository_RequiresID(t *testing.T) {
	repo := NewPlanRepository(NewMemoryStore())
	err := repo.Save(context.Background(), domain.PlanDefinition{Name: "No ID"})
	assert.Error(t, err)
}

func TestPlanRepository_CorruptRecord(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "plan:bad", "benefits:\n  Acupuncture:\n    kind: copay\n"))

	_, err := NewPlanRepository(store).Load(ctx, "bad")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode plan bad")
}
