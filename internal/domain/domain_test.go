package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCategoryLabels(t *testing.T) {
	expected := []string{
		"Primary Care Visit", "Specialist Visit", "Urgent Care", "Virtual Visits",
		"Emergency Room", "Lab Tests", "Basic Imaging", "Advanced Imaging",
		"Outpatient Visits", "Inpatient Visits", "Surgery/Procedures",
	}

	cats := Categories()
	require.Len(t, cats, len(expected))
	for i, c := range cats {
		assert.Equal(t, expected[i], c.String())
		parsed, err := ParseCategory(expected[i])
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseCategory("primary care visit")
	assert.Error(t, err, "labels are matched exactly")
	assert.False(t, Category(42).Valid())
	assert.True(t, Category(42).ReferencePrice().IsZero())
}

func TestCategoryGroupsCoverEveryCategory(t *testing.T) {
	seen := map[Category]int{}
	for _, c := range BasicMedicalCategories {
		seen[c]++
	}
	for _, c := range MajorMedicalCategories {
		seen[c]++
	}
	for _, c := range Categories() {
		assert.Equal(t, 1, seen[c], "%s should be in exactly one group", c)
	}
}

func TestReferencePrices(t *testing.T) {
	prices := map[Category]int64{
		PrimaryCare: 150, Specialist: 200, UrgentCare: 100, LabTests: 50, VirtualVisit: 75,
		EmergencyRoom: 1000, BasicImaging: 200, AdvancedImaging: 800, Outpatient: 500,
		Inpatient: 2000, Surgery: 1500,
	}
	for c, p := range prices {
		assert.True(t, c.ReferencePrice().Equal(decimal.NewFromInt(p)), c.String())
	}

	tierPrices := []int64{20, 25, 30, 50, 80, 200}
	for i, tier := range DrugTiers() {
		assert.True(t, tier.ReferencePrice().Equal(decimal.NewFromInt(tierPrices[i])), tier.String())
	}
}

func TestDrugTierLabels(t *testing.T) {
	assert.Equal(t, "Tier 1", Tier1.String())
	assert.Equal(t, "Tier 6 - Specialty Drugs", Tier6.String())

	tier, err := ParseDrugTier("Tier 4")
	require.NoError(t, err)
	assert.Equal(t, Tier4, tier)

	_, err = ParseDrugTier("Tier 7")
	assert.Error(t, err)
}

func TestParseBenefitKind(t *testing.T) {
	tests := map[string]BenefitKind{
		"copay":                  KindCopay,
		"deductible":             KindDeductible,
		"deductible_coinsurance": KindDeductibleCoinsurance,
		"coinsurance":            KindCoinsurance,
		"deductible_copay":       KindDeductibleCopay,
		"other":                  KindOther,
		"":                       KindOther,
		"Copay":                  KindOther,
		"tiered":                 KindOther,
	}
	for text, kind := range tests {
		assert.Equal(t, kind, ParseBenefitKind(text), "%q", text)
	}
	assert.Equal(t, "other", BenefitKind(99).String())
}

func samplePlan() PlanDefinition {
	return PlanDefinition{
		ID:                     "gold",
		Name:                   "Gold PPO",
		Type:                   "PPO",
		AnnualDeductible:       decimal.NewFromInt(500),
		AnnualOOPMax:           decimal.NewFromInt(3000),
		PrescriptionDeductible: decimal.NewFromInt(100),
		Benefits: map[Category]BenefitRule{
			PrimaryCare:   Copay(decimal.NewFromInt(25)),
			EmergencyRoom: DeductibleCoinsurance(decimal.NewFromInt(1000), decimal.NewFromInt(20)),
			Surgery:       DeductibleCopay(decimal.NewFromInt(500), decimal.RequireFromString("12.50")),
		},
		Prescription: map[DrugTier]BenefitRule{
			Tier1: Copay(decimal.NewFromInt(10)),
			Tier6: Coinsurance(decimal.NewFromInt(30)),
		},
	}
}

func assertPlansEqual(t *testing.T, want, got PlanDefinition) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Type, got.Type)
	assert.True(t, want.AnnualDeductible.Equal(got.AnnualDeductible))
	assert.True(t, want.AnnualOOPMax.Equal(got.AnnualOOPMax))
	assert.True(t, want.PrescriptionDeductible.Equal(got.PrescriptionDeductible))
	assert.True(t, want.Premium.Equal(got.Premium))
	require.Len(t, got.Benefits, len(want.Benefits))
	for c, rule := range want.Benefits {
		other, ok := got.Benefits[c]
		require.True(t, ok, c.String())
		assert.Equal(t, rule.Kind, other.Kind)
		assert.True(t, rule.Amount.Equal(other.Amount))
		assert.True(t, rule.Percentage.Equal(other.Percentage))
		assert.True(t, rule.CopayAddOn.Equal(other.CopayAddOn))
	}
	require.Len(t, got.Prescription, len(want.Prescription))
	for tier, rule := range want.Prescription {
		other, ok := got.Prescription[tier]
		require.True(t, ok, tier.String())
		assert.Equal(t, rule.Kind, other.Kind)
		assert.True(t, rule.Amount.Equal(other.Amount))
		assert.True(t, rule.Percentage.Equal(other.Percentage))
	}
}

func TestPlanDefinition_YAMLUsesLabels(t *testing.T) {
	data, err := yaml.Marshal(samplePlan())
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "Primary Care Visit:")
	assert.Contains(t, text, "Surgery/Procedures:")
	assert.Contains(t, text, "Tier 6 - Specialty Drugs")
	assert.Contains(t, text, "kind: deductible_coinsurance")

	var decoded PlanDefinition
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assertPlansEqual(t, samplePlan(), decoded)
}

func TestPlanDefinition_JSONRoundTrip(t *testing.T) {
	plan := samplePlan().WithPremium(decimal.RequireFromString("1450.75"))

	data, err := json.Marshal(plan)
	require.NoError(t, err)

	var decoded PlanDefinition
	require.NoError(t, json.Unmarshal(data, &decoded))
	assertPlansEqual(t, plan, decoded)
}

func TestPlanDefinition_UnknownKindDecodesToOther(t *testing.T) {
	doc := `
name: Legacy
annual_deductible: 100
annual_oop_max: 1000
benefits:
  Lab Tests:
    kind: tiered_copay
    amount: 5
`
	var plan PlanDefinition
	require.NoError(t, yaml.Unmarshal([]byte(doc), &plan))
	assert.Equal(t, KindOther, plan.Benefits[LabTests].Kind)
}

func TestPlanDefinition_UnknownCategoryRejected(t *testing.T) {
	doc := `
name: Broken
benefits:
  Chiropractic:
    kind: copay
    amount: 30
`
	var plan PlanDefinition
	assert.Error(t, yaml.Unmarshal([]byte(doc), &plan))
}

func TestPlanDefinition_WithPremiumDoesNotMutate(t *testing.T) {
	plan := samplePlan()
	priced := plan.WithPremium(decimal.NewFromInt(900))

	assert.True(t, plan.Premium.IsZero())
	assert.True(t, priced.Premium.Equal(decimal.NewFromInt(900)))

	priced.Benefits[LabTests] = Copay(decimal.NewFromInt(1))
	_, leaked := plan.Benefits[LabTests]
	assert.False(t, leaked, "copy must not share rule maps")
}

func TestNewPlanDefinitionAndBillIDs(t *testing.T) {
	a := NewPlanDefinition("A", "HMO")
	b := NewPlanDefinition("B", "HMO")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotNil(t, a.Benefits)

	bill := NewMedicalBill("Ambulance", decimal.NewFromInt(900))
	assert.Len(t, bill.ID, 36)
}

func TestUsageScenario_Accessors(t *testing.T) {
	u := UsageScenario{
		PrimaryCare: 1, Specialist: 2, UrgentCare: 3, Virtual: 4, EmergencyRoom: 5, Lab: 6,
		BasicImaging: 7, AdvancedImaging: 8, Outpatient: 9, Inpatient: 10, Surgery: 11,
		Tier1: 1, Tier2: 2, Tier3: 3, Tier4: 4, Tier5: 5, Tier6: 6,
	}
	for i, c := range Categories() {
		assert.Equal(t, i+1, u.Visits(c), c.String())
	}
	for i, tier := range DrugTiers() {
		assert.Equal(t, i+1, u.Fills(tier), tier.String())
	}
	assert.Equal(t, 0, u.Visits(Category(-1)))
}

func TestUsageScenario_WithVisits(t *testing.T) {
	base := UsageScenario{Specialist: 2, Tier1: 1}
	for _, c := range Categories() {
		changed := base.WithVisits(c, 40)
		assert.Equal(t, 40, changed.Visits(c), c.String())
		assert.Equal(t, 1, changed.Tier1)
	}
	assert.Equal(t, 2, base.Specialist, "receiver is not modified")
}

func TestConfiguration_SelectedPlans(t *testing.T) {
	cfg := Configuration{
		Plans: []PlanDefinition{
			{ID: "a", Name: "A", Premium: decimal.NewFromInt(100)},
			{ID: "b", Name: "B"},
		},
	}

	all := cfg.SelectedPlans()
	require.Len(t, all, 2)
	assert.True(t, all[0].Premium.Equal(decimal.NewFromInt(100)))

	cfg.Selected = []PlanSelection{
		{PlanID: "b", Premium: decimal.NewFromInt(2400)},
		{PlanID: "missing"},
		{PlanID: "a", Premium: decimal.NewFromInt(1800)},
	}
	picked := cfg.SelectedPlans()
	require.Len(t, picked, 2)
	assert.Equal(t, "B", picked[0].Name)
	assert.True(t, picked[0].Premium.Equal(decimal.NewFromInt(2400)))
	assert.True(t, picked[1].Premium.Equal(decimal.NewFromInt(1800)))
	assert.True(t, cfg.Plans[0].Premium.Equal(decimal.NewFromInt(100)), "selection must not mutate candidates")
}

func TestConfiguration_StoredPlans(t *testing.T) {
	cfg := Configuration{
		Plans:  []PlanDefinition{{ID: "a", Name: "A"}},
		Stored: []PlanDefinition{{ID: "a", Name: "Stored A"}, {ID: "s", Name: "S"}},
	}

	all := cfg.SelectedPlans()
	require.Len(t, all, 1, "stored plans are compared only when selected")
	assert.Equal(t, "A", all[0].Name)

	found, ok := cfg.FindPlan("a")
	require.True(t, ok)
	assert.Equal(t, "A", found.Name)

	cfg.Selected = []PlanSelection{{PlanID: "s"}, {PlanID: "a"}}
	picked := cfg.SelectedPlans()
	require.Len(t, picked, 2)
	assert.Equal(t, "S", picked[0].Name)
	assert.Equal(t, "A", picked[1].Name)
}
