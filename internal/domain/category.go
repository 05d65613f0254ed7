package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Category identifies a medical service category a plan attaches a benefit rule to
type Category int

const (
	PrimaryCare Category = iota
	Specialist
	UrgentCare
	VirtualVisit
	EmergencyRoom
	LabTests
	BasicImaging
	AdvancedImaging
	Outpatient
	Inpatient
	Surgery

	numCategories
)

var categoryLabels = [numCategories]string{
	PrimaryCare:     "Primary Care Visit",
	Specialist:      "Specialist Visit",
	UrgentCare:      "Urgent Care",
	VirtualVisit:    "Virtual Visits",
	EmergencyRoom:   "Emergency Room",
	LabTests:        "Lab Tests",
	BasicImaging:    "Basic Imaging",
	AdvancedImaging: "Advanced Imaging",
	Outpatient:      "Outpatient Visits",
	Inpatient:       "Inpatient Visits",
	Surgery:         "Surgery/Procedures",
}

// referencePrices are the assumed billed amounts per visit used for projection
var referencePrices = [numCategories]decimal.Decimal{
	PrimaryCare:     decimal.NewFromInt(150),
	Specialist:      decimal.NewFromInt(200),
	UrgentCare:      decimal.NewFromInt(100),
	VirtualVisit:    decimal.NewFromInt(75),
	EmergencyRoom:   decimal.NewFromInt(1000),
	LabTests:        decimal.NewFromInt(50),
	BasicImaging:    decimal.NewFromInt(200),
	AdvancedImaging: decimal.NewFromInt(800),
	Outpatient:      decimal.NewFromInt(500),
	Inpatient:       decimal.NewFromInt(2000),
	Surgery:         decimal.NewFromInt(1500),
}

// BasicMedicalCategories are summed into the basic medical cost bucket, in aggregation order
var BasicMedicalCategories = []Category{PrimaryCare, Specialist, UrgentCare, LabTests, VirtualVisit}

// MajorMedicalCategories are summed into the major medical cost bucket, in aggregation order
var MajorMedicalCategories = []Category{EmergencyRoom, BasicImaging, AdvancedImaging, Outpatient, Inpatient, Surgery}

// Categories returns every category in declaration order
func Categories() []Category {
	out := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	return c >= 0 && c < numCategories
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryLabels[c]
}

// ReferencePrice returns the fixed billed amount assumed for one visit
func (c Category) ReferencePrice() decimal.Decimal {
	if !c.Valid() {
		return decimal.Zero
	}
	return referencePrices[c]
}

// ParseCategory maps a benefit label such as "Lab Tests" to its Category
func ParseCategory(label string) (Category, error) {
	for c, l := range categoryLabels {
		if l == label {
			return Category(c), nil
		}
	}
	return 0, fmt.Errorf("unknown benefit category %q", label)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(categoryLabels[c]), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DrugTier identifies a prescription formulary tier
type DrugTier int

const (
	Tier1 DrugTier = iota
	Tier2
	Tier3
	Tier4
	Tier5
	Tier6

	numDrugTiers
)

var drugTierLabels = [numDrugTiers]string{
	Tier1: "Tier 1",
	Tier2: "Tier 2",
	Tier3: "Tier 3",
	Tier4: "Tier 4",
	Tier5: "Tier 5",
	Tier6: "Tier 6 - Specialty Drugs",
}

var drugTierPrices = [numDrugTiers]decimal.Decimal{
	Tier1: decimal.NewFromInt(20),
	Tier2: decimal.NewFromInt(25),
	Tier3: decimal.NewFromInt(30),
	Tier4: decimal.NewFromInt(50),
	Tier5: decimal.NewFromInt(80),
	Tier6: decimal.NewFromInt(200),
}

// DrugTiers returns every tier from Tier 1 to Tier 6
func DrugTiers() []DrugTier {
	out := make([]DrugTier, 0, numDrugTiers)
	for t := DrugTier(0); t < numDrugTiers; t++ {
		out = append(out, t)
	}
	return out
}

func (t DrugTier) Valid() bool {
	return t >= 0 && t < numDrugTiers
}

func (t DrugTier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("DrugTier(%d)", int(t))
	}
	return drugTierLabels[t]
}

// ReferencePrice returns the fixed billed amount assumed for one monthly fill
func (t DrugTier) ReferencePrice() decimal.Decimal {
	if !t.Valid() {
		return decimal.Zero
	}
	return drugTierPrices[t]
}

// ParseDrugTier maps a tier label such as "Tier 3" to its DrugTier
func ParseDrugTier(label string) (DrugTier, error) {
	for t, l := range drugTierLabels {
		if l == label {
			return DrugTier(t), nil
		}
	}
	return 0, fmt.Errorf("unknown drug tier %q", label)
}

func (t DrugTier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid drug tier %d", int(t))
	}
	return []byte(drugTierLabels[t]), nil
}

func (t *DrugTier) UnmarshalText(text []byte) error {
	parsed, err := ParseDrugTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
