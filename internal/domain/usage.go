package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UsageScenario is the expected utilization for one year.
// Visit counts are annual; drug fill counts are per month.
type UsageScenario struct {
	PrimaryCare     int `yaml:"primary_care" json:"primary_care"`
	Specialist      int `yaml:"specialist" json:"specialist"`
	UrgentCare      int `yaml:"urgent_care" json:"urgent_care"`
	Virtual         int `yaml:"virtual" json:"virtual"`
	EmergencyRoom   int `yaml:"emergency_room" json:"emergency_room"`
	Lab             int `yaml:"lab" json:"lab"`
	BasicImaging    int `yaml:"basic_imaging" json:"basic_imaging"`
	AdvancedImaging int `yaml:"advanced_imaging" json:"advanced_imaging"`
	Outpatient      int `yaml:"outpatient" json:"outpatient"`
	Inpatient       int `yaml:"inpatient" json:"inpatient"`
	Surgery         int `yaml:"surgery" json:"surgery"`

	Tier1 int `yaml:"tier_1" json:"tier_1"`
	Tier2 int `yaml:"tier_2" json:"tier_2"`
	Tier3 int `yaml:"tier_3" json:"tier_3"`
	Tier4 int `yaml:"tier_4" json:"tier_4"`
	Tier5 int `yaml:"tier_5" json:"tier_5"`
	Tier6 int `yaml:"tier_6" json:"tier_6"`
}

// Visits returns the annual visit count for a category
func (u UsageScenario) Visits(c Category) int {
	switch c {
	case PrimaryCare:
		return u.PrimaryCare
	case Specialist:
		return u.Specialist
	case UrgentCare:
		return u.UrgentCare
	case VirtualVisit:
		return u.Virtual
	case EmergencyRoom:
		return u.EmergencyRoom
	case LabTests:
		return u.Lab
	case BasicImaging:
		return u.BasicImaging
	case AdvancedImaging:
		return u.AdvancedImaging
	case Outpatient:
		return u.Outpatient
	case Inpatient:
		return u.Inpatient
	case Surgery:
		return u.Surgery
	}
	return 0
}

// WithVisits returns a copy of the scenario with the annual visit count of
// one category replaced
func (u UsageScenario) WithVisits(c Category, visits int) UsageScenario {
	switch c {
	case PrimaryCare:
		u.PrimaryCare = visits
	case Specialist:
		u.Specialist = visits
	case UrgentCare:
		u.UrgentCare = visits
	case VirtualVisit:
		u.Virtual = visits
	case EmergencyRoom:
		u.EmergencyRoom = visits
	case LabTests:
		u.Lab = visits
	case BasicImaging:
		u.BasicImaging = visits
	case AdvancedImaging:
		u.AdvancedImaging = visits
	case Outpatient:
		u.Outpatient = visits
	case Inpatient:
		u.Inpatient = visits
	case Surgery:
		u.Surgery = visits
	}
	return u
}

// Fills returns the monthly fill count for a drug tier
func (u UsageScenario) Fills(t DrugTier) int {
	switch t {
	case Tier1:
		return u.Tier1
	case Tier2:
		return u.Tier2
	case Tier3:
		return u.Tier3
	case Tier4:
		return u.Tier4
	case Tier5:
		return u.Tier5
	case Tier6:
		return u.Tier6
	}
	return 0
}

// MedicalBill is a one-time expense priced against every compared plan
type MedicalBill struct {
	ID          string          `yaml:"id,omitempty" json:"id"`
	Description string          `yaml:"description" json:"description"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
}

// NewMedicalBill creates a bill with a fresh identifier
func NewMedicalBill(description string, amount decimal.Decimal) MedicalBill {
	return MedicalBill{
		ID:          uuid.NewString(),
		Description: description,
		Amount:      amount,
	}
}
