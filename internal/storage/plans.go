package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/plancost/internal/domain"
	"gopkg.in/yaml.v3"
)

const planKeyPrefix = "plan:"

// PlanRepository saves plan definitions as YAML documents under "plan:<id>"
type PlanRepository struct {
	store Store
}

// NewPlanRepository wraps a key/value store
func NewPlanRepository(store Store) *PlanRepository {
	return &PlanRepository{store: store}
}

func planKey(id string) string {
	return planKeyPrefix + id
}

// Save stores a plan, replacing any plan with the same id
func (r *PlanRepository) Save(ctx context.Context, plan domain.PlanDefinition) error {
	if plan.ID == "" {
		return fmt.Errorf("plan %q has no id", plan.Name)
	}

	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan %s: %w", plan.ID, err)
	}
	return r.store.Put(ctx, planKey(plan.ID), string(data))
}

// Load reads one plan; a missing plan yields an error wrapping ErrNotFound
func (r *PlanRepository) Load(ctx context.Context, id string) (domain.PlanDefinition, error) {
	value, err := r.store.Get(ctx, planKey(id))
	if err != nil {
		return domain.PlanDefinition{}, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	return decodePlan(id, value)
}

// List returns every stored plan ordered by name, then id
func (r *PlanRepository) List(ctx context.Context) ([]domain.PlanDefinition, error) {
	keys, err := r.store.Keys(ctx, planKeyPrefix)
	if err != nil {
		return nil, err
	}

	plans := make([]domain.PlanDefinition, 0, len(keys))
	for _, key := range keys {
		id := strings.TrimPrefix(key, planKeyPrefix)
		value, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load plan %s: %w", id, err)
		}
		plan, err := decodePlan(id, value)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	sort.SliceStable(plans, func(i, j int) bool {
		if plans[i].Name != plans[j].Name {
			return plans[i].Name < plans[j].Name
		}
		return plans[i].ID < plans[j].ID
	})
	return plans, nil
}

// Remove deletes a stored plan
func (r *PlanRepository) Remove(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, planKey(id)); err != nil {
		return fmt.Errorf("failed to remove plan %s: %w", id, err)
	}
	return nil
}

func decodePlan(id, value string) (domain.PlanDefinition, error) {
	var plan domain.PlanDefinition
	if err := yaml.Unmarshal([]byte(value), &plan); err != nil {
		return domain.PlanDefinition{}, fmt.Errorf("failed to decode plan %s: %w", id, err)
	}
	return plan, nil
}
