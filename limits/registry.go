package limits

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds per-(provider, model) limits. It is built once from the
// baked-in table and may receive runtime upserts; it is safe for concurrent
// use. Construct one at the composition root and pass it by reference into
// calculators — there is no package-level singleton, so tests and multi-tenant
// processes can hold independently configured registries.
type Registry struct {
	mu     sync.RWMutex
	models map[Provider]map[string]ModelLimits
}

// NewRegistry creates a registry seeded with the baked-in limits table.
// The table is deep-copied so upserts never mutate the base data.
func NewRegistry() *Registry {
	models := make(map[Provider]map[string]ModelLimits, len(defaultLimits))
	for provider, table := range defaultLimits {
		cloned := make(map[string]ModelLimits, len(table))
		for model, lim := range table {
			cloned[model] = lim
		}
		models[provider] = cloned
	}
	return &Registry{models: models}
}

// RawLimits returns the registered limits for the pair, or ErrModelNotFound.
func (r *Registry) RawLimits(provider Provider, model string) (ModelLimits, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, ok := r.models[provider]
	if !ok {
		return ModelLimits{}, fmt.Errorf("%w: %s/%s", ErrModelNotFound, provider, model)
	}
	lim, ok := table[model]
	if !ok {
		return ModelLimits{}, fmt.Errorf("%w: %s/%s", ErrModelNotFound, provider, model)
	}
	return lim, nil
}

// EffectiveLimits returns the derived limits for the pair.
// The derivation is pure; absent an intervening UpsertModel, repeated calls
// return identical results.
func (r *Registry) EffectiveLimits(provider Provider, model string) (EffectiveLimits, error) {
	raw, err := r.RawLimits(provider, model)
	if err != nil {
		return EffectiveLimits{}, err
	}
	return raw.Effective(), nil
}

// UpsertModel inserts or overwrites the limits for the pair, last write wins.
// No plausibility validation is performed; callers own the numbers they
// register. Upserts are not persisted — merge an override file at startup
// (LoadOverrides) to carry custom models across restarts.
func (r *Registry) UpsertModel(provider Provider, model string, lim ModelLimits) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, ok := r.models[provider]
	if !ok {
		table = make(map[string]ModelLimits)
		r.models[provider] = table
	}
	table[model] = lim
}

// ProviderFromModel returns the first provider, in the fixed providerOrder,
// whose table contains the model id. The ordering makes the ambiguous case
// (same id under two providers) deterministic; callers that cannot tolerate
// it must supply the provider explicitly.
func (r *Registry) ProviderFromModel(model string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, provider := range providerOrder {
		if _, ok := r.models[provider][model]; ok {
			return provider, true
		}
	}
	return "", false
}

// IsModelSupported reports whether the pair is registered.
func (r *Registry) IsModelSupported(provider Provider, model string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.models[provider][model]
	return ok
}

// ModelsForProvider returns the registered model ids for a provider,
// sorted for consistent ordering.
func (r *Registry) ModelsForProvider(provider Provider) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table := r.models[provider]
	models := make([]string, 0, len(table))
	for model := range table {
		models = append(models, model)
	}
	sort.Strings(models)
	return models
}

// LegacyMaxTokens is a total fallback for callers that must get some output
// cap. It returns the registered effective output cap when the pair is known,
// else a small hardcoded per-provider default. It never fails.
func (r *Registry) LegacyMaxTokens(provider Provider, model string) int {
	if eff, err := r.EffectiveLimits(provider, model); err == nil {
		return eff.MaxOutputEff
	}
	if v, ok := legacyMaxTokens[provider]; ok {
		return v
	}
	return legacyDefaultMaxTokens
}
