package schema

import (
	"errors"
	"fmt"
	"sort"

	"DragonLens/internal/model"
)

var (
	ErrUnknownEntityType     = errors.New("unknown entity type")
	ErrUnsupportedAdjustType = errors.New("unsupported adjust type")
)

// Resolver maps entity types to their default adjustment convention and
// price-bar datasets.
type Resolver interface {
	DefaultAdjustType(entityType string) (model.AdjustType, error)
	BarSchema(entityType string, level model.Level, adjust model.AdjustType) (model.BarSchema, error)
}

type entry struct {
	defaultAdjust model.AdjustType
	supported     map[model.AdjustType]bool
}

// Registry is a Resolver backed by registered entity types.
// It is populated at startup and read-only afterwards.
type Registry struct {
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// DefaultRegistry knows stocks (backward-adjusted by default), ETFs
// (forward-adjusted) and indexes (unadjusted only).
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("stock", model.AdjustBackward, model.AdjustNone, model.AdjustForward, model.AdjustBackward)
	r.Register("etf", model.AdjustForward, model.AdjustNone, model.AdjustForward, model.AdjustBackward)
	r.Register("index", model.AdjustNone, model.AdjustNone)
	return r
}

// Register adds or replaces an entity type. The default adjust type is
// always supported.
func (r *Registry) Register(entityType string, def model.AdjustType, supported ...model.AdjustType) {
	e := entry{defaultAdjust: def, supported: map[model.AdjustType]bool{def: true}}
	for _, a := range supported {
		e.supported[a] = true
	}
	r.entries[entityType] = e
}

func (r *Registry) DefaultAdjustType(entityType string) (model.AdjustType, error) {
	e, ok := r.entries[entityType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}
	return e.defaultAdjust, nil
}

func (r *Registry) BarSchema(entityType string, level model.Level, adjust model.AdjustType) (model.BarSchema, error) {
	e, ok := r.entries[entityType]
	if !ok {
		return model.BarSchema{}, fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}
	if !e.supported[adjust] {
		return model.BarSchema{}, fmt.Errorf("%w: %s for %s", ErrUnsupportedAdjustType, adjust, entityType)
	}
	return model.BarSchema{
		EntityType: entityType,
		Level:      level,
		AdjustType: adjust,
		Table:      tableName(entityType, level, adjust),
	}, nil
}

// Schemas lists every daily schema the registry can resolve, sorted by
// table name. The store migrates one table per schema.
func (r *Registry) Schemas() []model.BarSchema {
	var out []model.BarSchema
	for entityType, e := range r.entries {
		for adjust := range e.supported {
			out = append(out, model.BarSchema{
				EntityType: entityType,
				Level:      model.Level1Day,
				AdjustType: adjust,
				Table:      tableName(entityType, model.Level1Day, adjust),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Table < out[j].Table })
	return out
}

// stock_1d_hfq_kdata; unadjusted bars drop the adjust segment: index_1d_kdata.
func tableName(entityType string, level model.Level, adjust model.AdjustType) string {
	if adjust == model.AdjustNone {
		return fmt.Sprintf("%s_%s_kdata", entityType, level)
	}
	return fmt.Sprintf("%s_%s_%s_kdata", entityType, level, adjust)
}
