package selector

import (
	"errors"

	"DragonLens/internal/model"
	"DragonLens/internal/schema"
	"DragonLens/internal/store"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoPriceBars     = errors.New("no price bars")
)

// Default arguments used by the original dragon-and-tiger research.
const (
	DefaultTopCount   = 40
	DefaultProvider   = "em"
	DefaultEntityType = "stock"
	InstitutionDesk   = "机构专用"
)

var (
	DefaultHorizons = []int{5, 10, 20, 60, 90}
	DefaultPlayers  = []string{InstitutionDesk, "东方财富证券股份有限公司拉萨团结路第二证券营业部"}
)

// Selector computes rankings, success rates and cap buckets over the
// disclosure and price-bar datasets. It holds no state between calls.
type Selector struct {
	Store   store.Store
	Schemas schema.Resolver
	Tiers   model.CapTiers
}

// New creates a Selector.
func New(st store.Store, schemas schema.Resolver, tiers model.CapTiers) *Selector {
	return &Selector{Store: st, Schemas: schemas, Tiers: tiers}
}
