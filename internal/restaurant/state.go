package restaurant

import (
	"github.com/spaghetto/manager/internal/business"
	"github.com/spaghetto/manager/internal/inventory"
	"github.com/spaghetto/manager/internal/model"
)

// State is a full snapshot of a restaurant.
type State struct {
	business.State

	Dishes []*model.Dish
}

// Snapshot captures the restaurant's state for serialization.
func (r *Restaurant) Snapshot() State {
	return State{
		State:  r.Business.Snapshot(),
		Dishes: r.dishes.All(),
	}
}

// Restore builds a restaurant from a snapshot.
func Restore(cfg business.Config, st State) *Restaurant {
	r := New(cfg)
	r.Business = business.Restore(cfg, st.State)
	r.dishes = inventory.New(st.Dishes...)
	r.SetHooks(business.Hooks{
		NextMonth: func(int) { r.onNextMonth() },
	})
	return r
}
