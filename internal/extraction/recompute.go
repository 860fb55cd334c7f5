package extraction

import "github.com/partyops/jumpkitchen/internal/domain/models"

// Recompute applies a partial update to a reservation and re-derives the
// quantity fields when the group size or the manual pizza extra changed.
// Meal time, package, cake type and option flags are never recomputed: an
// edited headcount rescales quantities, it does not reschedule the party.
func Recompute(r models.Reservation, u models.ReservationUpdate) models.Reservation {
	touched := applyUpdate(&r, u)
	if !touched {
		return r
	}

	r.Pizzas = 0
	if r.Package.IncludesPizzas() {
		r.Pizzas = PizzaBaseline(r.ChildCount)
	}
	r.Pizzas += r.PizzasExtra
	r.SnackCount = SnackBaseline(r.ChildCount)
	r.DrinkCount = r.SnackCount
	// Party bags are all-or-nothing: only rescale when the option is on.
	if r.PartyBagCount > 0 {
		r.PartyBagCount = r.ChildCount
	}
	return r
}

// applyUpdate overwrites every field present in the update, with no
// validation, and reports whether a quantity-driving field was touched.
func applyUpdate(r *models.Reservation, u models.ReservationUpdate) bool {
	if u.StartTime != nil {
		r.StartTime = *u.StartTime
	}
	if u.MealTime != nil {
		r.MealTime = *u.MealTime
	}
	if u.ChildName != nil {
		r.ChildName = *u.ChildName
	}
	if u.ChildAge != nil {
		r.ChildAge = *u.ChildAge
	}
	if u.ChildCount != nil {
		r.ChildCount = *u.ChildCount
	}
	if u.Package != nil {
		r.Package = *u.Package
	}
	if u.CakeType != nil {
		r.CakeType = *u.CakeType
	}
	if u.Pizzas != nil {
		r.Pizzas = *u.Pizzas
	}
	if u.PizzasExtra != nil {
		r.PizzasExtra = *u.PizzasExtra
	}
	if u.SnackCount != nil {
		r.SnackCount = *u.SnackCount
	}
	if u.DrinkCount != nil {
		r.DrinkCount = *u.DrinkCount
	}
	if u.PartyBagCount != nil {
		r.PartyBagCount = *u.PartyBagCount
	}
	if u.QueenPizza != nil {
		r.QueenPizza = *u.QueenPizza
	}
	if u.MargheritaPizza != nil {
		r.MargheritaPizza = *u.MargheritaPizza
	}
	if u.Champagne != nil {
		r.Champagne = *u.Champagne
	}
	if u.FreeText != nil {
		r.FreeText = *u.FreeText
	}
	if u.Done != nil {
		r.Done = *u.Done
	}
	return u.ChildCount != nil || u.PizzasExtra != nil
}
