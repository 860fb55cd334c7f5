package extraction

import (
	"testing"

	"github.com/partyops/jumpkitchen/internal/domain/models"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func baseReservation() models.Reservation {
	return models.Reservation{
		ID:         "res_test",
		StartTime:  "14:00",
		MealTime:   "16:00",
		ChildName:  "Jean Dupont",
		ChildAge:   7,
		ChildCount: 10,
		Package:    models.PackageVIP,
		Pizzas:     PizzaBaseline(10),
		SnackCount: SnackBaseline(10),
		DrinkCount: SnackBaseline(10),
	}
}

func TestRecomputeChildCountRescalesQuantities(t *testing.T) {
	r := baseReservation()
	r.PizzasExtra = 2
	r.Pizzas = PizzaBaseline(10) + 2

	got := Recompute(r, models.ReservationUpdate{ChildCount: intPtr(16)})

	if got.Pizzas != PizzaBaseline(16)+2 {
		t.Errorf("pizzas = %d, want baseline(16)+extra = %d", got.Pizzas, PizzaBaseline(16)+2)
	}
	if got.SnackCount != 3 || got.DrinkCount != 3 {
		t.Errorf("snacks/drinks = %d/%d, want 3/3", got.SnackCount, got.DrinkCount)
	}
	if got.MealTime != "16:00" || got.Package != models.PackageVIP {
		t.Errorf("mealTime/package changed to %s/%s, edits must not reschedule", got.MealTime, got.Package)
	}
}

func TestRecomputeClassicPackageHasNoBasePizzas(t *testing.T) {
	r := baseReservation()
	r.Package = models.PackageClassic
	r.PizzasExtra = 1

	got := Recompute(r, models.ReservationUpdate{ChildCount: intPtr(20)})
	if got.Pizzas != 1 {
		t.Errorf("pizzas = %d, want only the manual extra for Classic", got.Pizzas)
	}
}

func TestRecomputePizzasExtraPersists(t *testing.T) {
	got := Recompute(baseReservation(), models.ReservationUpdate{PizzasExtra: intPtr(3)})
	if got.Pizzas != PizzaBaseline(10)+3 {
		t.Errorf("pizzas = %d, want %d", got.Pizzas, PizzaBaseline(10)+3)
	}

	// A later headcount edit keeps the extra on top of the new baseline.
	again := Recompute(got, models.ReservationUpdate{ChildCount: intPtr(12)})
	if again.Pizzas != PizzaBaseline(12)+3 {
		t.Errorf("pizzas after second edit = %d, want %d", again.Pizzas, PizzaBaseline(12)+3)
	}
}

func TestRecomputePartyBags(t *testing.T) {
	r := baseReservation()
	r.PartyBagCount = 0
	got := Recompute(r, models.ReservationUpdate{ChildCount: intPtr(18)})
	if got.PartyBagCount != 0 {
		t.Errorf("partyBagCount = %d, want 0 to stay 0", got.PartyBagCount)
	}

	r.PartyBagCount = 10
	got = Recompute(r, models.ReservationUpdate{ChildCount: intPtr(18)})
	if got.PartyBagCount != 18 {
		t.Errorf("partyBagCount = %d, want it reset to the new headcount 18", got.PartyBagCount)
	}
}

func TestRecomputeSkipsWhenNoQuantityFieldTouched(t *testing.T) {
	r := baseReservation()
	r.Pizzas = 99 // manually overridden, must survive a name-only edit

	got := Recompute(r, models.ReservationUpdate{
		ChildName: strPtr("Marie Curie"),
		FreeText:  strPtr("allergie arachide"),
		Done:      boolPtr(true),
	})

	if got.ChildName != "Marie Curie" || got.FreeText != "allergie arachide" || !got.Done {
		t.Errorf("update fields not applied: %+v", got)
	}
	if got.Pizzas != 99 {
		t.Errorf("pizzas = %d, want untouched 99", got.Pizzas)
	}
}

func TestRecomputeArbitraryOverwrite(t *testing.T) {
	// Field-level overwrite happens before recomputation, with no validation.
	got := Recompute(baseReservation(), models.ReservationUpdate{
		SnackCount: intPtr(42),
		ChildCount: intPtr(10),
	})
	// The recompute pass wins over the raw snack overwrite.
	if got.SnackCount != SnackBaseline(10) {
		t.Errorf("snackCount = %d, want recomputed %d", got.SnackCount, SnackBaseline(10))
	}

	noRecompute := Recompute(baseReservation(), models.ReservationUpdate{SnackCount: intPtr(42)})
	if noRecompute.SnackCount != 42 {
		t.Errorf("snackCount = %d, want raw overwrite 42", noRecompute.SnackCount)
	}
}
