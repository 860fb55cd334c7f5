package models

// Package is the purchased party tier. Wire values match the upstream
// planning documents, which are produced in French.
type Package string

const (
	PackageClassic      Package = "Classique"
	PackageVIP          Package = "VIP"
	PackageMorningNight Package = "Morning/Night"
)

// IncludesPizzas reports whether the tier comes with pizzas.
func (p Package) IncludesPizzas() bool {
	return p == PackageVIP || p == PackageMorningNight
}

// CakeType identifies the birthday cake detected near a booking entry.
// Empty means no cake was detected.
type CakeType string

const (
	CakeNone              CakeType = ""
	CakeChocolateSoft     CakeType = "Moelleux Chocolat"
	CakeRaspberryBavarian CakeType = "Bavarois Framboise"
	CakeAppleTart         CakeType = "Tarte Pommes"
)

// Reservation is one child's birthday-party booking with its derived
// catering quantities. StartTime is kept exactly as found in the source
// schedule; MealTime is always derived from StartTime and Package.
type Reservation struct {
	ID              string   `bson:"id" json:"id"`
	StartTime       string   `bson:"start_time" json:"startTime"`
	MealTime        string   `bson:"meal_time" json:"mealTime"`
	ChildName       string   `bson:"child_name" json:"childName"`
	ChildAge        int      `bson:"child_age" json:"childAge"`
	ChildCount      int      `bson:"child_count" json:"childCount"`
	Package         Package  `bson:"package" json:"package"`
	CakeType        CakeType `bson:"cake_type" json:"cakeType"`
	Pizzas          int      `bson:"pizzas" json:"pizzas"`
	PizzasExtra     int      `bson:"pizzas_extra" json:"pizzasExtra"`
	SnackCount      int      `bson:"snack_count" json:"snackCount"`
	DrinkCount      int      `bson:"drink_count" json:"drinkCount"`
	PartyBagCount   int      `bson:"party_bag_count" json:"partyBagCount"`
	QueenPizza      bool     `bson:"queen_pizza" json:"queenPizza"`
	MargheritaPizza bool     `bson:"margherita_pizza" json:"margheritaPizza"`
	Champagne       bool     `bson:"champagne" json:"champagne"`
	FreeText        string   `bson:"free_text" json:"freeText"`
	Done            bool     `bson:"done" json:"done"`
}

// ReservationUpdate is a partial overwrite of a Reservation. Any field
// present replaces the stored value as-is; quantity recomputation is the
// caller's concern.
type ReservationUpdate struct {
	StartTime       *string   `json:"startTime,omitempty"`
	MealTime        *string   `json:"mealTime,omitempty"`
	ChildName       *string   `json:"childName,omitempty"`
	ChildAge        *int      `json:"childAge,omitempty"`
	ChildCount      *int      `json:"childCount,omitempty"`
	Package         *Package  `json:"package,omitempty"`
	CakeType        *CakeType `json:"cakeType,omitempty"`
	Pizzas          *int      `json:"pizzas,omitempty"`
	PizzasExtra     *int      `json:"pizzasExtra,omitempty"`
	SnackCount      *int      `json:"snackCount,omitempty"`
	DrinkCount      *int      `json:"drinkCount,omitempty"`
	PartyBagCount   *int      `json:"partyBagCount,omitempty"`
	QueenPizza      *bool     `json:"queenPizza,omitempty"`
	MargheritaPizza *bool     `json:"margheritaPizza,omitempty"`
	Champagne       *bool     `json:"champagne,omitempty"`
	FreeText        *string   `json:"freeText,omitempty"`
	Done            *bool     `json:"done,omitempty"`
}

// Validations maps reservation IDs to arbitrary per-category check marks
// used by kitchen and admin workflows. The categories are free-form labels
// chosen by the front end.
type Validations map[string]map[string]bool

// Set marks a validation category for a reservation.
func (v Validations) Set(reservationID, category string) {
	if v[reservationID] == nil {
		v[reservationID] = make(map[string]bool)
	}
	v[reservationID][category] = true
}

// Unset clears a validation category for a reservation.
func (v Validations) Unset(reservationID, category string) {
	if marks, ok := v[reservationID]; ok {
		delete(marks, category)
	}
}

// ScheduleDocument is the full per-venue state: the reservation list of the
// day plus the validation marks keyed by reservation ID.
type ScheduleDocument struct {
	Reservations []Reservation `bson:"reservations" json:"reservations"`
	Validations  Validations   `bson:"validations" json:"validations"`
}

// NewScheduleDocument returns an empty, ready-to-use document.
func NewScheduleDocument() ScheduleDocument {
	return ScheduleDocument{
		Reservations: []Reservation{},
		Validations:  Validations{},
	}
}

// FindReservation returns the index of the reservation with the given ID,
// or -1 when absent.
func (d *ScheduleDocument) FindReservation(id string) int {
	for i := range d.Reservations {
		if d.Reservations[i].ID == id {
			return i
		}
	}
	return -1
}
