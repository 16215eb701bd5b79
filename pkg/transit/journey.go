package transit

// Leg is one uninterrupted ride (or walk between platforms) within a journey.
type Leg struct {
	FromStopID string `json:"fromStopId" groups:"basic"`
	ToStopID   string `json:"toStopId" groups:"basic"`

	RouteID string `json:"routeId,omitempty" groups:"basic"`
	TripID  string `json:"tripId,omitempty" groups:"basic"`

	DepartureTime int `json:"departureTime" groups:"basic"`
	ArrivalTime   int `json:"arrivalTime" groups:"basic"`

	IsTransfer bool `json:"isTransfer" groups:"basic"`
}

// ScheduledJourney is one concrete way of travelling between two stops, bound
// to real trips. All times are seconds since local midnight of the service
// date and may exceed 86399.
type ScheduledJourney struct {
	Legs []Leg `json:"legs" groups:"basic"`

	DepartureTime int `json:"departureTime" groups:"basic"`
	ArrivalTime   int `json:"arrivalTime" groups:"basic"`
	TotalDuration int `json:"totalDuration" groups:"basic"`
	Transfers     int `json:"transfers" groups:"basic"`
}

// NewScheduledJourney derives the journey level fields from its legs.
// Transfers is always len(legs)-1, clamped at zero.
func NewScheduledJourney(legs []Leg) ScheduledJourney {
	journey := ScheduledJourney{Legs: legs}

	if len(legs) > 0 {
		journey.DepartureTime = legs[0].DepartureTime
		journey.ArrivalTime = legs[len(legs)-1].ArrivalTime
		journey.TotalDuration = journey.ArrivalTime - journey.DepartureTime
		journey.Transfers = len(legs) - 1
	}

	return journey
}
