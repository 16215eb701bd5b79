package transit

type Trip struct {
	ID        string `bson:"trip_id" json:"trip_id" groups:"basic"`
	RouteID   string `bson:"route_id" json:"route_id" groups:"basic"`
	ServiceID string `bson:"service_id" json:"service_id" groups:"detailed"`

	// Headsign is the rider-facing label for the trip and the only trip
	// identifier ever surfaced to a user.
	Headsign    string `bson:"trip_headsign,omitempty" json:"trip_headsign,omitempty" groups:"basic"`
	DirectionID int    `bson:"direction_id" json:"direction_id" groups:"detailed"`
}

type StopTime struct {
	TripID       string `bson:"trip_id" json:"trip_id" groups:"basic"`
	StopSequence int    `bson:"stop_sequence" json:"stop_sequence" groups:"basic"`
	StopID       string `bson:"stop_id" json:"stop_id" groups:"basic"`

	// Seconds since local midnight of the service date. Values of 86400 and
	// above belong to trips running past midnight and must never be wrapped.
	ArrivalTime   int `bson:"arrival_time" json:"arrival_time" groups:"basic"`
	DepartureTime int `bson:"departure_time" json:"departure_time" groups:"basic"`

	PickupType  int `bson:"pickup_type" json:"pickup_type" groups:"detailed"`
	DropOffType int `bson:"drop_off_type" json:"drop_off_type" groups:"detailed"`
}
