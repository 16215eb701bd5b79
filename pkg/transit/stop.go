package transit

type Stop struct {
	ID   string `bson:"stop_id" json:"stop_id" groups:"basic"`
	Code string `bson:"stop_code,omitempty" json:"stop_code,omitempty" groups:"detailed"`
	Name string `bson:"stop_name" json:"stop_name" groups:"basic"`

	Latitude  float64 `bson:"stop_lat" json:"stop_lat" groups:"detailed"`
	Longitude float64 `bson:"stop_lon" json:"stop_lon" groups:"detailed"`

	// A stop with a parent is a physical platform/quay; the parent itself is a
	// grouping station and usually has no departures of its own.
	ParentStation string `bson:"parent_station,omitempty" json:"parent_station,omitempty" groups:"detailed"`
	LocationType  int    `bson:"location_type" json:"location_type" groups:"detailed"`
}

// ScoredStop is a Stop ranked against one search query. It only lives for the
// duration of that query.
type ScoredStop struct {
	Stop `bson:",inline" groups:"basic"`

	MatchScore   int      `bson:"-" json:"matchScore" groups:"basic"`
	MatchedWords []string `bson:"-" json:"matchedWords" groups:"basic"`
}
