package transit

type Route struct {
	ID string `bson:"route_id" json:"route_id" groups:"basic"`

	// ShortName is the only route name ever shown to or spoken at a user.
	ShortName string `bson:"route_short_name" json:"route_short_name" groups:"basic"`
	LongName  string `bson:"route_long_name,omitempty" json:"route_long_name,omitempty" groups:"detailed"`

	Type RouteType `bson:"route_type" json:"route_type" groups:"detailed"`
}

type RouteType int

const (
	RouteTypeTram RouteType = iota
	RouteTypeSubway
	RouteTypeRail
	RouteTypeBus
	RouteTypeFerry
	RouteTypeCableTram
	RouteTypeAerialLift
	RouteTypeFunicular
)
