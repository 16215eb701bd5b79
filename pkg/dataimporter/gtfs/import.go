package gtfs

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sysdevrun/transitchat/pkg/database"
	"github.com/sysdevrun/transitchat/pkg/transit"
	"github.com/sysdevrun/transitchat/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
)

const insertBatchSize = 1000

// stopDocument adds the precomputed normalized name the resolver searches on.
type stopDocument struct {
	transit.Stop   `bson:",inline"`
	NameNormalized string `bson:"stop_name_normalized"`
}

// ImportIntoDatabase replaces the dataset with the parsed bundle. Time
// strings are converted to seconds since midnight here so queries never parse
// them again; "25:10:00" style past-midnight values are kept as-is.
func (s *Schedule) ImportIntoDatabase(ctx context.Context, db *database.Instance) error {
	stops := make([]any, 0, len(s.Stops))
	for _, stop := range s.Stops {
		stops = append(stops, stopDocument{
			Stop: transit.Stop{
				ID:            stop.ID,
				Code:          stop.Code,
				Name:          stop.Name,
				Latitude:      stop.Latitude,
				Longitude:     stop.Longitude,
				ParentStation: stop.Parent,
				LocationType:  stop.Type,
			},
			NameNormalized: util.NormalizeText(stop.Name),
		})
	}

	routes := make([]any, 0, len(s.Routes))
	for _, route := range s.Routes {
		routes = append(routes, transit.Route{
			ID:        route.ID,
			ShortName: route.ShortName,
			LongName:  route.LongName,
			Type:      transit.RouteType(route.Type),
		})
	}

	trips := make([]any, 0, len(s.Trips))
	for _, trip := range s.Trips {
		trips = append(trips, transit.Trip{
			ID:          trip.ID,
			RouteID:     trip.RouteID,
			ServiceID:   trip.ServiceID,
			Headsign:    trip.Headsign,
			DirectionID: trip.DirectionID,
		})
	}

	stopTimes := make([]any, 0, len(s.StopTimes))
	for _, stopTime := range s.StopTimes {
		arrival, err := transit.ParseTimeOfDay(stopTime.ArrivalTime)
		if err != nil {
			log.Debug().Str("trip", stopTime.TripID).Int("sequence", stopTime.StopSequence).Msg("Skipping stop time without arrival")
			continue
		}

		departure, err := transit.ParseTimeOfDay(stopTime.DepartureTime)
		if err != nil {
			departure = arrival
		}

		stopTimes = append(stopTimes, transit.StopTime{
			TripID:        stopTime.TripID,
			StopSequence:  stopTime.StopSequence,
			StopID:        stopTime.StopID,
			ArrivalTime:   arrival,
			DepartureTime: departure,
			PickupType:    stopTime.PickupType,
			DropOffType:   stopTime.DropOffType,
		})
	}

	calendars := make([]any, 0, len(s.Calendars))
	for _, calendar := range s.Calendars {
		calendars = append(calendars, transit.Calendar{
			ServiceID: calendar.ServiceID,
			Monday:    calendar.Monday == 1,
			Tuesday:   calendar.Tuesday == 1,
			Wednesday: calendar.Wednesday == 1,
			Thursday:  calendar.Thursday == 1,
			Friday:    calendar.Friday == 1,
			Saturday:  calendar.Saturday == 1,
			Sunday:    calendar.Sunday == 1,
			StartDate: calendar.Start,
			EndDate:   calendar.End,
		})
	}

	calendarDates := make([]any, 0, len(s.CalendarDates))
	for _, calendarDate := range s.CalendarDates {
		calendarDates = append(calendarDates, transit.CalendarDate{
			ServiceID:     calendarDate.ServiceID,
			Date:          calendarDate.Date,
			ExceptionType: calendarDate.ExceptionType,
		})
	}

	collections := []struct {
		name      string
		documents []any
	}{
		{"stops", stops},
		{"routes", routes},
		{"trips", trips},
		{"stop_times", stopTimes},
		{"calendars", calendars},
		{"calendar_dates", calendarDates},
	}

	for _, collection := range collections {
		if err := replaceCollection(ctx, db, collection.name, collection.documents); err != nil {
			return fmt.Errorf("failed to import %s: %w", collection.name, err)
		}

		log.Info().Str("collection", collection.name).Int("records", len(collection.documents)).Msg("Imported")
	}

	return nil
}

func replaceCollection(ctx context.Context, db *database.Instance, collectionName string, documents []any) error {
	collection := db.Collection(collectionName)

	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	for start := 0; start < len(documents); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(documents) {
			end = len(documents)
		}

		if _, err := collection.InsertMany(ctx, documents[start:end]); err != nil {
			return err
		}
	}

	return nil
}
