package transitdata

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/sysdevrun/transitchat/pkg/transit"
	"go.mongodb.org/mongo-driver/bson"
)

// GetActiveServiceIDs derives the set of service IDs running on a YYYYMMDD
// date: base calendar weekday & validity window, plus services added for that
// date by an exception, minus services removed by one. The result is cached
// per date when Redis is available; cache failures fall back to the query.
func (r *Repository) GetActiveServiceIDs(ctx context.Context, date string) ([]string, error) {
	if !transit.ValidDate(date) {
		return nil, fmt.Errorf("invalid date %q", date)
	}

	cacheKey := fmt.Sprintf("activeservices/%s", date)

	if r.serviceIDCache != nil {
		if cached, err := r.serviceIDCache.Get(ctx, cacheKey); err == nil {
			var serviceIDs []string
			if err := json.Unmarshal(cached, &serviceIDs); err == nil {
				return serviceIDs, nil
			}
		}
	}

	day, err := transit.ParseDate(date)
	if err != nil {
		return nil, err
	}

	active := map[string]bool{}

	calendarCursor, err := r.db.Collection("calendars").Find(ctx, bson.M{
		"start_date": bson.M{"$lte": date},
		"end_date":   bson.M{"$gte": date},
	})
	if err != nil {
		return nil, err
	}

	var calendars []transit.Calendar
	if err := calendarCursor.All(ctx, &calendars); err != nil {
		return nil, err
	}

	for _, calendar := range calendars {
		if calendar.RunsOn(day.Weekday()) {
			active[calendar.ServiceID] = true
		}
	}

	exceptionCursor, err := r.db.Collection("calendar_dates").Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, err
	}

	var exceptions []transit.CalendarDate
	if err := exceptionCursor.All(ctx, &exceptions); err != nil {
		return nil, err
	}

	for _, exception := range exceptions {
		switch exception.ExceptionType {
		case transit.CalendarExceptionAdded:
			active[exception.ServiceID] = true
		case transit.CalendarExceptionRemoved:
			delete(active, exception.ServiceID)
		}
	}

	serviceIDs := make([]string, 0, len(active))
	for serviceID := range active {
		serviceIDs = append(serviceIDs, serviceID)
	}
	sort.Strings(serviceIDs)

	if r.serviceIDCache != nil {
		encoded, _ := json.Marshal(serviceIDs)
		if err := r.serviceIDCache.Set(ctx, cacheKey, encoded, r.cacheOptions()...); err != nil {
			log.Debug().Err(err).Str("date", date).Msg("Failed to cache active service IDs")
		}
	}

	return serviceIDs, nil
}
