// Package gtfs parses GTFS Schedule bundles and loads them into the dataset
// store in the shape the query layer expects.
package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

type Schedule struct {
	Agencies      []Agency
	Stops         []Stop
	Routes        []Route
	Trips         []Trip
	StopTimes     []StopTime
	Calendars     []Calendar
	CalendarDates []CalendarDate
}

// ParseZip reads a GTFS Schedule zip bundle. Files not part of the mapping
// (shapes, frequencies, fare rules) are skipped.
func ParseZip(path string) (*Schedule, error) {
	// Tolerate records with missing trailing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})

	schedule := &Schedule{}

	fileMap := map[string]interface{}{
		"agency.txt":         &schedule.Agencies,
		"stops.txt":          &schedule.Stops,
		"routes.txt":         &schedule.Routes,
		"trips.txt":          &schedule.Trips,
		"stop_times.txt":     &schedule.StopTimes,
		"calendar.txt":       &schedule.Calendars,
		"calendar_dates.txt": &schedule.CalendarDates,
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	for _, zipFile := range archive.File {
		destination, exists := fileMap[zipFile.Name]
		if !exists {
			log.Debug().Str("file", zipFile.Name).Msg("Skipping gtfs file")
			continue
		}

		log.Info().Str("file", zipFile.Name).Msg("Loading file")

		fileReader, err := zipFile.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", zipFile.Name, err)
		}

		err = gocsv.Unmarshal(fileReader, destination)
		fileReader.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", zipFile.Name, err)
		}
	}

	if len(schedule.Stops) == 0 || len(schedule.Trips) == 0 {
		return nil, fmt.Errorf("bundle at %s has no stops or no trips", path)
	}

	return schedule, nil
}

// LogSummary reports the record counts; handy when importing unknown feeds.
func (s *Schedule) LogSummary() {
	log.Info().
		Int("agencies", len(s.Agencies)).
		Int("stops", len(s.Stops)).
		Int("routes", len(s.Routes)).
		Int("trips", len(s.Trips)).
		Int("stop_times", len(s.StopTimes)).
		Int("calendars", len(s.Calendars)).
		Int("calendar_dates", len(s.CalendarDates)).
		Msg("Parsed GTFS bundle")
}
