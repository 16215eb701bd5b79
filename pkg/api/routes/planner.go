package routes

import (
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	iso8601 "github.com/senseyeio/duration"
	"github.com/sysdevrun/transitchat/pkg/itinerary"
)

func PlannerRouter(router fiber.Router, byName *itinerary.ByName) {
	router.Get("/:origin/:destination", planBetweenStops(byName))
}

func planBetweenStops(byName *itinerary.ByName) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin, err := url.QueryUnescape(c.Params("origin"))
		if err != nil {
			origin = c.Params("origin")
		}
		destination, err := url.QueryUnescape(c.Params("destination"))
		if err != nil {
			destination = c.Params("destination")
		}

		now := time.Now()
		date := c.Query("date", now.Format("20060102"))
		departureTime := c.Query("time", now.Format("15:04"))

		count, err := strconv.Atoi(c.Query("count", "3"))
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter count should be an integer",
			})
		}

		transfers, err := strconv.Atoi(c.Query("transfers", "2"))
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter transfers should be an integer",
			})
		}

		minTransferSeconds := 0
		if minimumTransferTime := c.Query("minimumTransferTime"); minimumTransferTime != "" {
			transferDuration, err := iso8601.ParseISO8601(minimumTransferTime)
			if err != nil {
				c.SendStatus(fiber.StatusBadRequest)
				return c.JSON(fiber.Map{
					"error": "Parameter minimumTransferTime should be an ISO8601 duration",
				})
			}

			base := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
			minTransferSeconds = int(transferDuration.Shift(base).Sub(base).Seconds())
		}

		result, err := byName.FindItineraryByName(c.Context(), origin, destination, date, departureTime, itinerary.NameOptions{
			MaxTransfers:               transfers,
			MinTransferDurationSeconds: minTransferSeconds,
			JourneysCount:              count,
		})
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.SendStatus(statusForResult(result))
		return c.JSON(result)
	}
}

// statusForResult maps a planner outcome to an HTTP status; the body always
// carries the full result so clients can branch on errorType either way.
func statusForResult(result *itinerary.Result) int {
	switch result.ErrorType {
	case "":
		return fiber.StatusOK
	case itinerary.ErrorBothStopsNotFound,
		itinerary.ErrorStartStopNotFound,
		itinerary.ErrorEndStopNotFound,
		itinerary.ErrorNoItineraryFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadRequest
	}
}
