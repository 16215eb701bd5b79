package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/sysdevrun/transitchat/pkg/resolver"
)

func StopsRouter(router fiber.Router, stopResolver *resolver.Resolver) {
	router.Get("/search", searchStops(stopResolver))
}

func searchStops(stopResolver *resolver.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Query("name")
		if name == "" {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter name must be provided",
			})
		}

		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter limit should be an integer",
			})
		}

		stops, err := stopResolver.SearchStopsByWords(c.Context(), name, limit)
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		groups := []string{"basic"}
		if c.QueryBool("detailed") {
			groups = append(groups, "detailed")
		}

		stopsReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: groups,
		}, stops)
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sheriff could not reduce stops",
			})
		}

		return c.JSON(stopsReduced)
	}
}
