package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sysdevrun/transitchat/pkg/api/routes"
	"github.com/sysdevrun/transitchat/pkg/assistant"
)

func SetupServer(listen string, stack *assistant.Stack) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StopsRouter(group.Group("/stops"), stack.Resolver)
	routes.PlannerRouter(group.Group("/planner"), stack.ByName)
	routes.ChatRouter(group.Group("/chat"), stack.Assistant)

	return webApp.Listen(listen)
}
