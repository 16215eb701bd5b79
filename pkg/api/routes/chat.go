package routes

import (
	"sync"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/sysdevrun/transitchat/pkg/assistant"
)

// chatSession keeps one conversation per process. A mutex serializes history
// updates while the busy flag rejects concurrent requests outright instead of
// queueing them behind a slow model call.
type chatSession struct {
	assistant *assistant.Assistant

	mutex    sync.Mutex
	exchange assistant.Exchange
	busy     atomic.Bool
}

type chatRequest struct {
	Message string `json:"message"`
}

func ChatRouter(router fiber.Router, chatAssistant *assistant.Assistant) {
	session := &chatSession{
		assistant: chatAssistant,
		exchange:  assistant.NewExchange(),
	}

	router.Post("/", session.handleMessage)
	router.Post("/reset", session.handleReset)
}

func (s *chatSession) handleMessage(c *fiber.Ctx) error {
	var request chatRequest
	if err := c.BodyParser(&request); err != nil || request.Message == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Body must contain a message",
		})
	}

	if !s.busy.CompareAndSwap(false, true) {
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": "Another exchange is already in progress",
		})
	}
	defer s.busy.Store(false)

	s.mutex.Lock()
	exchange := s.exchange
	s.mutex.Unlock()

	exchange, answer, err := s.assistant.RunExchange(c.Context(), exchange, request.Message)
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	s.mutex.Lock()
	s.exchange = exchange
	s.mutex.Unlock()

	return c.JSON(fiber.Map{
		"exchangeId": exchange.ID,
		"answer":     answer,
		"speech":     assistant.SpeakableText(answer),
		"usage":      exchange.Usage,
	})
}

func (s *chatSession) handleReset(c *fiber.Ctx) error {
	s.mutex.Lock()
	s.exchange = assistant.NewExchange()
	exchangeID := s.exchange.ID
	s.mutex.Unlock()

	return c.JSON(fiber.Map{
		"exchangeId": exchangeID,
	})
}
