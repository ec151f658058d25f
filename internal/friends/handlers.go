package friends

import (
	"backend-trailbook/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/status", func(c *fiber.Ctx) error {
		viewer := c.Query("viewer_id")
		target := c.Query("target_id")
		if viewer == "" || target == "" {
			return fiber.NewError(fiber.StatusBadRequest, "viewer_id and target_id required")
		}
		rel, err := svc.Status(c.Context(), viewer, target)
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(fiber.Map{"status": rel})
	})

	r.Post("/requests", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			From string `json:"from"`
			To   string `json:"to"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		req, err := svc.SendRequest(c.Context(), body.From, body.To)
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(req)
	})

	r.Post("/requests/:id/respond", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			ResponderID string `json:"responder_id"`
			Action      string `json:"action"`
		}
		if err := c.BodyParser(&body); err != nil || body.ResponderID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "responder_id and action required")
		}
		req, err := svc.Respond(c.Context(), c.Params("id"), body.ResponderID, body.Action)
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(req)
	})

	r.Get("/:userID", func(c *fiber.Ctx) error {
		overview, err := svc.Overview(c.Context(), c.Params("userID"))
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(overview)
	})
}
