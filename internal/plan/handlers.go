package plan

import (
	"backend-trailbook/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Planned
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		p, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	})

	r.Get("/:ownerID", func(c *fiber.Ctx) error {
		plans, err := svc.List(c.Context(), c.Params("ownerID"))
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(plans)
	})

	r.Get("/:ownerID/:id", func(c *fiber.Ctx) error {
		p, err := svc.Get(c.Context(), c.Params("ownerID"), c.Params("id"))
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(p)
	})

	r.Post("/:ownerID/:id/join", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		p, err := svc.Join(c.Context(), c.Params("ownerID"), c.Params("id"), body.UserID)
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(p)
	})

	r.Post("/:ownerID/:id/leave", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		p, err := svc.Leave(c.Context(), c.Params("ownerID"), c.Params("id"), body.UserID)
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(p)
	})

	r.Post("/:ownerID/:id/start", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		rec, err := svc.Start(c.Context(), c.Params("ownerID"), c.Params("id"), body.UserID)
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	})

	r.Post("/:ownerID/:id/cancel", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		if err := svc.Cancel(c.Context(), c.Params("ownerID"), c.Params("id"), body.UserID); err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
