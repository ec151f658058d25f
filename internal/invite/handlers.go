package invite

import (
	"backend-trailbook/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			From        string  `json:"from_user_id"`
			To          string  `json:"to_user_id"`
			HikeID      string  `json:"hike_id"`
			HikeDetails Details `json:"hike_details"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		inv, err := svc.Send(c.Context(), body.From, body.To, body.HikeID, body.HikeDetails)
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(inv)
	})

	r.Get("/:userID", func(c *fiber.Ctx) error {
		invs, err := svc.ListForUser(c.Context(), c.Params("userID"))
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(invs)
	})

	r.Post("/:id/accept", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		inv, created, err := svc.Accept(c.Context(), c.Params("id"), body.UserID)
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(fiber.Map{"invitation": inv, "planned_hike": created})
	})

	r.Post("/:id/reject", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		inv, err := svc.Reject(c.Context(), c.Params("id"), body.UserID)
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(inv)
	})

	r.Post("/:id/cancel", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		inv, err := svc.Cancel(c.Context(), c.Params("id"), body.UserID)
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(inv)
	})
}
