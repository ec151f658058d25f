package hike

import (
	"backend-trailbook/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/:userID", authMiddleware, func(c *fiber.Ctx) error {
		var req Record
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		rec, err := svc.Create(c.Context(), c.Params("userID"), req)
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	})

	r.Get("/:userID", func(c *fiber.Ctx) error {
		records, err := svc.List(c.Context(), c.Params("userID"))
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(records)
	})

	r.Get("/:userID/:id", func(c *fiber.Ctx) error {
		rec, err := svc.Get(c.Context(), c.Params("userID"), c.Params("id"))
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(rec)
	})

	r.Put("/:userID/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Record
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		rec, err := svc.Update(c.Context(), c.Params("userID"), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(rec)
	})

	r.Post("/:userID/:id/complete", authMiddleware, func(c *fiber.Ctx) error {
		rec, err := svc.Complete(c.Context(), c.Params("userID"), c.Params("id"))
		if err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.JSON(rec)
	})

	r.Delete("/:userID/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("userID"), c.Params("id")); err != nil {
			return fiber.NewError(domain.HTTPStatus(err), err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
