package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/schedule"
	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/service"
)

// respondServiceError maps service sentinels onto statuses: not-found to
// 404, temporal validity to 400, conflicts to 409, access to 403 and
// everything else to 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTrainingTypeNotFound),
		errors.Is(err, service.ErrTrainerNotFound),
		errors.Is(err, service.ErrLocationNotFound),
		errors.Is(err, service.ErrTrainingNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, schedule.ErrPastDate),
		errors.Is(err, schedule.ErrStartAfterEnd):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrTrainerOccupied),
		errors.Is(err, service.ErrLocationOccupied),
		errors.Is(err, schedule.ErrAlreadyEnrolled),
		errors.Is(err, schedule.ErrNotEnrolled),
		errors.Is(err, service.ErrAlreadyAccepted),
		errors.Is(err, service.ErrAlreadyRejected):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})

	default:
		slog.ErrorContext(c.UserContext(), "Unexpected service error", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
