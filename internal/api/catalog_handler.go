package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/repository"
)

// CatalogHandler serves the read-only lookups scheduling forms need.
type CatalogHandler struct {
	typeRepo     repository.TrainingTypeRepository
	locationRepo repository.LocationRepository
}

func NewCatalogHandler(typeRepo repository.TrainingTypeRepository, locationRepo repository.LocationRepository) *CatalogHandler {
	return &CatalogHandler{typeRepo: typeRepo, locationRepo: locationRepo}
}

func (h *CatalogHandler) ListTrainingTypes(c *fiber.Ctx) error {
	types, err := h.typeRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch training types"})
	}
	return c.Status(fiber.StatusOK).JSON(types)
}

func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.locationRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch locations"})
	}
	return c.Status(fiber.StatusOK).JSON(locations)
}
