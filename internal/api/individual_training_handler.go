package api

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/service"
)

type IndividualTrainingHandler struct {
	trainingService service.IndividualTrainingService
	validate        *validator.Validate
}

func NewIndividualTrainingHandler(trainingService service.IndividualTrainingService) *IndividualTrainingHandler {
	return &IndividualTrainingHandler{
		trainingService: trainingService,
		validate:        validator.New(),
	}
}

type IndividualTrainingRequestBody struct {
	TrainerID uuid.UUID `json:"trainer_id" validate:"required"`
	StartAt   time.Time `json:"start_at" validate:"required"`
	EndAt     time.Time `json:"end_at" validate:"required"`
	Remarks   string    `json:"remarks,omitempty" validate:"max=500"`
}

type AcceptTrainingRequestBody struct {
	LocationID uuid.UUID `json:"location_id" validate:"required"`
}

func (h *IndividualTrainingHandler) Request(c *fiber.Ctx) error {
	clientID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var body IndividualTrainingRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	created, err := h.trainingService.Request(c.Context(), clientID, service.IndividualTrainingRequest{
		TrainerID: body.TrainerID,
		StartAt:   body.StartAt,
		EndAt:     body.EndAt,
		Remarks:   body.Remarks,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *IndividualTrainingHandler) Accept(c *fiber.Ctx) error {
	trainerID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	trainingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training ID format"})
	}

	var body AcceptTrainingRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	accepted, err := h.trainingService.Accept(c.Context(), trainerID, trainingID, body.LocationID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(accepted)
}

func (h *IndividualTrainingHandler) Reject(c *fiber.Ctx) error {
	trainerID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	trainingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training ID format"})
	}

	rejected, err := h.trainingService.Reject(c.Context(), trainerID, trainingID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(rejected)
}

func (h *IndividualTrainingHandler) Cancel(c *fiber.Ctx) error {
	clientID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	trainingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training ID format"})
	}

	if err := h.trainingService.Cancel(c.Context(), clientID, trainingID); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Training request cancelled"})
}

func (h *IndividualTrainingHandler) ListMine(c *fiber.Ctx) error {
	clientID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	trainings, err := h.trainingService.ListByClient(c.Context(), clientID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(trainings)
}

func (h *IndividualTrainingHandler) ListAssigned(c *fiber.Ctx) error {
	trainerID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	trainings, err := h.trainingService.ListByTrainer(c.Context(), trainerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(trainings)
}
