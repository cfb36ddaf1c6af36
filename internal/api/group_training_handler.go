package api

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/model"
	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/repository"
	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/service"
)

type GroupTrainingHandler struct {
	trainingService service.GroupTrainingService
	validate        *validator.Validate
}

func NewGroupTrainingHandler(trainingService service.GroupTrainingService) *GroupTrainingHandler {
	return &GroupTrainingHandler{
		trainingService: trainingService,
		validate:        validator.New(),
	}
}

type GroupTrainingRequestBody struct {
	TrainingTypeID uuid.UUID   `json:"training_type_id" validate:"required"`
	TrainerIDs     []uuid.UUID `json:"trainer_ids" validate:"required,min=1"`
	LocationID     uuid.UUID   `json:"location_id" validate:"required"`
	StartAt        time.Time   `json:"start_at" validate:"required"`
	EndAt          time.Time   `json:"end_at" validate:"required"`
	Capacity       int         `json:"capacity" validate:"required,min=1"`
}

func (b *GroupTrainingRequestBody) toRequest() service.GroupTrainingRequest {
	return service.GroupTrainingRequest{
		TrainingTypeID: b.TrainingTypeID,
		TrainerIDs:     b.TrainerIDs,
		LocationID:     b.LocationID,
		StartAt:        b.StartAt,
		EndAt:          b.EndAt,
		Capacity:       b.Capacity,
	}
}

func (h *GroupTrainingHandler) parseBody(c *fiber.Ctx) (*GroupTrainingRequestBody, error) {
	var body GroupTrainingRequestBody
	if err := c.BodyParser(&body); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&body); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}
	return &body, nil
}

// Group trainings are scheduled by staff, never by members.
func requireManager(c *fiber.Ctx) error {
	if GetRoleFromClaims(c) != model.RoleManager {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "Forbidden",
			"message": "Only managers can schedule group trainings",
		})
	}
	return nil
}

func (h *GroupTrainingHandler) Create(c *fiber.Ctx) error {
	if err := requireManager(c); err != nil {
		return err
	}

	body, err := h.parseBody(c)
	if body == nil {
		return err
	}

	created, err := h.trainingService.Create(c.Context(), body.toRequest())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *GroupTrainingHandler) Update(c *fiber.Ctx) error {
	if err := requireManager(c); err != nil {
		return err
	}

	trainingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training ID format"})
	}

	body, err := h.parseBody(c)
	if body == nil {
		return err
	}

	updated, err := h.trainingService.Update(c.Context(), trainingID, body.toRequest())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *GroupTrainingHandler) Delete(c *fiber.Ctx) error {
	if err := requireManager(c); err != nil {
		return err
	}

	trainingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training ID format"})
	}

	snapshot, err := h.trainingService.Delete(c.Context(), trainingID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(snapshot)
}

func (h *GroupTrainingHandler) Enroll(c *fiber.Ctx) error {
	trainingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training ID format"})
	}

	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	placement, err := h.trainingService.Enroll(c.Context(), trainingID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Enrolled successfully",
		"placement": placement,
	})
}

func (h *GroupTrainingHandler) CancelEnrollment(c *fiber.Ctx) error {
	trainingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training ID format"})
	}

	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	if err := h.trainingService.CancelEnrollment(c.Context(), trainingID, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Enrollment cancelled"})
}

func (h *GroupTrainingHandler) GetDetails(c *fiber.Ctx) error {
	trainingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training ID format"})
	}

	training, err := h.trainingService.GetDetails(c.Context(), trainingID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(training)
}

func (h *GroupTrainingHandler) List(c *fiber.Ctx) error {
	var filter repository.GroupTrainingFilter

	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'from' date format"})
		}
		filter.From = &parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'to' date format"})
		}
		filter.To = &parsed
	}
	if typeID := c.Query("training_type_id"); typeID != "" {
		parsed, err := uuid.Parse(typeID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training type ID format"})
		}
		filter.TrainingTypeID = &parsed
	}

	trainings, err := h.trainingService.List(c.Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(trainings)
}

func (h *GroupTrainingHandler) ListMine(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	trainings, err := h.trainingService.ListByParticipant(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(trainings)
}
