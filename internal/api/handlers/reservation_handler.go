package handlers

import (
	"Pantry-Ledger/domain"
	"Pantry-Ledger/internal/api/presenters"
	"Pantry-Ledger/pkg/reservation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReservationHandler interface {
		Reserve(c *fiber.Ctx) error
		Patch(c *fiber.Ctx) error
		Delete(c *fiber.Ctx) error
		GetReservations(c *fiber.Ctx) error
	}

	reservationHandler struct {
		reservationService reservation.ReservationService
		validator          *validator.Validate
	}
)

func NewReservationHandler(reservationService reservation.ReservationService, validator *validator.Validate) ReservationHandler {
	return &reservationHandler{
		reservationService: reservationService,
		validator:          validator,
	}
}

func (h *reservationHandler) Reserve(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	req := new(domain.CreateReservationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateReservation, err)
	}

	res, err := h.reservationService.Reserve(c.Context(), *req, ownerID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateReservation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateReservation)
}

func (h *reservationHandler) Patch(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	reservationID := c.Params("id")
	req := new(domain.PatchReservationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPatchReservation, err)
	}

	if err := h.reservationService.Patch(c.Context(), reservationID, *req, ownerID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPatchReservation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessPatchReservation)
}

func (h *reservationHandler) Delete(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	reservationID := c.Params("id")

	if err := h.reservationService.Delete(c.Context(), reservationID, ownerID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteReservation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteReservation)
}

func (h *reservationHandler) GetReservations(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)

	reservations, err := h.reservationService.GetReservations(c.Context(), ownerID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReservations, err)
	}

	return presenters.SuccessResponse(c, reservations, fiber.StatusOK, domain.MessageSuccessGetReservations)
}
