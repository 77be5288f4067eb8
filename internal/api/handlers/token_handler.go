package handlers

import (
	"Pantry-Ledger/domain"
	"Pantry-Ledger/internal/api/presenters"
	"Pantry-Ledger/pkg/jwt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	TokenHandler interface {
		IssueToken(c *fiber.Ctx) error
	}

	tokenHandler struct {
		jwtService jwt.JWTService
		validator  *validator.Validate
	}
)

func NewTokenHandler(jwtService jwt.JWTService, validator *validator.Validate) TokenHandler {
	return &tokenHandler{
		jwtService: jwtService,
		validator:  validator,
	}
}

// IssueToken mints an owner-scoped bearer token. The body is optional; with
// no owner id a fresh owner is created.
func (h *tokenHandler) IssueToken(c *fiber.Ctx) error {
	req := new(domain.OwnerTokenRequest)

	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
		if err := h.validator.Struct(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedIssueToken, err)
		}
	}

	ownerID := req.OwnerID
	if ownerID == "" {
		ownerID = uuid.New().String()
	}

	res := domain.OwnerTokenResponse{
		OwnerID: ownerID,
		Token:   h.jwtService.GenerateTokenOwner(ownerID),
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessIssueToken)
}
