package domain

import (
	"errors"
	"os"
)

var (
	MessageFailedBodyRequest    = "failed to process request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageSuccessIssueToken    = "token issued successfully"
	MessageFailedIssueToken     = "failed to issue token"

	JwtSecret = os.Getenv("JWT_SECRET")

	ErrParseUUID          = errors.New("failed to parse UUID")
	ErrUnauthorizedAccess = errors.New("unauthorized access")
	ErrTokenNotFound      = errors.New("failed to token not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

type (
	// OwnerTokenRequest bootstraps owner scoping for a single-user install.
	// An omitted owner id mints a token for a fresh owner.
	OwnerTokenRequest struct {
		OwnerID string `json:"owner_id" validate:"omitempty,uuid"`
	}

	OwnerTokenResponse struct {
		OwnerID string `json:"owner_id"`
		Token   string `json:"token"`
	}
)
