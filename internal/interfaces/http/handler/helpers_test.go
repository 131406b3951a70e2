package handler

import (
	"github.com/google/uuid"

	"github.com/peeves/backend/internal/infrastructure/auth"
)

func testAdminClaims() *auth.Claims {
	return &auth.Claims{
		UserID: uuid.NewString(),
		Email:  "admin@example.com",
		Admin:  true,
	}
}
