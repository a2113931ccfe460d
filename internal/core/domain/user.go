package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account able to obtain prediction API tokens. The
// prediction core itself never sees users; they live entirely in the
// auth layer.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
