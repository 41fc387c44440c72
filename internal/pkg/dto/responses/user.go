package responses

import "time"

type UserProfile struct {
	UserID     string    `json:"user_id"`
	Name       *string   `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}
