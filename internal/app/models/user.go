package models

import "medconsult-service/internal/pkg/constvars"

type User struct {
	ID           string
	Name         *string
	Email        string
	Phone        string
	PasswordHash string
	IsVerified   bool
	Role         string
	TimeModel
}

func (u *User) IsAdministrator() bool {
	return u != nil && u.Role == constvars.RoleAdministrator
}

func (u *User) IsDoctor() bool {
	return u != nil && u.Role == constvars.RoleDoctor
}

func (u *User) IsPatient() bool {
	return u != nil && u.Role == constvars.RolePatient
}

// DisplayName falls back to the email when no name was given at signup.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}
