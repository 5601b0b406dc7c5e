package models

import "time"

// User represents an account held by the auth service. Other services never
// see this record; they work from token claims only.
type User struct {
	ID           int64     `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	FirstName    string    `bson:"first_name" json:"first_name"`
	LastName     string    `bson:"last_name" json:"last_name"`
	Patronymic   string    `bson:"patronymic" json:"patronymic"`
	Position     string    `bson:"position" json:"position"`
	Department   string    `bson:"department" json:"department"`
	Phone        string    `bson:"phone" json:"phone"`
	IsActive     bool      `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// UserRegistration is the payload accepted by the register endpoint.
type UserRegistration struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Patronymic      string `json:"patronymic"`
	Position        string `json:"position"`
	Department      string `json:"department"`
	Phone           string `json:"phone"`
}

// UserUpdate carries the mutable profile fields. Pointers distinguish
// "absent" from "set to empty" for partial updates.
type UserUpdate struct {
	Email      *string `json:"email,omitempty"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Patronymic *string `json:"patronymic,omitempty"`
	Position   *string `json:"position,omitempty"`
	Department *string `json:"department,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}
