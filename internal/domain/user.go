package domain

import "time"

// User representa a conta de acesso. A senha só existe como hash bcrypt.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SignupRequest é o payload de criação de conta.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SigninRequest é o payload de login.
type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate é a auto-atualização; campos vazios mantêm o valor atual.
type ProfileUpdate struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// AdminUserUpdate é a atualização feita por um administrador.
type AdminUserUpdate struct {
	Name    string `json:"name"`
	Email   string `json:"email" validate:"omitempty,email"`
	IsAdmin bool   `json:"isAdmin"`
}

// AuthResult é a resposta de signin e de atualização de perfil.
type AuthResult struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}
