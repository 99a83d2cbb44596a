package domain

import "time"

// Customer é o cadastro de cliente da loja.
// email, social, address, phone e cpf são únicos na coleção.
type Customer struct {
	ID        string    `json:"_id" bson:"_id"`
	Name      string    `json:"name" bson:"name" validate:"required"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Social    string    `json:"social" bson:"social" validate:"required"`
	Address   string    `json:"address" bson:"address" validate:"required"`
	City      string    `json:"city" bson:"city" validate:"required"`
	Phone     string    `json:"phone" bson:"phone" validate:"required"`
	CPF       string    `json:"cpf" bson:"cpf" validate:"required"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
