// Package seed carrega o conjunto inicial de contas e produtos.
package seed

import "goloja/internal/domain"

// UserFixture é uma conta de exemplo com a senha em texto puro.
type UserFixture struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

// Users são as contas criadas pelo seed.
var Users = []UserFixture{
	{Name: "Administrador", Email: "admin@goloja.dev", Password: "123456789", IsAdmin: true},
	{Name: "Cliente Exemplo", Email: "user@goloja.dev", Password: "123456"},
}

// Products é o catálogo inicial. IDs e datas são atribuídos pelo Loader.
var Products = []domain.Product{
	{
		Name: "Nike Slim shirt", Slug: "nike-slim-shirt", Category: "Camisas", Brand: "Nike", Size: "M",
		Coding: "NK-CAM-001", Image: "/images/p1.jpg", Description: "high quality shirt",
		Price: 120, CountInStock: 10, Rating: 4.5, NumReviews: 20, Featured: true,
	},
	{
		Name: "Adidas Fit Shirt", Slug: "adidas-fit-shirt", Category: "Camisas", Brand: "Adidas", Size: "G",
		Coding: "AD-CAM-001", Image: "/images/p2.jpg", Description: "high quality product",
		Price: 250, CountInStock: 20, Rating: 4.0, NumReviews: 10,
	},
	{
		Name: "Nike Slim Pant", Slug: "nike-slim-pant", Category: "Calças", Brand: "Nike", Size: "40",
		Coding: "NK-CAL-001", Image: "/images/p3.jpg", Description: "high quality product",
		Price: 25, CountInStock: 0, Rating: 4.5, NumReviews: 14,
	},
	{
		Name: "Adidas Fit Pant", Slug: "adidas-fit-pant", Category: "Calças", Brand: "Puma", Size: "42",
		Coding: "AD-CAL-001", Image: "/images/p4.jpg", Description: "high quality product",
		Price: 65, CountInStock: 5, Rating: 4.5, NumReviews: 10,
	},
}
