package domain

import "time"

// OrderItem é uma linha do pedido. Nome, slug, imagem e preço são copiados
// do catálogo no momento da compra.
type OrderItem struct {
	Product  string  `json:"product" bson:"product"`
	Slug     string  `json:"slug" bson:"slug"`
	Name     string  `json:"name" bson:"name"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Image    string  `json:"image" bson:"image"`
	Price    float64 `json:"price" bson:"price"`
}

// ShippingAddress é o endereço de entrega (opcional).
type ShippingAddress struct {
	FullName   string `json:"fullName" bson:"fullName"`
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
	Country    string `json:"country" bson:"country"`
}

// PaymentResult é a confirmação do provedor de pagamento, gravada como recebida.
type PaymentResult struct {
	ID           string `json:"id" bson:"id"`
	Status       string `json:"status" bson:"status"`
	UpdateTime   string `json:"update_time" bson:"update_time"`
	EmailAddress string `json:"email_address,omitempty" bson:"email_address,omitempty"`
}

// Order é o pedido. PaidAt != nil sse IsPaid; DeliveredAt != nil sse IsDelivered.
type Order struct {
	ID              string           `json:"_id" bson:"_id"`
	User            string           `json:"user" bson:"user"`
	OrderItems      []OrderItem      `json:"orderItems" bson:"orderItems"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty" bson:"shippingAddress,omitempty"`
	PaymentMethod   string           `json:"paymentMethod" bson:"paymentMethod"`
	PaymentResult   *PaymentResult   `json:"paymentResult,omitempty" bson:"paymentResult,omitempty"`
	ItemsPrice      float64          `json:"itemsPrice" bson:"itemsPrice"`
	ShippingPrice   float64          `json:"shippingPrice" bson:"shippingPrice"`
	TaxPrice        float64          `json:"taxPrice" bson:"taxPrice"`
	TotalPrice      float64          `json:"totalPrice" bson:"totalPrice"`
	IsPaid          bool             `json:"isPaid" bson:"isPaid"`
	PaidAt          *time.Time       `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	IsDelivered     bool             `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt     *time.Time       `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	CreatedAt       time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// OrderStatus é o estado derivado das flags de pagamento e entrega.
type OrderStatus string

const (
	OrderCreated   OrderStatus = "created"
	OrderPaid      OrderStatus = "paid"
	OrderDelivered OrderStatus = "delivered"
)

// Status devolve o estado mais avançado atingido.
// Pago e entregue são independentes: um pedido entregue sem pagamento é "delivered".
func (o Order) Status() OrderStatus {
	switch {
	case o.IsDelivered:
		return OrderDelivered
	case o.IsPaid:
		return OrderPaid
	default:
		return OrderCreated
	}
}

// MarkPaid aplica a transição de pagamento. Reaplicar sobrescreve resultado e data.
func (o *Order) MarkPaid(result PaymentResult, at time.Time) {
	o.IsPaid = true
	o.PaidAt = &at
	o.PaymentResult = &result
	o.UpdatedAt = at
}

// MarkDelivered aplica a transição de entrega sem tocar no pagamento.
func (o *Order) MarkDelivered(at time.Time) {
	o.IsDelivered = true
	o.DeliveredAt = &at
	o.UpdatedAt = at
}

// PlaceOrderItem é a linha pedida pelo cliente: referência ao produto e quantidade.
type PlaceOrderItem struct {
	Product  string `json:"_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// PlaceOrderRequest é o payload de checkout.
type PlaceOrderRequest struct {
	OrderItems      []PlaceOrderItem `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	PaymentMethod   string           `json:"paymentMethod" validate:"required"`
	ShippingPrice   float64          `json:"shippingPrice" validate:"gte=0"`
	TaxPrice        float64          `json:"taxPrice" validate:"gte=0"`
}
