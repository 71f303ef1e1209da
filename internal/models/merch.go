package models

import (
	"time"

	"github.com/uptrace/bun"
)

type MerchProduct struct {
	bun.BaseModel `bun:"table:merch_products"`

	ID          string    `bun:"id,pk" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description" json:"description"`
	Price       float64   `bun:"price,notnull" json:"price"`
	ImageURL    *string   `bun:"image_url" json:"imageUrl"`
	JumiaLink   string    `bun:"jumia_link" json:"jumiaLink"`
	Stock       int       `bun:"stock" json:"stock"`
	IsActive    bool      `bun:"is_active" json:"isActive"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"createdAt"`
}

// InsertMerchProduct uses a pointer for IsActive so "not supplied" can be
// told apart from an explicit false; absent defaults to true. ImageURL is a
// pointer too: a product without an image stores (and serves) null.
type InsertMerchProduct struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    *string `json:"imageUrl"`
	JumiaLink   string  `json:"jumiaLink"`
	Stock       int     `json:"stock"`
	IsActive    *bool   `json:"isActive"`
}

type MerchProductUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	JumiaLink   *string  `json:"jumiaLink"`
	Stock       *int     `json:"stock"`
	IsActive    *bool    `json:"isActive"`
}

func (u MerchProductUpdate) Apply(p *MerchProduct) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.ImageURL != nil {
		p.ImageURL = u.ImageURL
	}
	if u.JumiaLink != nil {
		p.JumiaLink = *u.JumiaLink
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}
}

type DeliveryAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type MerchOrder struct {
	bun.BaseModel `bun:"table:merch_orders"`

	ID               string          `bun:"id,pk" json:"id"`
	ProductID        string          `bun:"product_id,notnull" json:"productId"`
	CustomerName     string          `bun:"customer_name,notnull" json:"customerName"`
	CustomerEmail    string          `bun:"customer_email,notnull" json:"customerEmail"`
	CustomerPhone    string          `bun:"customer_phone,notnull" json:"customerPhone"`
	DeliveryAddress  DeliveryAddress `bun:"delivery_address,type:jsonb" json:"deliveryAddress"`
	Quantity         int             `bun:"quantity,notnull" json:"quantity"`
	TotalAmount      float64         `bun:"total_amount,notnull" json:"totalAmount"`
	PaymentStatus    string          `bun:"payment_status" json:"paymentStatus"`
	PaymentReference string          `bun:"payment_reference" json:"paymentReference"`
	TrackingNumber   string          `bun:"tracking_number" json:"trackingNumber"`
	OrderStatus      string          `bun:"order_status" json:"orderStatus"`
	CreatedAt        time.Time       `bun:"created_at,notnull" json:"createdAt"`
}

type InsertMerchOrder struct {
	ProductID        string          `json:"productId"`
	CustomerName     string          `json:"customerName"`
	CustomerEmail    string          `json:"customerEmail"`
	CustomerPhone    string          `json:"customerPhone"`
	DeliveryAddress  DeliveryAddress `json:"deliveryAddress"`
	Quantity         int             `json:"quantity"`
	TotalAmount      float64         `json:"totalAmount"`
	PaymentStatus    string          `json:"paymentStatus"`
	PaymentReference string          `json:"paymentReference"`
	OrderStatus      string          `json:"orderStatus"`
}

// MerchOrderUpdate never touches the tracking number.
type MerchOrderUpdate struct {
	CustomerName     *string          `json:"customerName"`
	CustomerEmail    *string          `json:"customerEmail"`
	CustomerPhone    *string          `json:"customerPhone"`
	DeliveryAddress  *DeliveryAddress `json:"deliveryAddress"`
	Quantity         *int             `json:"quantity"`
	TotalAmount      *float64         `json:"totalAmount"`
	PaymentStatus    *string          `json:"paymentStatus"`
	PaymentReference *string          `json:"paymentReference"`
	OrderStatus      *string          `json:"orderStatus"`
}

func (u MerchOrderUpdate) Apply(o *MerchOrder) {
	if u.CustomerName != nil {
		o.CustomerName = *u.CustomerName
	}
	if u.CustomerEmail != nil {
		o.CustomerEmail = *u.CustomerEmail
	}
	if u.CustomerPhone != nil {
		o.CustomerPhone = *u.CustomerPhone
	}
	if u.DeliveryAddress != nil {
		o.DeliveryAddress = *u.DeliveryAddress
	}
	if u.Quantity != nil {
		o.Quantity = *u.Quantity
	}
	if u.TotalAmount != nil {
		o.TotalAmount = *u.TotalAmount
	}
	if u.PaymentStatus != nil {
		o.PaymentStatus = *u.PaymentStatus
	}
	if u.PaymentReference != nil {
		o.PaymentReference = *u.PaymentReference
	}
	if u.OrderStatus != nil {
		o.OrderStatus = *u.OrderStatus
	}
}
