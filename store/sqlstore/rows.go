package sqlstore

import (
	"time"

	"github.com/Kariqs/kartdaily-api/models"
	"gorm.io/datatypes"
)

type userRow struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string
	Email     string `gorm:"size:191;uniqueIndex;not null"`
	Password  string
	IsAdmin   bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRow) TableName() string { return "users" }

func toUserRow(u *models.User) *userRow {
	return &userRow{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *userRow) model() models.User {
	return models.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		IsAdmin:   r.IsAdmin,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type productRow struct {
	ID           string `gorm:"primaryKey;size:36"`
	UserID       string `gorm:"size:36"`
	Name         string `gorm:"index"`
	Image        string
	Brand        string
	Category     string
	Description  string `gorm:"type:text"`
	Reviews      datatypes.JSONSlice[models.Review]
	Rating       float64 `gorm:"index"`
	NumReviews   int
	Price        float64
	CountInStock int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (productRow) TableName() string { return "products" }

func toProductRow(p *models.Product) *productRow {
	return &productRow{
		ID:           p.ID,
		UserID:       p.UserID,
		Name:         p.Name,
		Image:        p.Image,
		Brand:        p.Brand,
		Category:     p.Category,
		Description:  p.Description,
		Reviews:      datatypes.NewJSONSlice(p.Reviews),
		Rating:       p.Rating,
		NumReviews:   p.NumReviews,
		Price:        p.Price,
		CountInStock: p.CountInStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (r *productRow) model() models.Product {
	return models.Product{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		Image:        r.Image,
		Brand:        r.Brand,
		Category:     r.Category,
		Description:  r.Description,
		Reviews:      []models.Review(r.Reviews),
		Rating:       r.Rating,
		NumReviews:   r.NumReviews,
		Price:        r.Price,
		CountInStock: r.CountInStock,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type orderRow struct {
	ID              string `gorm:"primaryKey;size:36"`
	UserID          string `gorm:"size:36;index"`
	OrderItems      datatypes.JSONSlice[models.OrderItem]
	ShippingAddress datatypes.JSONType[models.ShippingAddress]
	PaymentMethod   string
	ItemsPrice      float64
	TaxPrice        float64
	ShippingPrice   float64
	TotalPrice      float64
	PaymentIntentID string
	IsPaid          bool
	PaidAt          *time.Time
	PaymentResult   datatypes.JSONType[*models.PaymentResult]
	IsDelivered     bool
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (orderRow) TableName() string { return "orders" }

func toOrderRow(o *models.Order) *orderRow {
	return &orderRow{
		ID:              o.ID,
		UserID:          o.UserID,
		OrderItems:      datatypes.NewJSONSlice(o.OrderItems),
		ShippingAddress: datatypes.NewJSONType(o.ShippingAddress),
		PaymentMethod:   o.PaymentMethod,
		ItemsPrice:      o.ItemsPrice,
		TaxPrice:        o.TaxPrice,
		ShippingPrice:   o.ShippingPrice,
		TotalPrice:      o.TotalPrice,
		PaymentIntentID: o.PaymentIntentID,
		IsPaid:          o.IsPaid,
		PaidAt:          o.PaidAt,
		PaymentResult:   datatypes.NewJSONType(o.PaymentResult),
		IsDelivered:     o.IsDelivered,
		DeliveredAt:     o.DeliveredAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func (r *orderRow) model() models.Order {
	return models.Order{
		ID:              r.ID,
		UserID:          r.UserID,
		OrderItems:      []models.OrderItem(r.OrderItems),
		ShippingAddress: r.ShippingAddress.Data(),
		PaymentMethod:   r.PaymentMethod,
		ItemsPrice:      r.ItemsPrice,
		TaxPrice:        r.TaxPrice,
		ShippingPrice:   r.ShippingPrice,
		TotalPrice:      r.TotalPrice,
		PaymentIntentID: r.PaymentIntentID,
		IsPaid:          r.IsPaid,
		PaidAt:          r.PaidAt,
		PaymentResult:   r.PaymentResult.Data(),
		IsDelivered:     r.IsDelivered,
		DeliveredAt:     r.DeliveredAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
