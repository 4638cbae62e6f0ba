package models

import "time"

type Review struct {
	Name      string    `json:"name" bson:"name"`
	Rating    float64   `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	UserID    string    `json:"user" bson:"user"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Product struct {
	ID           string    `json:"_id" bson:"_id"`
	UserID       string    `json:"user" bson:"user"`
	Name         string    `json:"name" bson:"name"`
	Image        string    `json:"image" bson:"image"`
	Brand        string    `json:"brand" bson:"brand"`
	Category     string    `json:"category" bson:"category"`
	Description  string    `json:"description" bson:"description"`
	Reviews      []Review  `json:"reviews" bson:"reviews"`
	Rating       float64   `json:"rating" bson:"rating"`
	NumReviews   int       `json:"numReviews" bson:"numReviews"`
	Price        float64   `json:"price" bson:"price"`
	CountInStock int       `json:"countInStock" bson:"countInStock"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProductUpdate leaves zero-valued fields untouched.
type ProductUpdate struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	CountInStock int     `json:"countInStock"`
}

type ReviewInput struct {
	Rating  float64 `json:"rating" binding:"required,min=1,max=5"`
	Comment string  `json:"comment"`
}

type ProductPage struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}
