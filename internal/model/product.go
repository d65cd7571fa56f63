// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductType distinguishes the two product families of the shop.
type ProductType string

const (
	// ProductAll is the filter value that matches every product.
	ProductAll ProductType = ""
	// ProductBook is a product with a Book row.
	ProductBook ProductType = "Book"
	// ProductElectronics is a product with an Electronics row.
	ProductElectronics ProductType = "Electronics"
)

// ParseProductType accepts "book", "electronics" or "all"/"" in any case.
func ParseProductType(in string) (ProductType, error) {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "", "all":
		return ProductAll, nil
	case "book", "books":
		return ProductBook, nil
	case "electronics", "elec":
		return ProductElectronics, nil
	}
	return "", fmt.Errorf("%w: unknown product type %q", ErrInvalid, in)
}

func (t ProductType) String() string {
	if t == ProductAll {
		return "All"
	}
	return string(t)
}

// ProductSummary is one line of the product listing.
type ProductSummary struct {
	ID          int64           `bun:"product_id" json:"product_id"`
	Type        ProductType     `bun:"product_type" json:"product_type"`
	Description string          `bun:"description" json:"description"` // book title or "brand model"
	Price       decimal.Decimal `bun:"price" json:"price"`
	Quantity    int             `bun:"quantity" json:"quantity"`
	Active      bool            `bun:"active" json:"active"`
}

// ProductFilter narrows the product listing. Zero bounds are not applied.
type ProductFilter struct {
	Type     ProductType
	MinQty   int
	MaxQty   int
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
}

// ProductInput holds the fields shared by every new product.
type ProductInput struct {
	Quantity   int             `json:"quantity" validate:"gte=1,lte=9999"`
	Price      decimal.Decimal `json:"price" validate:"gte=0.01,lte=999999.99"`
	VATRate    decimal.Decimal `json:"vat_rate" validate:"gte=0,lte=100"`
	Popularity int             `json:"popularity" validate:"gte=1,lte=5"`
	ImagePath  string          `json:"image_path" validate:"required,imageext"`
}

// NewBook is the input of the AddBook procedure.
type NewBook struct {
	ProductInput
	ISBN            string    `json:"isbn" validate:"required"`
	Title           string    `json:"title" validate:"required"`
	Genre           string    `json:"genre" validate:"required"`
	Publisher       string    `json:"publisher" validate:"required"`
	Author          string    `json:"author" validate:"required"`
	PublicationDate time.Time `json:"publication_date" validate:"required"`
}

// Validate checks ranges and required fields.
func (b *NewBook) Validate() error {
	b.trim()
	return validateStruct(b)
}

func (b *NewBook) trim() {
	b.ImagePath = strings.TrimSpace(b.ImagePath)
	b.ISBN = strings.TrimSpace(b.ISBN)
	b.Title = strings.TrimSpace(b.Title)
	b.Genre = strings.TrimSpace(b.Genre)
	b.Publisher = strings.TrimSpace(b.Publisher)
	b.Author = strings.TrimSpace(b.Author)
}

// NewElectronics is the input of the AddElec procedure.
type NewElectronics struct {
	ProductInput
	SerialNumber string `json:"serial_number" validate:"required"`
	Brand        string `json:"brand" validate:"required"`
	Model        string `json:"model" validate:"required"`
	TechSpecs    string `json:"tech_specs"`
	Kind         string `json:"type" validate:"required"` // e.g. "Smartphone"
}

// Validate checks ranges and required fields. Tech specs are optional.
func (e *NewElectronics) Validate() error {
	e.trim()
	return validateStruct(e)
}

func (e *NewElectronics) trim() {
	e.ImagePath = strings.TrimSpace(e.ImagePath)
	e.SerialNumber = strings.TrimSpace(e.SerialNumber)
	e.Brand = strings.TrimSpace(e.Brand)
	e.Model = strings.TrimSpace(e.Model)
	e.Kind = strings.TrimSpace(e.Kind)
}
