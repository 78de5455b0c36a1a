package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
)

// flexNumber accepts a JSON number or a numeric string, as sent by form
// based clients. Blank strings and null leave it unset.
type flexNumber struct {
	value *float64
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		n.value = nil
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			n.value = nil
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", raw)
	}
	n.value = &v
	return nil
}

func (n flexNumber) Float() *float64 { return n.value }

// Int64 truncates toward zero. Unset or fractional values yield 0.
func (n flexNumber) Int64() int64 {
	if n.value == nil {
		return 0
	}
	v := *n.value
	if v != float64(int64(v)) {
		return 0
	}
	return int64(v)
}

type CategoryRequest struct {
	Name        string  `json:"name" example:"Manga"`
	Description *string `json:"description,omitempty" example:"Japanese comics"`
}

func (r CategoryRequest) toInput() domain.CategoryInput {
	return domain.CategoryInput{Name: r.Name, Description: r.Description}
}

type ProductRequest struct {
	Name        string     `json:"name" example:"One Piece Vol. 1"`
	Description *string    `json:"description,omitempty"`
	Price       flexNumber `json:"price" swaggertype:"number" example:"9.99"`
	ImageURL    *string    `json:"image_url,omitempty" example:"upload/images/product_1.png"`
	CategoryID  flexNumber `json:"category_id" swaggertype:"integer" example:"1"`
}

func (r ProductRequest) toInput() domain.ProductInput {
	return domain.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price.Float(),
		ImageURL:    r.ImageURL,
		CategoryID:  r.CategoryID.Int64(),
	}
}

// ProductListResponse is the body of GET /api/products.
type ProductListResponse struct {
	Success    bool              `json:"success" example:"true"`
	Data       []domain.Product  `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}

type UploadImageResponse struct {
	Success  bool   `json:"success" example:"true"`
	ImageURL string `json:"image_url" example:"upload/images/product_1700000000000_1a2b3c4d.png"`
}
