package menu

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound    = errors.New("menu item not found")
	ErrValidation  = errors.New("invalid menu item")
	ErrNoDescriber = errors.New("description generator not configured")
)

// Category groups items on the printed menu.
type Category string

const (
	CategoryStarter  Category = "Entrée"
	CategoryMain     Category = "Plat Principal"
	CategoryDessert  Category = "Dessert"
	CategoryDrink    Category = "Boisson"
	CategoryCocktail Category = "Cocktail"
)

// Categories lists the categories in menu order.
var Categories = []Category{CategoryStarter, CategoryMain, CategoryDessert, CategoryDrink, CategoryCocktail}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrValidation, s)
}

// Item is a dish or drink on the menu.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// ItemRequest holds the data for creating or editing a menu item.
type ItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
}

// Section is one category of the menu with its items.
type Section struct {
	Category Category `json:"category"`
	Items    []*Item  `json:"items"`
}

// DescribeRequest asks for a generated description. Name is used when the
// item does not exist yet.
type DescribeRequest struct {
	ItemID string `json:"item_id,omitempty"`
	Name   string `json:"name,omitempty"`
}

type DescribeResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
