package domain

import (
	"errors"
	"time"
)

var ErrArticleNotFound = errors.New("article not found")

// ArticleColors is the fixed set of catalogue colours.
var ArticleColors = []string{
	"red", "blue", "green", "yellow", "purple", "orange", "grey", "black", "white",
}

// Article is a catalogue item that can appear on order lines.
type Article struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Color       string    `json:"color"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsValidColor reports whether color belongs to the catalogue colour set.
func IsValidColor(color string) bool {
	for _, c := range ArticleColors {
		if c == color {
			return true
		}
	}
	return false
}
