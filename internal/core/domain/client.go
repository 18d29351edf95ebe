package domain

import (
	"errors"
	"time"
)

var ErrClientNotFound = errors.New("client not found")
var ErrClientExists = errors.New("client email already registered")

// PostalAddress represents a client's mailing address.
type PostalAddress struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
}

// Client is a CRM contact. Company is optional (individual clients).
type Client struct {
	ID        string        `json:"id"`
	FirstName string        `json:"firstname"`
	LastName  string        `json:"lastname"`
	Company   string        `json:"company,omitempty"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Address   PostalAddress `json:"address"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
