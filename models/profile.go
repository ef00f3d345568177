package models

import "time"

// Profile keeps a user's last-used shipping details so future checkouts
// can prefill. Upserted after every placed order.
type Profile struct {
	UserID     string    `gorm:"primaryKey" json:"user_id"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
