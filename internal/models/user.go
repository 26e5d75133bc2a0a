package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Usuario      string    `json:"usuario"`
	PasswordHash string    `json:"-"`
	Nombre       string    `json:"nombre"`
	CreatedAt    time.Time `json:"created_at"`
}
