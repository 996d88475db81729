package entity

import "time"

type Operator struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type OperatorLoginData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
