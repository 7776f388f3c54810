package user

import "time"

type User struct {
	ID        uint
	Name      string
	Email     string
	Password  string
	IsAdmin   bool
	CreatedAt time.Time
}
