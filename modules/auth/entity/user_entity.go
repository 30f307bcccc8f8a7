package entity

import (
	"restaurant-directory/core/entity"
)

type User struct {
	Name     string `db:"name"`
	Email    string `db:"email"`
	Password string `db:"password"`
	Role     string `db:"role"`
	IsActive bool   `db:"is_active"`

	entity.BaseEntity
}
