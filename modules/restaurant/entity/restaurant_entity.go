package entity

import (
	"restaurant-directory/core/entity"
)

type Restaurant struct {
	Name string `db:"name"`

	Slug string `db:"slug"`

	// OpeningHours is the free-text schedule exactly as entered.
	OpeningHours string `db:"opening_hours"`

	entity.BaseEntity
}

func (r Restaurant) GetName() string         { return r.Name }
func (r Restaurant) GetOpeningHours() string { return r.OpeningHours }
