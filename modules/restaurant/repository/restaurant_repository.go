package repository

import (
	"context"
	"database/sql"
	"restaurant-directory/core/database"
	"restaurant-directory/core/logger"
	"restaurant-directory/modules/restaurant/entity"

	"github.com/google/uuid"
)

type RestaurantRepositoryInterface interface {
	Create(ctx context.Context, restaurant *entity.Restaurant) (*entity.Restaurant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Restaurant, error)
	List(ctx context.Context) ([]entity.Restaurant, error)
	Update(ctx context.Context, restaurant *entity.Restaurant) (*entity.Restaurant, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

type RestaurantRepository struct {
	DB database.IDatabase
}

func NewRestaurantRepository(db database.IDatabase) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

const restaurantColumns = `id, name, slug, opening_hours, created_at, updated_at`

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *entity.Restaurant) (*entity.Restaurant, error) {
	query := `
		INSERT INTO restaurants (name, slug, opening_hours)
		VALUES ($1, $2, $3)
		RETURNING ` + restaurantColumns

	var created entity.Restaurant
	err := r.DB.GetContext(ctx, &created, query, restaurant.Name, restaurant.Slug, restaurant.OpeningHours)
	if err != nil {
		logger.Error("RestaurantRepository:Create", err)
		return nil, err
	}
	return &created, nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	var restaurant entity.Restaurant
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	err := r.DB.GetContext(ctx, &restaurant, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RestaurantRepository:GetByID", err)
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) GetBySlug(ctx context.Context, slug string) (*entity.Restaurant, error) {
	var restaurant entity.Restaurant
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE slug = $1`
	err := r.DB.GetContext(ctx, &restaurant, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RestaurantRepository:GetBySlug", err)
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) List(ctx context.Context) ([]entity.Restaurant, error) {
	restaurants := []entity.Restaurant{}
	query := `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY name ASC, id ASC`
	if err := r.DB.SelectContext(ctx, &restaurants, query); err != nil {
		logger.Error("RestaurantRepository:List", err)
		return nil, err
	}
	return restaurants, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, restaurant *entity.Restaurant) (*entity.Restaurant, error) {
	query := `
		UPDATE restaurants
		SET name = $1, slug = $2, opening_hours = $3, updated_at = now()
		WHERE id = $4
		RETURNING ` + restaurantColumns

	var updated entity.Restaurant
	err := r.DB.GetContext(ctx, &updated, query, restaurant.Name, restaurant.Slug, restaurant.OpeningHours, restaurant.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RestaurantRepository:Update", err)
		return nil, err
	}
	return &updated, nil
}

// Delete reports whether a row was removed.
func (r *RestaurantRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.DB.SQLx().ExecContext(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		logger.Error("RestaurantRepository:Delete", err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error("RestaurantRepository:Delete - RowsAffected", err)
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *RestaurantRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM restaurants`); err != nil {
		logger.Error("RestaurantRepository:Count", err)
		return 0, err
	}
	return total, nil
}

// SlugExists reports whether slug is taken by a restaurant other than excludeID.
func (r *RestaurantRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM restaurants WHERE slug = $1 AND id <> $2)`
	if err := r.DB.GetContext(ctx, &exists, query, slug, excludeID); err != nil {
		logger.Error("RestaurantRepository:SlugExists", err)
		return false, err
	}
	return exists, nil
}
