package postgres

import (
	"context"
	"fmt"

	"github.com/altynbek8/ServiceApp/internal/model"
)

func (r *categoryRepository) List(ctx context.Context, categoryType *model.CategoryType) ([]*model.Category, error) {
	query := `SELECT id, name, type, image_url, bg_color FROM categories`
	args := []interface{}{}
	if categoryType != nil {
		query += ` WHERE type = $1`
		args = append(args, *categoryType)
	}
	query += ` ORDER BY name ASC`

	var categories []*model.Category
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) ListSubcategories(ctx context.Context, categoryID int64) ([]*model.Subcategory, error) {
	query := `
		SELECT id, category_id, name
		FROM subcategories
		WHERE category_id = $1
		ORDER BY name ASC
	`
	var subs []*model.Subcategory
	if err := r.db.SelectContext(ctx, &subs, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	return subs, nil
}
