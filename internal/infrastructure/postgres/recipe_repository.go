package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo reads recipes with their ordered ingredient lines (pool or tx).
type RecipeRepo struct {
	q Querier
}

func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// GetByID returns the recipe with its ingredients or (nil, nil).
func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := r.q.QueryRow(ctx,
		`SELECT recipe_id, name, product_id, quantity, unit FROM recipes WHERE recipe_id = $1`, id).
		Scan(&rec.ID, &rec.Name, &rec.ProductID, &rec.Quantity, &rec.Unit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT item_name, quantity, unit FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(&ing.ItemName, &ing.Quantity, &ing.Unit); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		rec.Ingredients = append(rec.Ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rec, nil
}
