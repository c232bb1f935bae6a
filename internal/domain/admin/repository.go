package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// RouteRepository reads the back-office navigation.
type RouteRepository interface {
	ListActive(ctx context.Context) ([]Route, error)
}

type routeRepository struct {
	db *sqlx.DB
}

func NewRouteRepository(db *sqlx.DB) RouteRepository {
	return &routeRepository{db: db}
}

func (r *routeRepository) ListActive(ctx context.Context) ([]Route, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	routes := make([]Route, 0)
	err := r.db.SelectContext(ctx, &routes, `
		SELECT id, name, path, icon, display_order, is_active
		FROM admin_routes
		WHERE is_active = TRUE
		ORDER BY display_order ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list admin routes: %w", err)
	}
	return routes, nil
}
