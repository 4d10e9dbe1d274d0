package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

type EntityRepository struct {
	db *sql.DB
}

var _ ports.EntityRepository = (*EntityRepository)(nil)

func NewEntityRepository(db *sql.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

const entityColumns = `id, kind, name, description, criteria, link_url,
	category, title, icon, image, suspended, created_at, updated_at`

func (r *EntityRepository) Create(ctx context.Context, entity *domain.Entity) (*domain.Entity, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO entities (kind, name, description, criteria, link_url, category, title, icon, image, suspended)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entity.Kind, entity.Name, entity.Description, entity.Criteria, entity.LinkURL,
		entity.Category, entity.Title, entity.Icon, entity.Image, entity.Suspended,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entity: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert entity id: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *EntityRepository) Update(ctx context.Context, entity *domain.Entity) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE entities
		 SET name = ?, description = ?, criteria = ?, link_url = ?, category = ?,
		     title = ?, icon = ?, image = ?, suspended = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		entity.Name, entity.Description, entity.Criteria, entity.LinkURL, entity.Category,
		entity.Title, entity.Icon, entity.Image, entity.Suspended, entity.ID,
	)
	if err != nil {
		return fmt.Errorf("update entity: %w", err)
	}
	return nil
}

func (r *EntityRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entities WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete entity: %w", err)
	}
	return nil
}

func (r *EntityRepository) FindByID(ctx context.Context, id int64) (*domain.Entity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+entityColumns+` FROM entities WHERE id = ?`, id)
	entity, err := scanEntity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEntityNotFound
	}
	return entity, err
}

func (r *EntityRepository) ListByKind(ctx context.Context, kind domain.EntityKind, includeSuspended bool) ([]domain.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE kind = ?`
	if !includeSuspended {
		query += ` AND suspended = 0`
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}
	defer rows.Close()

	var entities []domain.Entity
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}
	return entities, rows.Err()
}

func (r *EntityRepository) CountByKind(ctx context.Context, kind domain.EntityKind) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entities WHERE kind = ?`, kind).Scan(&count); err != nil {
		return 0, fmt.Errorf("count entities: %w", err)
	}
	return count, nil
}

func scanEntity(row rowScanner) (*domain.Entity, error) {
	var e domain.Entity
	err := row.Scan(
		&e.ID, &e.Kind, &e.Name, &e.Description, &e.Criteria, &e.LinkURL,
		&e.Category, &e.Title, &e.Icon, &e.Image, &e.Suspended, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		// sql.ErrNoRows passes through via %w so callers can translate it.
		return nil, fmt.Errorf("scan entity: %w", err)
	}
	return &e, nil
}
