package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

type StaffRepository struct {
	db *sql.DB
}

var _ ports.StaffRepository = (*StaffRepository)(nil)

func NewStaffRepository(db *sql.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, person *domain.StaffPerson, serviceIDs []int64) (*domain.StaffPerson, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin staff insert: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO staff_people (full_name, email, phone, specialty, photo_path, is_active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		person.FullName, person.Email, person.Phone, person.Specialty, person.PhotoPath, person.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("insert staff: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert staff id: %w", err)
	}
	for _, serviceID := range serviceIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO staff_services (person_id, service_id) VALUES (?, ?)`,
			id, serviceID,
		); err != nil {
			return nil, fmt.Errorf("insert staff service link: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit staff insert: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *StaffRepository) Update(ctx context.Context, person *domain.StaffPerson) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE staff_people
		 SET full_name = ?, email = ?, phone = ?, specialty = ?, photo_path = ?, is_active = ?
		 WHERE id = ?`,
		person.FullName, person.Email, person.Phone, person.Specialty, person.PhotoPath, person.IsActive, person.ID,
	)
	if err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	return nil
}

func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	// staff_services rows cascade with the person.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM staff_people WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	return nil
}

func (r *StaffRepository) FindByID(ctx context.Context, id int64) (*domain.StaffPerson, error) {
	var p domain.StaffPerson
	err := r.db.QueryRowContext(ctx,
		`SELECT id, full_name, email, phone, specialty, photo_path, is_active, created_at
		 FROM staff_people WHERE id = ?`, id,
	).Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.Specialty, &p.PhotoPath, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, fmt.Errorf("find staff: %w", err)
	}
	return &p, nil
}

func (r *StaffRepository) List(ctx context.Context, activeOnly bool) ([]domain.StaffPerson, error) {
	query := `SELECT p.id, p.full_name, p.email, p.phone, p.specialty, p.photo_path, p.is_active, p.created_at,
			COALESCE(GROUP_CONCAT(e.name, ', '), '') AS service_names
		FROM staff_people p
		LEFT JOIN staff_services ss ON ss.person_id = p.id
		LEFT JOIN entities e ON e.id = ss.service_id`
	if activeOnly {
		query += ` WHERE p.is_active = 1`
	}
	query += ` GROUP BY p.id ORDER BY p.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query staff: %w", err)
	}
	defer rows.Close()

	var people []domain.StaffPerson
	for rows.Next() {
		var p domain.StaffPerson
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.Specialty,
			&p.PhotoPath, &p.IsActive, &p.CreatedAt, &p.ServiceNames); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		ids, err := r.ServiceIDs(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.ServiceIDs = ids
		people = append(people, p)
	}
	return people, rows.Err()
}

func (r *StaffRepository) ServiceIDs(ctx context.Context, personID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT service_id FROM staff_services WHERE person_id = ? ORDER BY service_id`, personID)
	if err != nil {
		return nil, fmt.Errorf("query staff service links: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan staff service link: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ApplyServiceDiff adds and removes exactly the given links in one
// transaction.
func (r *StaffRepository) ApplyServiceDiff(ctx context.Context, personID int64, added, removed []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin link diff: %w", err)
	}
	defer tx.Rollback()

	for _, serviceID := range added {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO staff_services (person_id, service_id) VALUES (?, ?)`,
			personID, serviceID,
		); err != nil {
			return fmt.Errorf("add staff service link: %w", err)
		}
	}
	for _, serviceID := range removed {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM staff_services WHERE person_id = ? AND service_id = ?`,
			personID, serviceID,
		); err != nil {
			return fmt.Errorf("remove staff service link: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit link diff: %w", err)
	}
	return nil
}

func (r *StaffRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff_people`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count staff: %w", err)
	}
	return count, nil
}
