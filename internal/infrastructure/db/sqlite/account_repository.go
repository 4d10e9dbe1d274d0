package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

type AccountRepository struct {
	db *sql.DB
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, full_name, email, password_hash, role, is_active,
	phone, person_type, preferred_lang, created_at, updated_at, last_login_at`

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (full_name, email, password_hash, role, is_active, phone, person_type, preferred_lang)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		account.FullName, account.Email, account.PasswordHash, account.Role, account.IsActive,
		account.Phone, defaultText(account.PersonType, "individual"), defaultText(account.PreferredLang, "en"),
	)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert account id: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts
		 SET full_name = ?, email = ?, password_hash = ?, role = ?, is_active = ?,
		     phone = ?, person_type = ?, preferred_lang = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		account.FullName, account.Email, account.PasswordHash, account.Role, account.IsActive,
		account.Phone, account.PersonType, account.PreferredLang, account.ID,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ? COLLATE NOCASE`, email)
	return scanAccount(row)
}

func (r *AccountRepository) FindByEmailExcept(ctx context.Context, email string, exceptID int64) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ? COLLATE NOCASE AND id != ?`, email, exceptID)
	return scanAccount(row)
}

func (r *AccountRepository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET last_login_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id DESC`)
}

func (r *AccountRepository) Latest(ctx context.Context, limit int) ([]domain.Account, error) {
	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id DESC LIMIT ?`, limit)
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

func (r *AccountRepository) ListMailable(ctx context.Context) ([]domain.Account, error) {
	return r.queryAccounts(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE is_active = 1 AND email != '' ORDER BY id ASC`)
}

func (r *AccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var a domain.Account
	var lastLogin sql.NullTime
	err := row.Scan(
		&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.Role, &a.IsActive,
		&a.Phone, &a.PersonType, &a.PreferredLang, &a.CreatedAt, &a.UpdatedAt, &lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	if lastLogin.Valid {
		a.LastLoginAt = lastLogin.Time
	}
	return &a, nil
}

func defaultText(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
