package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/ddoongjamba/autosns-api/internal/models"
)

type IGAccountRepository interface {
	Create(ctx context.Context, account *models.IGAccount) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.IGAccount, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.IGAccount, error)
	ListAll(ctx context.Context) ([]*models.IGAccount, error)
	CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type igAccountRepository struct {
	db *sql.DB
}

func NewIGAccountRepository(db *sql.DB) IGAccountRepository {
	return &igAccountRepository{db: db}
}

func (r *igAccountRepository) Create(ctx context.Context, account *models.IGAccount) (int64, error) {
	query := `
		INSERT INTO ig_accounts (user_id, username, encrypted_password)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, account.UserID, account.Username, account.EncryptedPassword).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *igAccountRepository) GetByID(ctx context.Context, id int64) (*models.IGAccount, error) {
	query := `SELECT id, user_id, username, encrypted_password, created_at, updated_at FROM ig_accounts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var account models.IGAccount
	err := row.Scan(&account.ID, &account.UserID, &account.Username, &account.EncryptedPassword, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &account, nil
}

func (r *igAccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.IGAccount, error) {
	query := `SELECT id, user_id, username, created_at, updated_at FROM ig_accounts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.IGAccount
	for rows.Next() {
		var account models.IGAccount
		err := rows.Scan(&account.ID, &account.UserID, &account.Username, &account.CreatedAt, &account.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, &account)
	}
	return accounts, nil
}

func (r *igAccountRepository) ListAll(ctx context.Context) ([]*models.IGAccount, error) {
	query := `SELECT id, user_id, username, encrypted_password, created_at, updated_at FROM ig_accounts`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.IGAccount
	for rows.Next() {
		var account models.IGAccount
		err := rows.Scan(&account.ID, &account.UserID, &account.Username, &account.EncryptedPassword, &account.CreatedAt, &account.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, &account)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return accounts, nil
}

func (r *igAccountRepository) CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error) {
	query := "SELECT 1 FROM ig_accounts WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, accountID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *igAccountRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM ig_accounts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
