package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/ddoongjamba/autosns-api/internal/models"
)

type MediaFileRepository interface {
	Create(ctx context.Context, mf *models.MediaFile) (int64, error)
	GetByIDAndUserID(ctx context.Context, id, userID int64) (*models.MediaFile, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.MediaFile, error)
	Remove(ctx context.Context, id int64) error
}

type mediaFileRepository struct {
	db *sql.DB
}

func NewMediaFileRepository(db *sql.DB) MediaFileRepository {
	return &mediaFileRepository{db: db}
}

func (r *mediaFileRepository) Create(ctx context.Context, mf *models.MediaFile) (int64, error) {
	query := `
		INSERT INTO media_files (user_id, file_name, file_type, file_size, file_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, mf.UserID, mf.FileName, mf.FileType, mf.FileSize, mf.FilePath).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *mediaFileRepository) GetByIDAndUserID(ctx context.Context, id, userID int64) (*models.MediaFile, error) {
	query := `SELECT id, user_id, file_name, file_type, file_size, file_path, created_at FROM media_files WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, userID)

	var mf models.MediaFile
	err := row.Scan(&mf.ID, &mf.UserID, &mf.FileName, &mf.FileType, &mf.FileSize, &mf.FilePath, &mf.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &mf, nil
}

func (r *mediaFileRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.MediaFile, error) {
	query := `SELECT id, user_id, file_name, file_type, file_size, file_path, created_at FROM media_files WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var files []*models.MediaFile
	for rows.Next() {
		var mf models.MediaFile
		err := rows.Scan(&mf.ID, &mf.UserID, &mf.FileName, &mf.FileType, &mf.FileSize, &mf.FilePath, &mf.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		files = append(files, &mf)
	}
	return files, nil
}

func (r *mediaFileRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM media_files WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
