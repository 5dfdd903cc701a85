package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/ddoongjamba/autosns-api/internal/models"
	"github.com/ddoongjamba/autosns-api/internal/repository"
	"github.com/ddoongjamba/autosns-api/internal/storage"
	apperrors "github.com/ddoongjamba/autosns-api/pkg/errors"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type MediaService interface {
	Upload(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.MediaFile, error)
	List(ctx context.Context, userID int64) ([]*models.MediaFile, error)
	Remove(ctx context.Context, userID, fileID int64) error
}

type mediaService struct {
	mf    repository.MediaFileRepository
	store storage.Store
}

func NewMediaService(mf repository.MediaFileRepository, store storage.Store) MediaService {
	return &mediaService{
		mf:    mf,
		store: store,
	}
}

var allowedTypes = map[string]struct{}{
	"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {},
}

func (s *mediaService) Upload(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.MediaFile, error) {
	if file == nil {
		err := errors.New("no file provided")
		slog.Info(err.Error())
		return nil, err
	}

	fileContent, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return nil, fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return nil, fmt.Errorf("unsupported file type: %w", err)
	}
	if _, ok := allowedTypes[fileType.Extension]; !ok {
		return nil, fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	key := fmt.Sprintf("%s.%s", id, fileType.Extension)

	path, err := s.store.Save(ctx, key, fileBytes, fileType.MIME.Value)
	if err != nil {
		return nil, fmt.Errorf("error storing file: %w", err)
	}

	mf := &models.MediaFile{
		UserID:   userID,
		FileName: file.Filename,
		FileType: fileType.MIME.Value,
		FileSize: int64(len(fileBytes)),
		FilePath: path,
	}

	fileID, err := s.mf.Create(ctx, mf)
	if err != nil {
		return nil, fmt.Errorf("error saving media file: %w", err)
	}
	mf.ID = fileID

	return mf, nil
}

func (s *mediaService) List(ctx context.Context, userID int64) ([]*models.MediaFile, error) {
	files, err := s.mf.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing media files: %w", err)
	}
	return files, nil
}

// Remove deletes the media record only. Posts that already snapshotted the
// file's path keep publishing from it.
func (s *mediaService) Remove(ctx context.Context, userID, fileID int64) error {
	mf, err := s.mf.GetByIDAndUserID(ctx, fileID, userID)
	if err != nil {
		return err
	}
	if mf == nil {
		return apperrors.Wrap(apperrors.ErrNotFound, "media file not found")
	}

	return s.mf.Remove(ctx, fileID)
}
