package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	config "github.com/ddoongjamba/autosns-api/configs"
	"github.com/ddoongjamba/autosns-api/internal/models"
	"github.com/ddoongjamba/autosns-api/internal/repository"
	"github.com/ddoongjamba/autosns-api/internal/transfer"
	apperrors "github.com/ddoongjamba/autosns-api/pkg/errors"
)

// PostExecutor runs the publish protocol for one post. Implemented by
// executor.Executor; the indirection keeps service and executor packages
// from depending on each other.
type PostExecutor interface {
	Execute(ctx context.Context, postID int64) error
}

type PostService interface {
	CreatePost(ctx context.Context, userID int64, pc *transfer.PostCreation) (*models.Post, error)
	List(ctx context.Context, userID int64, page, size int) (*transfer.PostList, error)
	PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error)
	Remove(ctx context.Context, userID, postID int64) error
}

type postService struct {
	cfg   config.Config
	pr    repository.PostRepository
	ar    repository.IGAccountRepository
	mf    repository.MediaFileRepository
	quota QuotaService
	exec  PostExecutor
}

func NewPostService(
	cfg config.Config,
	pr repository.PostRepository,
	ar repository.IGAccountRepository,
	mf repository.MediaFileRepository,
	quota QuotaService,
	exec PostExecutor) PostService {
	return &postService{
		cfg:   cfg,
		pr:    pr,
		ar:    ar,
		mf:    mf,
		quota: quota,
		exec:  exec,
	}
}

// CreatePost admits a new post: quota, account ownership, media ownership.
// Media paths are snapshotted into the post row in request order, so later
// deletion of a media record does not invalidate the post. Posts without a
// scheduled time are executed inline before returning.
func (s *postService) CreatePost(ctx context.Context, userID int64, pc *transfer.PostCreation) (*models.Post, error) {
	if pc == nil {
		err := errors.New("post creation data is nil")
		slog.Error(err.Error())
		return nil, err
	}

	postType, err := models.ParsePostType(pc.PostType)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if len(pc.MediaFileIDs) == 0 {
		err := errors.New("no media files selected")
		slog.Info(err.Error())
		return nil, err
	}

	if err := s.quota.Check(ctx, userID); err != nil {
		return nil, err
	}

	exists, err := s.ar.CheckByUserID(ctx, pc.AccountID, userID)
	if err != nil {
		return nil, fmt.Errorf("checking instagram account %d: %w", pc.AccountID, err)
	}
	if !exists {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "instagram account not found")
	}

	mediaPaths := make([]string, 0, len(pc.MediaFileIDs))
	for _, fileID := range pc.MediaFileIDs {
		mf, err := s.mf.GetByIDAndUserID(ctx, fileID, userID)
		if err != nil {
			return nil, fmt.Errorf("resolving media file %d: %w", fileID, err)
		}
		if mf == nil {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, fmt.Sprintf("media file %d not found", fileID))
		}
		mediaPaths = append(mediaPaths, mf.FilePath)
	}

	post := models.Post{
		UserID:      userID,
		AccountID:   pc.AccountID,
		PostType:    postType,
		Caption:     pc.Caption,
		MediaPaths:  mediaPaths,
		ScheduledAt: pc.ScheduledAt,
	}

	postID, err := s.pr.Create(ctx, nil, &post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	if pc.ScheduledAt == nil {
		if err := s.exec.Execute(ctx, postID); err != nil {
			// Store-level failure; the publish outcome itself lands on the row.
			slog.Error("inline execution failed", "post_id", postID, "error", err)
		}
	}

	created, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *postService) List(ctx context.Context, userID int64, page, size int) (*transfer.PostList, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	if size > s.cfg.MaxPageSize {
		size = s.cfg.MaxPageSize
	}

	total, err := s.pr.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting posts: %w", err)
	}

	offset := (page - 1) * size
	posts, err := s.pr.ListByUserID(ctx, userID, size, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}

	return &transfer.PostList{
		Items: posts,
		Total: total,
		Page:  page,
		Size:  size,
	}, nil
}

func (s *postService) PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error) {
	if userID == 0 || postID == 0 {
		err := errors.New("post id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	post, err := s.pr.GetByIDAndUserID(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting post info: %w", err)
	}
	if post == nil {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "post not found")
	}

	return post, nil
}

func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	if userID == 0 || postID == 0 {
		err := errors.New("post id is not valid")
		slog.Info(err.Error())
		return err
	}

	post, err := s.pr.GetByIDAndUserID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post == nil {
		return apperrors.Wrap(apperrors.ErrNotFound, "post not found")
	}

	if post.Status == models.PostStatusRunning {
		return apperrors.Wrap(apperrors.ErrConflict, "post is currently running and cannot be deleted")
	}

	if err := s.pr.Remove(ctx, postID); err != nil {
		return fmt.Errorf("error removing post: %w", err)
	}

	return nil
}
