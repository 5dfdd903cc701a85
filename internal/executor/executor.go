package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ddoongjamba/autosns-api/internal/models"
	"github.com/ddoongjamba/autosns-api/internal/publisher"
	"github.com/ddoongjamba/autosns-api/internal/repository"
	"github.com/ddoongjamba/autosns-api/pkg/utils"
)

// Executor drives a single post through pending -> running -> done/failed.
// Publish failures are recorded on the post row, never returned: the only
// errors that escape Execute are store failures, so a bad post can never
// take down a scheduler tick or an admission request.
type Executor struct {
	pr        repository.PostRepository
	ar        repository.IGAccountRepository
	connector publisher.Connector
	secretKey []byte
}

func New(
	pr repository.PostRepository,
	ar repository.IGAccountRepository,
	connector publisher.Connector,
	secretKey []byte) *Executor {
	return &Executor{
		pr:        pr,
		ar:        ar,
		connector: connector,
		secretKey: secretKey,
	}
}

func (e *Executor) Execute(ctx context.Context, postID int64) error {
	post, err := e.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		// Deleted between scan and execution.
		return nil
	}

	if post.Status != models.PostStatusPending {
		slog.Info("skipping post that is no longer pending", "post_id", post.ID, "status", post.Status)
		return nil
	}

	account, err := e.ar.GetByID(ctx, post.AccountID)
	if err != nil {
		return err
	}
	if account == nil {
		return e.markFailed(ctx, post.ID, "linked instagram account not found")
	}

	if err := e.pr.UpdateStatus(ctx, post.ID, models.PostStatusRunning, "", nil); err != nil {
		return err
	}

	password, err := utils.Decrypt(account.EncryptedPassword, e.secretKey)
	if err != nil {
		return e.markFailed(ctx, post.ID, fmt.Sprintf("decrypt account credential: %v", err))
	}

	session, err := e.connector.Connect(ctx, publisher.Credentials{
		Username: account.Username,
		Password: password,
	})
	if err != nil {
		return e.markFailed(ctx, post.ID, err.Error())
	}

	if err := dispatch(ctx, session, post); err != nil {
		return e.markFailed(ctx, post.ID, err.Error())
	}

	executedAt := time.Now().UTC()
	if err := e.pr.UpdateStatus(ctx, post.ID, models.PostStatusDone, "", &executedAt); err != nil {
		return err
	}

	slog.Info("post published", "post_id", post.ID, "post_type", post.PostType)
	return nil
}

func dispatch(ctx context.Context, session publisher.Session, post *models.Post) error {
	if len(post.MediaPaths) == 0 {
		return fmt.Errorf("post has no media")
	}

	switch post.PostType {
	case models.PostTypePhoto:
		return session.PublishPhoto(ctx, post.MediaPaths[0], post.Caption)
	case models.PostTypeCarousel:
		return session.PublishAlbum(ctx, post.MediaPaths, post.Caption)
	case models.PostTypeVideo:
		return session.PublishVideo(ctx, post.MediaPaths[0], post.Caption, false)
	case models.PostTypeReel:
		return session.PublishVideo(ctx, post.MediaPaths[0], post.Caption, true)
	default:
		return fmt.Errorf("unsupported post type: %q", post.PostType)
	}
}

func (e *Executor) markFailed(ctx context.Context, postID int64, message string) error {
	slog.Info("post failed", "post_id", postID, "error", message)
	return e.pr.UpdateStatus(ctx, postID, models.PostStatusFailed, message, nil)
}
