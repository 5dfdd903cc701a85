package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

type PostType string

const (
	PostTypePhoto    PostType = "photo"
	PostTypeCarousel PostType = "carousel"
	PostTypeVideo    PostType = "video"
	PostTypeReel     PostType = "reel"
)

// ParsePostType validates a wire-level post type string at the admission
// boundary so the executor only ever dispatches on known variants.
func ParsePostType(s string) (PostType, error) {
	switch PostType(s) {
	case PostTypePhoto, PostTypeCarousel, PostTypeVideo, PostTypeReel:
		return PostType(s), nil
	}
	return "", fmt.Errorf("unsupported post type: %q", s)
}

type Post struct {
	ID           int64          `db:"id" json:"id"`
	UserID       int64          `db:"user_id" json:"user_id"`
	AccountID    int64          `db:"account_id" json:"account_id"`
	PostType     PostType       `db:"post_type" json:"post_type"`
	Caption      string         `db:"caption" json:"caption"`
	MediaPaths   pq.StringArray `db:"media_paths" json:"media_paths"`
	Status       string         `db:"status" json:"status"`
	ErrorMessage string         `db:"error_message" json:"error_message,omitempty"`
	ScheduledAt  *time.Time     `db:"scheduled_at" json:"scheduled_at,omitempty"`
	ExecutedAt   *time.Time     `db:"executed_at" json:"executed_at,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

const (
	PostStatusPending   = "pending"
	PostStatusRunning   = "running"
	PostStatusDone      = "done"
	PostStatusFailed    = "failed"
	PostStatusCancelled = "cancelled" // reserved, never set by the scheduler path
)
