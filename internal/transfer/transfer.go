package transfer

import (
	"time"

	"github.com/ddoongjamba/autosns-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// PostCreation is the create-post request body. A nil ScheduledAt means
// "publish now".
type PostCreation struct {
	AccountID    int64      `json:"account_id"`
	PostType     string     `json:"post_type"`
	Caption      string     `json:"caption"`
	MediaFileIDs []int64    `json:"media_file_ids"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
}

type PostList struct {
	Items []*models.Post `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

type AccountLink struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UsageInfo summarizes the quota ledger for one user. Remaining is omitted
// for unlimited plans.
type UsageInfo struct {
	Plan      string `json:"plan"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining *int   `json:"remaining,omitempty"`
}
