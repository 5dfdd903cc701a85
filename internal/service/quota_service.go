package service

import (
	"context"
	"fmt"
	"time"

	config "github.com/ddoongjamba/autosns-api/configs"
	"github.com/ddoongjamba/autosns-api/internal/repository"
	"github.com/ddoongjamba/autosns-api/internal/transfer"
	apperrors "github.com/ddoongjamba/autosns-api/pkg/errors"
)

type QuotaService interface {
	MonthlyUsage(ctx context.Context, userID int64) (int, error)
	Check(ctx context.Context, userID int64) error
	Usage(ctx context.Context, userID int64) (*transfer.UsageInfo, error)
}

type quotaService struct {
	cfg config.Config
	u   repository.UserRepository
	p   repository.PostRepository
}

func NewQuotaService(cfg config.Config, u repository.UserRepository, p repository.PostRepository) QuotaService {
	return &quotaService{
		cfg: cfg,
		u:   u,
		p:   p,
	}
}

// MonthlyUsage counts posts published successfully since the start of the
// current UTC calendar month.
func (s *quotaService) MonthlyUsage(ctx context.Context, userID int64) (int, error) {
	now := time.Now().UTC()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	return s.p.CountDoneSince(ctx, userID, startOfMonth)
}

// Check admits a new post or returns a QuotaExceededError carrying the plan
// limit. Read-only: usage is only consumed when the executor marks a post done.
func (s *quotaService) Check(ctx context.Context, userID int64) error {
	user, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !isExist {
		return apperrors.Wrap(apperrors.ErrNotFound, "user not found")
	}

	limit := s.cfg.MonthlyLimit(user.Plan)
	if limit == config.UnlimitedPosts {
		return nil
	}

	used, err := s.MonthlyUsage(ctx, userID)
	if err != nil {
		return fmt.Errorf("counting monthly usage: %w", err)
	}

	if used >= limit {
		return &apperrors.QuotaExceededError{Limit: limit, Remaining: 0}
	}
	return nil
}

func (s *quotaService) Usage(ctx context.Context, userID int64) (*transfer.UsageInfo, error) {
	user, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "user not found")
	}

	used, err := s.MonthlyUsage(ctx, userID)
	if err != nil {
		return nil, err
	}

	info := &transfer.UsageInfo{
		Plan:  user.Plan,
		Used:  used,
		Limit: s.cfg.MonthlyLimit(user.Plan),
	}

	if info.Limit != config.UnlimitedPosts {
		remaining := info.Limit - used
		if remaining < 0 {
			remaining = 0
		}
		info.Remaining = &remaining
	}

	return info, nil
}
