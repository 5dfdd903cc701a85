package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	config "github.com/ddoongjamba/autosns-api/configs"
	"github.com/ddoongjamba/autosns-api/internal/models"
	"github.com/ddoongjamba/autosns-api/internal/repository"
	apperrors "github.com/ddoongjamba/autosns-api/pkg/errors"
	"github.com/ddoongjamba/autosns-api/pkg/utils"
)

type AccountService interface {
	Link(ctx context.Context, userID int64, username, password string) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.IGAccount, error)
	Remove(ctx context.Context, userID, accountID int64) error
}

type accountService struct {
	cfg config.Config
	ar  repository.IGAccountRepository
}

func NewAccountService(cfg config.Config, ar repository.IGAccountRepository) AccountService {
	return &accountService{
		cfg: cfg,
		ar:  ar,
	}
}

// Link stores a new Instagram account with the password encrypted at rest.
// The credential is only validated on first publish; a bad password shows up
// as a failed post, not a failed link.
func (s *accountService) Link(ctx context.Context, userID int64, username, password string) (int64, error) {
	if username == "" || password == "" {
		err := errors.New("username and password are required")
		slog.Info(err.Error())
		return 0, err
	}

	encrypted, err := utils.Encrypt([]byte(password), []byte(s.cfg.SecretKey))
	if err != nil {
		return 0, fmt.Errorf("error encrypting credential: %w", err)
	}

	account := &models.IGAccount{
		UserID:            userID,
		Username:          username,
		EncryptedPassword: encrypted,
	}

	id, err := s.ar.Create(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("error saving instagram account: %w", err)
	}

	return id, nil
}

func (s *accountService) List(ctx context.Context, userID int64) ([]*models.IGAccount, error) {
	accounts, err := s.ar.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing instagram accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) Remove(ctx context.Context, userID, accountID int64) error {
	if userID == 0 || accountID == 0 {
		err := errors.New("account id is not valid")
		slog.Info(err.Error())
		return err
	}

	isValid, err := s.ar.CheckByUserID(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		return apperrors.Wrap(apperrors.ErrNotFound, "instagram account not found")
	}

	if err := s.ar.Remove(ctx, accountID); err != nil {
		return fmt.Errorf("error removing instagram account: %w", err)
	}
	return nil
}
