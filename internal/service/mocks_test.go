package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/ddoongjamba/autosns-api/internal/models"
	"github.com/ddoongjamba/autosns-api/internal/transfer"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	args := m.Called(ctx, tx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	args := m.Called(ctx, tx, post)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if post, ok := args.Get(0).(*models.Post); ok {
		return post, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) GetByIDAndUserID(ctx context.Context, id, userID int64) (*models.Post, error) {
	args := m.Called(ctx, id, userID)
	if post, ok := args.Get(0).(*models.Post); ok {
		return post, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, userID, limit, offset)
	if posts, ok := args.Get(0).([]*models.Post); ok {
		return posts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) ListDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	args := m.Called(ctx, now)
	if posts, ok := args.Get(0).([]*models.Post); ok {
		return posts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) UpdateStatus(ctx context.Context, postID int64, status, errorMessage string, executedAt *time.Time) error {
	args := m.Called(ctx, postID, status, errorMessage, executedAt)
	return args.Error(0)
}

func (m *MockPostRepository) CountDoneSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.IGAccount) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*models.IGAccount, error) {
	args := m.Called(ctx, id)
	if account, ok := args.Get(0).(*models.IGAccount); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.IGAccount, error) {
	args := m.Called(ctx, userID)
	if accounts, ok := args.Get(0).([]*models.IGAccount); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) ListAll(ctx context.Context) ([]*models.IGAccount, error) {
	args := m.Called(ctx)
	if accounts, ok := args.Get(0).([]*models.IGAccount); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error) {
	args := m.Called(ctx, accountID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMediaFileRepository struct {
	mock.Mock
}

func (m *MockMediaFileRepository) Create(ctx context.Context, mf *models.MediaFile) (int64, error) {
	args := m.Called(ctx, mf)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMediaFileRepository) GetByIDAndUserID(ctx context.Context, id, userID int64) (*models.MediaFile, error) {
	args := m.Called(ctx, id, userID)
	if mf, ok := args.Get(0).(*models.MediaFile); ok {
		return mf, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMediaFileRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.MediaFile, error) {
	args := m.Called(ctx, userID)
	if files, ok := args.Get(0).([]*models.MediaFile); ok {
		return files, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMediaFileRepository) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockQuotaService struct {
	mock.Mock
}

func (m *MockQuotaService) MonthlyUsage(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockQuotaService) Check(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockQuotaService) Usage(ctx context.Context, userID int64) (*transfer.UsageInfo, error) {
	args := m.Called(ctx, userID)
	if info, ok := args.Get(0).(*transfer.UsageInfo); ok {
		return info, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPostExecutor struct {
	mock.Mock
}

func (m *MockPostExecutor) Execute(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}
