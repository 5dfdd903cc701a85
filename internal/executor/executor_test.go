package executor

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/ddoongjamba/autosns-api/internal/models"
	"github.com/ddoongjamba/autosns-api/internal/publisher"
	"github.com/ddoongjamba/autosns-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSecretKey = []byte("0123456789abcdef0123456789abcdef")

// --- Mocks ---

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

type MockConnector struct {
	mock.Mock
}

func (m *MockConnector) Connect(ctx context.Context, creds publisher.Credentials) (publisher.Session, error) {
	args := m.Called(ctx, creds)
	if session, ok := args.Get(0).(publisher.Session); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSession struct {
	mock.Mock
}

func (m *MockSession) PublishPhoto(ctx context.Context, path, caption string) error {
	args := m.Called(ctx, path, caption)
	return args.Error(0)
}

func (m *MockSession) PublishAlbum(ctx context.Context, paths []string, caption string) error {
	args := m.Called(ctx, paths, caption)
	return args.Error(0)
}

func (m *MockSession) PublishVideo(ctx context.Context, path, caption string, reel bool) error {
	args := m.Called(ctx, path, caption, reel)
	return args.Error(0)
}

// --- Helpers ---

func pendingPost(id int64, postType models.PostType, paths ...string) *models.Post {
	return &models.Post{
		ID:         id,
		UserID:     1,
		AccountID:  10,
		PostType:   postType,
		Caption:    "hello",
		MediaPaths: paths,
		Status:     models.PostStatusPending,
	}
}

func testAccount(t *testing.T) *models.IGAccount {
	t.Helper()
	encrypted, err := utils.Encrypt([]byte("s3cret"), testSecretKey)
	require.NoError(t, err)
	return &models.IGAccount{
		ID:                10,
		UserID:            1,
		Username:          "tester",
		EncryptedPassword: encrypted,
	}
}

// --- Tests ---

func TestExecute_PublishesPhoto(t *testing.T) {
	pr := new(MockPostRepository)
	ar := new(MockAccountRepository)
	connector := new(MockConnector)
	session := new(MockSession)

	post := pendingPost(1, models.PostTypePhoto, "/data/a.jpg")

	pr.On("GetByID", mock.Anything, int64(1)).Return(post, nil)
	ar.On("GetByID", mock.Anything, int64(10)).Return(testAccount(t), nil)
	pr.On("UpdateStatus", mock.Anything, int64(1), models.PostStatusRunning, "", (*time.Time)(nil)).Return(nil)
	connector.On("Connect", mock.Anything, publisher.Credentials{Username: "tester", Password: "s3cret"}).Return(session, nil)
	session.On("PublishPhoto", mock.Anything, "/data/a.jpg", "hello").Return(nil)
	pr.On("UpdateStatus", mock.Anything, int64(1), models.PostStatusDone, "", mock.AnythingOfType("*time.Time")).Return(nil)

	e := New(pr, ar, connector, testSecretKey)
	err := e.Execute(context.Background(), 1)

	assert.NoError(t, err)
	pr.AssertExpectations(t)
	session.AssertExpectations(t)
}

func TestExecute_DispatchesByType(t *testing.T) {
	tests := []struct {
		name  string
		post  *models.Post
		setup func(s *MockSession)
	}{
		{
			name: "carousel publishes every path",
			post: pendingPost(2, models.PostTypeCarousel, "/data/a.jpg", "/data/b.jpg"),
			setup: func(s *MockSession) {
				s.On("PublishAlbum", mock.Anything, []string{"/data/a.jpg", "/data/b.jpg"}, "hello").Return(nil)
			},
		},
		{
			name: "video is not a reel",
			post: pendingPost(3, models.PostTypeVideo, "/data/a.mp4"),
			setup: func(s *MockSession) {
				s.On("PublishVideo", mock.Anything, "/data/a.mp4", "hello", false).Return(nil)
			},
		},
		{
			name: "reel sets the reel flag",
			post: pendingPost(4, models.PostTypeReel, "/data/a.mp4"),
			setup: func(s *MockSession) {
				s.On("PublishVideo", mock.Anything, "/data/a.mp4", "hello", true).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := new(MockPostRepository)
			ar := new(MockAccountRepository)
			connector := new(MockConnector)
			session := new(MockSession)

			pr.On("GetByID", mock.Anything, tt.post.ID).Return(tt.post, nil)
			ar.On("GetByID", mock.Anything, int64(10)).Return(testAccount(t), nil)
			pr.On("UpdateStatus", mock.Anything, tt.post.ID, models.PostStatusRunning, "", (*time.Time)(nil)).Return(nil)
			connector.On("Connect", mock.Anything, mock.Anything).Return(session, nil)
			tt.setup(session)
			pr.On("UpdateStatus", mock.Anything, tt.post.ID, models.PostStatusDone, "", mock.AnythingOfType("*time.Time")).Return(nil)

			e := New(pr, ar, connector, testSecretKey)
			err := e.Execute(context.Background(), tt.post.ID)

			assert.NoError(t, err)
			session.AssertExpectations(t)
		})
	}
}

func TestExecute_PublishFailureRecordedNotReturned(t *testing.T) {
	pr := new(MockPostRepository)
	ar := new(MockAccountRepository)
	connector := new(MockConnector)
	session := new(MockSession)

	post := pendingPost(5, models.PostTypePhoto, "/data/a.jpg")

	pr.On("GetByID", mock.Anything, int64(5)).Return(post, nil)
	ar.On("GetByID", mock.Anything, int64(10)).Return(testAccount(t), nil)
	pr.On("UpdateStatus", mock.Anything, int64(5), models.PostStatusRunning, "", (*time.Time)(nil)).Return(nil)
	connector.On("Connect", mock.Anything, mock.Anything).Return(session, nil)
	session.On("PublishPhoto", mock.Anything, "/data/a.jpg", "hello").Return(errors.New("media not found"))
	pr.On("UpdateStatus", mock.Anything, int64(5), models.PostStatusFailed, "media not found", (*time.Time)(nil)).Return(nil)

	e := New(pr, ar, connector, testSecretKey)
	err := e.Execute(context.Background(), 5)

	assert.NoError(t, err)
	pr.AssertExpectations(t)
}

func TestExecute_ConnectFailureMarksFailed(t *testing.T) {
	pr := new(MockPostRepository)
	ar := new(MockAccountRepository)
	connector := new(MockConnector)

	post := pendingPost(6, models.PostTypePhoto, "/data/a.jpg")

	pr.On("GetByID", mock.Anything, int64(6)).Return(post, nil)
	ar.On("GetByID", mock.Anything, int64(10)).Return(testAccount(t), nil)
	pr.On("UpdateStatus", mock.Anything, int64(6), models.PostStatusRunning, "", (*time.Time)(nil)).Return(nil)
	connector.On("Connect", mock.Anything, mock.Anything).Return(nil, errors.New("login failed: bad password"))
	pr.On("UpdateStatus", mock.Anything, int64(6), models.PostStatusFailed, "login failed: bad password", (*time.Time)(nil)).Return(nil)

	e := New(pr, ar, connector, testSecretKey)
	err := e.Execute(context.Background(), 6)

	assert.NoError(t, err)
	pr.AssertExpectations(t)
}

func TestExecute_MissingAccountFailsWithoutConnecting(t *testing.T) {
	pr := new(MockPostRepository)
	ar := new(MockAccountRepository)
	connector := new(MockConnector)

	post := pendingPost(7, models.PostTypePhoto, "/data/a.jpg")

	pr.On("GetByID", mock.Anything, int64(7)).Return(post, nil)
	ar.On("GetByID", mock.Anything, int64(10)).Return(nil, nil)
	pr.On("UpdateStatus", mock.Anything, int64(7), models.PostStatusFailed, "linked instagram account not found", (*time.Time)(nil)).Return(nil)

	e := New(pr, ar, connector, testSecretKey)
	err := e.Execute(context.Background(), 7)

	assert.NoError(t, err)
	connector.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything)
	pr.AssertExpectations(t)
}

func TestExecute_SkipsNonPendingPost(t *testing.T) {
	for _, status := range []string{models.PostStatusRunning, models.PostStatusDone, models.PostStatusFailed, models.PostStatusCancelled} {
		t.Run(status, func(t *testing.T) {
			pr := new(MockPostRepository)
			ar := new(MockAccountRepository)
			connector := new(MockConnector)

			post := pendingPost(8, models.PostTypePhoto, "/data/a.jpg")
			post.Status = status

			pr.On("GetByID", mock.Anything, int64(8)).Return(post, nil)

			e := New(pr, ar, connector, testSecretKey)
			err := e.Execute(context.Background(), 8)

			assert.NoError(t, err)
			pr.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			connector.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_MissingPostIsNoOp(t *testing.T) {
	pr := new(MockPostRepository)
	ar := new(MockAccountRepository)
	connector := new(MockConnector)

	pr.On("GetByID", mock.Anything, int64(9)).Return(nil, nil)

	e := New(pr, ar, connector, testSecretKey)
	err := e.Execute(context.Background(), 9)

	assert.NoError(t, err)
	pr.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_StoreFailureIsReturned(t *testing.T) {
	pr := new(MockPostRepository)
	ar := new(MockAccountRepository)
	connector := new(MockConnector)

	pr.On("GetByID", mock.Anything, int64(11)).Return(nil, errors.New("connection refused"))

	e := New(pr, ar, connector, testSecretKey)
	err := e.Execute(context.Background(), 11)

	assert.Error(t, err)
}
