package job

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ddoongjamba/autosns-api/internal/models"
	"github.com/ddoongjamba/autosns-api/internal/publisher"
	"github.com/ddoongjamba/autosns-api/internal/repository"
	"github.com/ddoongjamba/autosns-api/pkg/utils"
)

// SessionRefreshJob periodically reconnects every linked account so session
// caches stay warm and scheduled posts don't pay for a full login at publish
// time.
type SessionRefreshJob struct {
	ar        repository.IGAccountRepository
	connector publisher.Connector
	secretKey []byte
}

func NewSessionRefreshJob(
	ar repository.IGAccountRepository,
	connector publisher.Connector,
	secretKey []byte) *SessionRefreshJob {
	return &SessionRefreshJob{
		ar:        ar,
		connector: connector,
		secretKey: secretKey,
	}
}

func (j *SessionRefreshJob) RefreshSessions() {
	ctx := context.Background()

	accounts, err := j.ar.ListAll(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 5
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, acc := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.IGAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			password, err := utils.Decrypt(acc.EncryptedPassword, j.secretKey)
			if err != nil {
				slog.Info("unable to decrypt credential for session refresh", "account_id", acc.ID)
				return
			}

			_, err = j.connector.Connect(ctx, publisher.Credentials{
				Username: acc.Username,
				Password: password,
			})
			if err != nil {
				slog.Info("unable to refresh instagram session", "account_id", acc.ID, "error", err.Error())
			}
		}(acc)
	}

	wg.Wait()
}
