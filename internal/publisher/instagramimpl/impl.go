package instagramimpl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Davincible/goinsta/v3"
	"github.com/cenkalti/backoff/v4"
	"github.com/ddoongjamba/autosns-api/internal/publisher"
)

// Connector logs in to Instagram with a session-reuse-first strategy:
// import the cached session file, probe it with an account sync, and only
// fall back to a full credential login (and overwrite the cache) when the
// probe keeps failing.
type Connector struct {
	sessionsDir string
	delayMin    time.Duration
	delayMax    time.Duration
}

func New(sessionsDir string, delayMin, delayMax time.Duration) *Connector {
	return &Connector{
		sessionsDir: sessionsDir,
		delayMin:    delayMin,
		delayMax:    delayMax,
	}
}

var _ publisher.Connector = (*Connector)(nil)

func (c *Connector) sessionPath(username string) string {
	return filepath.Join(c.sessionsDir, username+".json")
}

func (c *Connector) Connect(ctx context.Context, creds publisher.Credentials) (publisher.Session, error) {
	sessionFile := c.sessionPath(creds.Username)

	if insta, err := c.reuseSession(ctx, sessionFile); err == nil {
		slog.Info("reusing cached instagram session", "username", creds.Username)
		return c.newSession(insta), nil
	} else if !os.IsNotExist(err) {
		slog.Warn("cached session invalid, falling back to full login", "username", creds.Username, "error", err)
	}

	insta := goinsta.New(creds.Username, creds.Password)
	if err := insta.Login(); err != nil {
		return nil, fmt.Errorf("instagram login for %s: %w", creds.Username, err)
	}

	if err := os.MkdirAll(c.sessionsDir, 0o755); err != nil {
		slog.Warn("unable to create sessions directory", "error", err)
	} else if err := insta.Export(sessionFile); err != nil {
		// Login still succeeded; the next connect just pays for a fresh login.
		slog.Warn("unable to save instagram session", "path", sessionFile, "error", err)
	}

	return c.newSession(insta), nil
}

// reuseSession imports the cached session and validates it with a probe call.
// The probe is retried so a transient network failure does not force a full
// login for a session that is still good.
func (c *Connector) reuseSession(ctx context.Context, sessionFile string) (*goinsta.Instagram, error) {
	if _, err := os.Stat(sessionFile); err != nil {
		return nil, err
	}

	insta, err := goinsta.Import(sessionFile)
	if err != nil {
		return nil, fmt.Errorf("import session: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	probe := func() error { return insta.Account.Sync() }
	if err := backoff.Retry(probe, backoff.WithContext(backoff.WithMaxRetries(bo, 2), ctx)); err != nil {
		return nil, fmt.Errorf("session probe: %w", err)
	}

	return insta, nil
}

func (c *Connector) newSession(insta *goinsta.Instagram) *igSession {
	return &igSession{
		insta:    insta,
		delayMin: c.delayMin,
		delayMax: c.delayMax,
	}
}

type igSession struct {
	insta    *goinsta.Instagram
	delayMin time.Duration
	delayMax time.Duration
}

var _ publisher.Session = (*igSession)(nil)

// pause sleeps a random duration inside the configured delay range before a
// request, keeping the client's traffic pattern off the platform's bot radar.
func (s *igSession) pause(ctx context.Context) {
	if s.delayMax <= 0 || s.delayMax < s.delayMin {
		return
	}
	d := s.delayMin
	if span := s.delayMax - s.delayMin; span > 0 {
		d += time.Duration(rand.Int63n(int64(span)))
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

func (s *igSession) PublishPhoto(ctx context.Context, path, caption string) error {
	media, closeAll, err := openMedia(ctx, path)
	if err != nil {
		return err
	}
	defer closeAll()

	s.pause(ctx)
	if _, err := s.insta.Upload(&goinsta.UploadOptions{
		File:    media,
		Caption: caption,
	}); err != nil {
		return fmt.Errorf("photo upload: %w", err)
	}
	return nil
}

func (s *igSession) PublishAlbum(ctx context.Context, paths []string, caption string) error {
	if len(paths) == 0 {
		return fmt.Errorf("album needs at least one media file")
	}

	var album []io.Reader
	var closers []func()
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	for _, path := range paths {
		media, closeFn, err := openMedia(ctx, path)
		if err != nil {
			return err
		}
		closers = append(closers, closeFn)
		album = append(album, media)
	}

	s.pause(ctx)
	if _, err := s.insta.Upload(&goinsta.UploadOptions{
		Album:   album,
		Caption: caption,
	}); err != nil {
		return fmt.Errorf("album upload: %w", err)
	}
	return nil
}

func (s *igSession) PublishVideo(ctx context.Context, path, caption string, reel bool) error {
	media, closeAll, err := openMedia(ctx, path)
	if err != nil {
		return err
	}
	defer closeAll()

	// Feed videos and reels go through the same clips upload endpoint; the
	// reel flag only distinguishes them at the API surface of this package.
	s.pause(ctx)
	if _, err := s.insta.Upload(&goinsta.UploadOptions{
		File:    media,
		Caption: caption,
	}); err != nil {
		if reel {
			return fmt.Errorf("reel upload: %w", err)
		}
		return fmt.Errorf("video upload: %w", err)
	}
	return nil
}

// openMedia opens a stored media path. Local paths are opened directly;
// object-storage URLs are fetched into memory first, since the upload client
// needs a reader it can seek over.
func openMedia(ctx context.Context, path string) (io.Reader, func(), error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, nil, fmt.Errorf("fetch media %s: %w", path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, nil, fmt.Errorf("fetch media %s: unexpected status %d", path, resp.StatusCode)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("read media %s: %w", path, err)
		}
		return bytes.NewReader(data), func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open media %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
