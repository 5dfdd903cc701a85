package publisher

import "context"

// Credentials identifies one linked account at connect time. Password is the
// already-decrypted plaintext; it never leaves the executor otherwise.
type Credentials struct {
	Username string
	Password string
}

// Connector establishes an authenticated Session for one account, reusing a
// cached session artifact when it still validates.
type Connector interface {
	Connect(ctx context.Context, creds Credentials) (Session, error)
}

// Session is a connected publishing capability for a single account.
type Session interface {
	PublishPhoto(ctx context.Context, path, caption string) error
	PublishAlbum(ctx context.Context, paths []string, caption string) error
	PublishVideo(ctx context.Context, path, caption string, reel bool) error
}
