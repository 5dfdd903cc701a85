package models

import "time"

// IGAccount is a linked Instagram account. The password is AES-GCM encrypted
// at rest and only decrypted inside the publish executor.
type IGAccount struct {
	ID                int64     `db:"id" json:"id"`
	UserID            int64     `db:"user_id" json:"user_id"`
	Username          string    `db:"username" json:"username"`
	EncryptedPassword string    `db:"encrypted_password" json:"-"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
