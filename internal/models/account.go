package models

import "time"

type Account struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // never serialized
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`

	AccountCreated time.Time `json:"account_created"`
	AccountUpdated time.Time `json:"account_updated"`

	IsVerified        bool       `json:"-"`
	VerificationToken *string    `json:"-"` // set only while a verification is outstanding
	TokenExpiresAt    *time.Time `json:"-"` // always paired with VerificationToken
	ImageKey          *string    `json:"-"` // key of the profile picture blob, if any
}

// PublicAccount is the projection of an Account that is safe to return to
// clients: no hash, no token, no blob key.
type PublicAccount struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	AccountCreated time.Time `json:"account_created"`
	AccountUpdated time.Time `json:"account_updated"`
}

func (a *Account) Public() *PublicAccount {
	return &PublicAccount{
		ID:             a.ID,
		Email:          a.Email,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		AccountCreated: a.AccountCreated,
		AccountUpdated: a.AccountUpdated,
	}
}

// PictureMetadata describes the stored profile picture of an account.
type PictureMetadata struct {
	FileName   string    `json:"file_name"`
	ImageKey   string    `json:"image_key"`
	URL        string    `json:"url"`
	UploadDate time.Time `json:"upload_date"`
	UserID     int64     `json:"user_id"`
}
