package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"webapp/internal/models"
	"webapp/internal/storage"
)

// PictureService tracks the single profile-picture blob attached to an
// account. The blob store and the database are updated in an order that never
// leaves image_key pointing at a missing blob.
type PictureService interface {
	Attach(ctx context.Context, account *models.Account, fileName, contentType string, body io.Reader) (string, error)
	Detach(ctx context.Context, account *models.Account) error
	Metadata(account *models.Account) (*models.PictureMetadata, error)
}

type pictureService struct {
	repo  accountUpdater
	blobs storage.BlobStore
}

// accountUpdater is the slice of the account repository the tracker needs.
type accountUpdater interface {
	SetImageKey(ctx context.Context, id int64, key string) error
	ClearImageKey(ctx context.Context, id int64) error
}

func NewPictureService(repo accountUpdater, blobs storage.BlobStore) PictureService {
	return &pictureService{repo: repo, blobs: blobs}
}

// Attach uploads the blob first, then records its key. If recording fails the
// blob is removed again so no orphan is left behind.
func (s *pictureService) Attach(ctx context.Context, account *models.Account, fileName, contentType string, body io.Reader) (string, error) {
	if !account.IsVerified {
		return "", ErrNotVerified
	}
	if account.ImageKey != nil {
		return "", ErrPictureExists
	}

	key := fmt.Sprintf("%d/%s%s", account.ID, uuid.NewString(), filepath.Ext(fileName))
	if err := s.blobs.Put(ctx, key, contentType, body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := s.repo.SetImageKey(ctx, account.ID, key); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			logrus.WithError(delErr).WithField("key", key).
				Warn("could not remove orphaned picture blob")
		}
		return "", err
	}
	account.ImageKey = &key
	return key, nil
}

// Detach deletes the blob first and clears the key only once the delete
// succeeded; a storage failure leaves the key untouched.
func (s *pictureService) Detach(ctx context.Context, account *models.Account) error {
	if !account.IsVerified {
		return ErrNotVerified
	}
	if account.ImageKey == nil {
		return ErrPictureNotFound
	}
	if err := s.blobs.Delete(ctx, *account.ImageKey); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := s.repo.ClearImageKey(ctx, account.ID); err != nil {
		return err
	}
	account.ImageKey = nil
	return nil
}

func (s *pictureService) Metadata(account *models.Account) (*models.PictureMetadata, error) {
	if !account.IsVerified {
		return nil, ErrNotVerified
	}
	if account.ImageKey == nil {
		return nil, ErrPictureNotFound
	}
	key := *account.ImageKey
	return &models.PictureMetadata{
		FileName:   path.Base(key),
		ImageKey:   key,
		URL:        s.blobs.URL(key),
		UploadDate: account.AccountCreated,
		UserID:     account.ID,
	}, nil
}
