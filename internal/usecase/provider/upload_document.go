package provider

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
	"github.com/BruksfildServices01/marketplace-api/internal/storage"
)

type UploadDocument struct {
	repo  domain.Repository
	store storage.Store
	audit audit.Sink
}

func NewUploadDocument(repo domain.Repository, store storage.Store, audit audit.Sink) *UploadDocument {
	return &UploadDocument{repo: repo, store: store, audit: audit}
}

func (uc *UploadDocument) Execute(ctx context.Context, userID uint, data []byte) (*models.Provider, error) {
	p, err := uc.repo.GetProviderByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc, err := storage.NormalizeDocument(data)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("providers/%d/%s%s", p.ID, uuid.NewString(), doc.Extension)
	url, err := uc.store.Put(ctx, key, doc.Body, doc.ContentType)
	if err != nil {
		return nil, err
	}

	p, err = uc.repo.AttachDocument(ctx, p.ID, url)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   audit.ActionProviderDocument,
		Entity:   "provider",
		EntityID: &p.ID,
	})

	return p, nil
}
