package provider

import (
	"context"
	"path"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
)

// Documents guards reads of stored verification documents. Keys look like
// providers/<provider id>/<file>.
type Documents struct {
	repo domain.Repository
}

func NewDocuments(repo domain.Repository) *Documents {
	return &Documents{repo: repo}
}

// Authorize returns the cleaned key when the caller may read it: an admin,
// or the provider the document belongs to.
func (d *Documents) Authorize(ctx context.Context, userID uint, role identity.Role, raw string) (string, error) {
	key := strings.TrimPrefix(path.Clean("/"+raw), "/")

	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 || parts[0] != "providers" || parts[2] == "" {
		return "", httperr.NotFound("file_not_found", "File not found.")
	}
	owner, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return "", httperr.NotFound("file_not_found", "File not found.")
	}

	if role == identity.RoleAdmin {
		return key, nil
	}

	if role == identity.RoleProvider {
		p, err := d.repo.GetProviderByUserID(ctx, userID)
		if err != nil && !httperr.IsKind(err, httperr.KindNotFound) {
			return "", err
		}
		if err == nil && p.ID == uint(owner) {
			return key, nil
		}
	}

	return "", httperr.Forbidden("document_forbidden", "You do not have access to this document.")
}
