package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/google/uuid"
	awsctl "github.com/isometry/eventbridge-explorer/internal/controllers/aws"
	"github.com/pkg/errors"
)

// Identity returns the account and principal of the active credentials.
func (e *Explorer) Identity(ctx context.Context) (*awsctl.Identity, error) {
	id, err := e.backend.Identity(ctx)
	if err != nil {
		return nil, err
	}
	if id.Region == "" {
		id.Region = e.backend.Region()
	}
	return id, nil
}

// ExportEnabled reports whether ExportSnapshot has a destination.
func (e *Explorer) ExportEnabled() bool {
	return e.export.bucket != ""
}

// ExportSnapshot uploads v as JSON to the export bucket and returns the object key.
// Keys have the form [prefix/]kind/YYYY/MM/DD/HHMMSS-uuid.json.
func (e *Explorer) ExportSnapshot(ctx context.Context, kind string, v any) (string, error) {
	if !e.ExportEnabled() {
		return "", ErrExportDisabled
	}
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errors.Wrapf(err, "failed to encode %s snapshot", kind)
	}
	now := e.clock.Now().UTC()
	key := path.Join(e.export.prefix, kind, now.Format("2006/01/02"),
		fmt.Sprintf("%s-%s.json", now.Format("150405"), uuid.NewString()))

	if err = e.backend.PutS3Object(ctx, e.export.bucket, key, body); err != nil {
		return "", errors.Wrapf(err, "failed to export %s snapshot", kind)
	}
	e.logger.Info("snapshot exported", "bucket", e.export.bucket, "key", key)
	return key, nil
}
