package ports

import (
	"context"

	"property-price-service/internal/core/domain"
)

// DatasetReader loads the reference tabular dataset.
type DatasetReader interface {
	// ReadTable parses the file at path into a header plus rows.
	// A missing or unreadable file yields domain.ErrDataLoad.
	ReadTable(ctx context.Context, path string) (*domain.Table, error)
}
