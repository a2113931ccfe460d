package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"property-price-service/internal/core/domain"
)

// Reader loads CSV datasets with a header row. Cells are kept as raw
// strings; empty cells stand for missing values.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

func (*Reader) ReadTable(ctx context.Context, path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataLoad, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header of %s: %v", domain.ErrDataLoad, path, err)
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", domain.ErrDataLoad, path, err)
		}
		rows = append(rows, record)
	}

	return &domain.Table{Header: header, Rows: rows}, nil
}
