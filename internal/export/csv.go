package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"cryptomarkets-service/internal/domain"
)

// ContentType and FileName describe the download offered to users.
const (
	ContentType = "text/csv"
	FileName    = "crypto_data.csv"
)

// WriteCSV writes a header of column names followed by one row per record.
// Values are the raw dataset values, not display strings. Missing values are
// empty fields.
func WriteCSV(w io.Writer, cols []domain.Column, records []domain.MarketRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.ColumnNames(cols)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, len(cols))
	for _, r := range records {
		for i, c := range cols {
			row[i] = RawValue(c, r)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RawValue renders the unformatted value of one column.
func RawValue(col domain.Column, r domain.MarketRecord) string {
	switch col.Kind {
	case domain.KindText:
		return r.Symbol
	case domain.KindRank:
		if r.MarketCapRank == nil {
			return ""
		}
		return strconv.Itoa(*r.MarketCapRank)
	case domain.KindDate:
		d := r.DateOf(col.Name)
		if !d.Valid {
			return ""
		}
		return d.Time.Format(time.RFC3339Nano)
	}
	v := r.Number(col.Name)
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
