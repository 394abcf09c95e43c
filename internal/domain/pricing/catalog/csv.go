package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
)

// Row is one normalized record of the published price feed.
type Row struct {
	Category    string
	Model       string
	Size        string
	Finish      string
	FinishGroup string
	Code        string
	Price       types.Money
}

// Column aliases as published: the feed has been renamed over the
// years and both generations of headers are still in circulation.
var headerAliases = map[string]string{
	"CATEGORIA":     "category",
	"INGLESINE":     "category",
	"TIPO":          "model",
	"MODELLO":       "model",
	"DIMENSIONE":    "size",
	"FINITURA":      "finish",
	"TIPO_FINITURA": "group",
	"CODICE":        "code",
	"PREZZO":        "price",
}

const (
	defaultSize        = "STD"
	defaultFinish      = "STD"
	defaultFinishGroup = "Altro"
)

// ParseCSV reads the feed and returns normalized rows. Rows without a
// code or with an unparseable price are skipped rather than failing
// the whole load. Category, model, size, finish and code are
// case-normalized to uppercase.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for idx, name := range header {
		key := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := headerAliases[key]; ok {
			if _, seen := cols[canonical]; !seen {
				cols[canonical] = idx
			}
		}
	}
	for _, required := range []string{"category", "model", "code", "price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog feed missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}

		code := strings.ToUpper(field(record, "code"))
		if code == "" {
			continue
		}

		price, err := types.ParseLocalizedPrice(field(record, "price"))
		if err != nil {
			continue
		}

		size := strings.ToUpper(field(record, "size"))
		if size == "" {
			size = defaultSize
		}
		finish := strings.ToUpper(field(record, "finish"))
		if finish == "" {
			finish = defaultFinish
		}
		group := field(record, "group")
		if group == "" {
			group = defaultFinishGroup
		}

		rows = append(rows, Row{
			Category:    strings.ToUpper(field(record, "category")),
			Model:       strings.ToUpper(field(record, "model")),
			Size:        size,
			Finish:      finish,
			FinishGroup: group,
			Code:        code,
			Price:       price,
		})
	}

	return rows, nil
}
