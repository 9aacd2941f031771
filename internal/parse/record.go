package parse

import (
	"math"
	"strconv"
	"strings"
	"time"

	"nadlan-proxy/internal/model"
)

// Column-name variants seen across the data.gov.il real-estate datasets.
// The datasets are not consistent about spellings (two Hebrew spellings of
// "city name" exist side by side), so every field is probed through its
// known aliases and the first present value wins.
var (
	cityNameColumns   = []string{"שם_ישוב", "שם_יישוב"}
	cityCodeColumns   = []string{"סמל_ישוב"}
	streetNameColumns = []string{"שם_רחוב", "street_name"}

	addressColumns  = []string{"FULLADRESS", "כתובת"}
	dealCityColumns = []string{"שם_ישוב", "ישוב"}
	priceColumns    = []string{"DEALAMOUNT", "מחיר_עסקה"}
	sizeColumns     = []string{"DEALNATURE", "שטח"}
	roomsColumns    = []string{"ASSETROOMNUM", "חדרים"}
	floorColumns    = []string{"FLOORNO", "קומה"}
	dateColumns     = []string{"DEALDATETIME", "תאריך_עסקה"}
	typeColumns     = []string{"DEALNATUREDESCRIPTION", "סוג_נכס"}
)

// String returns the first non-empty value among the given columns,
// rendering numeric cells as plain decimal strings.
func String(record map[string]any, columns ...string) string {
	for _, col := range columns {
		switch v := record[col].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// Number coerces the first present value among the given columns to a
// float64. Unparseable values yield 0 rather than an error so that one dirty
// cell cannot fail a whole request.
func Number(record map[string]any, columns ...string) float64 {
	for _, col := range columns {
		v, ok := record[col]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case string:
			s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
			if s == "" {
				continue
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0
			}
			return f
		}
	}
	return 0
}

// Deal reshapes a raw datastore transaction record into the client contract.
// ppm is computed only when both price and size are positive.
func Deal(record map[string]any) model.Deal {
	price := Number(record, priceColumns...)
	size := Number(record, sizeColumns...)

	d := model.Deal{
		Address: String(record, addressColumns...),
		City:    String(record, dealCityColumns...),
		Price:   price,
		Size:    size,
		Rooms:   Number(record, roomsColumns...),
		Floor:   String(record, floorColumns...),
		Date:    DealMonth(String(record, dateColumns...)),
		Type:    String(record, typeColumns...),
	}
	if price > 0 && size > 0 {
		d.PPM = int(math.Round(price / size))
	}
	return d
}

var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006",
}

// DealMonth trims an upstream deal timestamp down to YYYY-MM. Strings that
// match no known layout pass through unchanged.
func DealMonth(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01")
		}
	}
	if len(raw) >= 7 && raw[4] == '-' {
		return raw[:7]
	}
	return raw
}

// Cities extracts deduplicated city suggestions from raw datastore records.
// Records with no resolvable name are skipped; first-seen order is preserved.
func Cities(records []map[string]any) []model.CitySuggestion {
	seen := make(map[string]bool, len(records))
	results := make([]model.CitySuggestion, 0, len(records))
	for _, r := range records {
		name := String(r, cityNameColumns...)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		results = append(results, model.CitySuggestion{
			Name: name,
			Code: String(r, cityCodeColumns...),
		})
	}
	return results
}

// Streets extracts deduplicated street suggestions from raw datastore records.
func Streets(records []map[string]any) []model.StreetSuggestion {
	seen := make(map[string]bool, len(records))
	results := make([]model.StreetSuggestion, 0, len(records))
	for _, r := range records {
		name := String(r, streetNameColumns...)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		results = append(results, model.StreetSuggestion{Name: name})
	}
	return results
}
