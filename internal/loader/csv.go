package loader

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mtlpdq/pdqstats/schema"
	"github.com/rs/zerolog/log"
)

// ErrMissingColumn is returned when the incident header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Incident file column names.
const (
	ColumnDate        = "DATE"
	ColumnCategory    = "CATEGORIE"
	ColumnDistrict    = "PDQ"
	ColumnShift       = "QUART"
	ColumnLatitude    = "LATITUDE"
	ColumnLongitude   = "LONGITUDE"
	ColumnSubcategory = "SOUS_CATEGORIE"
)

var requiredColumns = []string{ColumnDate, ColumnCategory, ColumnDistrict}

// dateLayouts are the accepted DATE layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ctxCheckInterval is how many rows are read between context checks.
const ctxCheckInterval = 10000

// ReadIncidents parses an incident CSV. The delimiter (comma or semicolon) is
// detected from the header line. Rows that cannot be split into the header's
// columns are skipped and counted as malformed; unparseable field values become
// null fields on an otherwise kept record.
func ReadIncidents(ctx context.Context, r io.Reader, loc *time.Location) (schema.Dataset, error) {
	if loc == nil {
		loc = time.Local
	}
	br := bufio.NewReader(r)
	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return schema.Dataset{}, fmt.Errorf("failed to read incident header: %w", err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return schema.Dataset{}, err
	}

	var ds schema.Dataset
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ds.Rows++
		if ds.Rows%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return schema.Dataset{}, err
			}
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			ds.Malformed++
			log.Debug().Err(err).Int("line", parseErr.Line).Msg("Skipping malformed incident row")
			continue
		}
		if err != nil {
			return schema.Dataset{}, fmt.Errorf("failed to read incident row %d: %w", ds.Rows, err)
		}
		if len(row) < len(header) {
			ds.Malformed++
			line, _ := reader.FieldPos(0)
			log.Debug().Int("line", line).Int("fields", len(row)).Msg("Skipping short incident row")
			continue
		}
		ds.Records = append(ds.Records, cols.record(row, loc))
	}
	return ds, nil
}

// columns holds the position of each known column, -1 when absent.
type columns struct {
	date, category, district, shift, latitude, longitude, subcategory int
}

func indexColumns(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := pos[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	at := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}
	return columns{
		date:        at(ColumnDate),
		category:    at(ColumnCategory),
		district:    at(ColumnDistrict),
		shift:       at(ColumnShift),
		latitude:    at(ColumnLatitude),
		longitude:   at(ColumnLongitude),
		subcategory: at(ColumnSubcategory),
	}, nil
}

// record converts one row. Fields are cloned so records do not pin the reader's line buffer.
func (c columns) record(row []string, loc *time.Location) schema.IncidentRecord {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.Clone(strings.TrimSpace(row[i]))
	}
	return schema.IncidentRecord{
		Date:        ParseDate(field(c.date), loc),
		Category:    field(c.category),
		District:    ParseDistrict(field(c.district)),
		Period:      ParseShift(field(c.shift)),
		Latitude:    parseCoordinate(field(c.latitude)),
		Longitude:   parseCoordinate(field(c.longitude)),
		Subcategory: field(c.subcategory),
	}
}

// ParseDate parses a DATE value, returning the zero time when it cannot be parsed.
// Values without an offset are read in loc; values with one are converted to loc,
// so the calendar fields always follow the configured zone.
func ParseDate(s string, loc *time.Location) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc)
		}
	}
	return time.Time{}
}

// ParseDistrict parses a PDQ value. Integral floats such as "38.0" are accepted.
func ParseDistrict(s string) *int {
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}

// ParseShift normalizes a QUART value. Unknown shifts become null.
func ParseShift(s string) schema.Period {
	p := schema.Period(strings.ToLower(s))
	if _, ok := schema.ValidPeriods[p]; !ok {
		return ""
	}
	return p
}

func parseCoordinate(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// sniffDelimiter picks ';' when the first line has more semicolons than commas.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(br.Size())
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		peek = peek[:i]
	}
	if bytes.Count(peek, []byte{';'}) > bytes.Count(peek, []byte{','}) {
		return ';'
	}
	return ','
}
