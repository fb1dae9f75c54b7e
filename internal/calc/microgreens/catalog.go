package microgreens

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gocarina/gocsv"

	"Estimator/internal/finance"
	"Estimator/internal/logger"
	"Estimator/internal/units"
)

// Entry is one row of a seed supplier catalog, in the supplier's units.
type Entry struct {
	PartNumber       string  `json:"part_number" csv:"part_number"`
	Name             string  `json:"name" csv:"name"`
	SeedsGPerTray    float64 `json:"seeds_g_per_tray" csv:"seeds_g_per_tray"`
	YieldOzPerTray   float64 `json:"yield_oz_per_tray" csv:"yield_oz_per_tray"`
	DaysPerTray      float64 `json:"days_per_tray" csv:"days_per_tray"`
	SeedPricePer25Lb float64 `json:"seed_price_per_25lb" csv:"seed_price_per_25lb"`
}

// Catalog lists plant entries from a file or a database.
type Catalog interface {
	List(ctx context.Context) ([]Entry, error)
}

var (
	DefaultWater = LitrePerDay.Of(0.25)
	DefaultLight = HourPerDay.Of(8)
	DefaultRest  = units.Day.Of(2)
	DefaultMSRP  = EURPerKilogram.Of(13)

	seedSack = units.Pound.Of(25)
)

// Microgreen fills in the growing defaults that a catalog row leaves out.
func (e Entry) Microgreen() Microgreen {
	return Microgreen{
		Name:        e.Name,
		Price:       finance.EUR.Of(e.SeedPricePer25Lb).Div(seedSack).MustIn(EURPerKilogram),
		Seeds:       units.Gram.Of(e.SeedsGPerTray),
		Water:       DefaultWater,
		Light:       DefaultLight,
		Germination: units.Day.Of(0),
		Grow:        units.Day.Of(e.DaysPerTray),
		Rest:        DefaultRest,
		Yield:       units.Ounce.Of(e.YieldOzPerTray),
		MSRP:        DefaultMSRP,
	}
}

// ParseEntry reads the six catalog columns. Name may be any text, the
// numeric columns must parse as floats; extra columns are ignored.
func ParseEntry(cols []string) (Entry, error) {
	if len(cols) < entryColumns {
		return Entry{}, errors.Newf("expected %d columns, got %d", entryColumns, len(cols))
	}
	var out []Entry
	if err := gocsv.UnmarshalCSVWithoutHeaders(&rows{cols[:entryColumns]}, &out); err != nil {
		return Entry{}, err
	}
	if len(out) != 1 {
		return Entry{}, errors.Newf("expected one entry, got %d", len(out))
	}
	e := out[0]
	e.PartNumber = strings.TrimSpace(e.PartNumber)
	e.Name = strings.TrimSpace(e.Name)
	return e, nil
}

const entryColumns = 6

// rows feeds already split records to gocsv.
type rows [][]string

func (r *rows) Read() ([]string, error) {
	if len(*r) == 0 {
		return nil, io.EOF
	}
	rec := (*r)[0]
	*r = (*r)[1:]
	return rec, nil
}

func (r *rows) ReadAll() ([][]string, error) {
	all := *r
	*r = nil
	return all, nil
}

// ReadCSV parses a catalog with a header line. Every line must have as
// many columns as the header.
func ReadCSV(r io.Reader) ([]Entry, error) {
	records, err := gocsv.LazyCSVReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading catalog")
	}
	if len(records) < 2 {
		return nil, nil
	}
	out := make([]Entry, 0, len(records)-1)
	for i, rec := range records[1:] {
		e, err := ParseEntry(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "catalog line %d", i+2)
		}
		out = append(out, e)
	}
	return out, nil
}

// FileCatalog reads a CSV catalog from disk on every List.
type FileCatalog struct {
	Path string
}

// List treats a missing file as an empty catalog.
func (c FileCatalog) List(ctx context.Context) ([]Entry, error) {
	f, err := os.Open(c.Path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Logger.Warnw("catalog file not found, catalog is empty", "path", c.Path)
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "opening catalog")
	}
	defer f.Close()
	return ReadCSV(f)
}
