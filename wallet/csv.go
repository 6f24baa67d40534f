package wallet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/ulikunitz/xz"
)

// Column names written by the wallet history downloader.
const (
	ColTransactID     = "TransactID"
	ColTransactType   = "TransactType"
	ColTransactStatus = "TransactStatus"
	ColCurrency       = "Currency"
	ColAmountSatoshi  = "Amount_Satoshi"
	ColAmountBTC      = "Amount_BTC"
	ColFeeSatoshi     = "Fee_Satoshi"
	ColFeeBTC         = "Fee_BTC"
	ColTimestamp      = "Timestamp"
	ColBalanceSatoshi = "WalletBalance_Satoshi"
	ColBalanceBTC     = "WalletBalance_BTC"
	ColText           = "Text"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadOptions controls ingestion.
type LoadOptions struct {
	// StrictOrder fails the load on out-of-order timestamps instead of
	// sorting them.
	StrictOrder bool
	Logger      *zerolog.Logger
}

func (o LoadOptions) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

// Load reads a wallet history CSV from path. Paths ending in ".xz" are
// decompressed on the fly.
func Load(path string, opts LoadOptions) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path}
		}
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open xz stream %s: %w", path, err)
		}
		r = xr
	}

	recs, err := Read(r, opts)
	if err != nil {
		return nil, err
	}
	opts.logger().Info().Str("path", path).Int("records", len(recs)).Msg("wallet history loaded")
	return recs, nil
}

// Read parses a wallet history CSV. The header row is required; columns
// are matched by name so extra or reordered columns are fine. Any row that
// fails to parse fails the whole read.
func Read(in io.Reader, opts LoadOptions) ([]Record, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, &MalformedRecordError{Line: 1, Err: errors.New("empty file, header row required")}
	}
	if err != nil {
		return nil, &MalformedRecordError{Line: 1, Err: err}
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, &MalformedRecordError{Line: 1, Err: err}
	}

	var out []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &MalformedRecordError{Line: pe.Line, Err: pe.Err}
			}
			return nil, err
		}
		line, _ := r.FieldPos(0)
		if isBlank(row) {
			continue
		}
		rec, err := cols.parse(row, line)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	if err := CheckOrder(out); err != nil {
		if opts.StrictOrder {
			return nil, err
		}
		opts.logger().Warn().Err(err).Msg("wallet history not sorted by timestamp, sorting")
		slices.SortStableFunc(out, func(a, b Record) int {
			return a.Timestamp.Compare(b.Timestamp)
		})
	}
	return out, nil
}

// CheckOrder verifies that timestamps are non-decreasing.
func CheckOrder(records []Record) error {
	for i := 1; i < len(records); i++ {
		if records[i].Timestamp.Before(records[i-1].Timestamp) {
			return &OrderError{Index: i}
		}
	}
	return nil
}

type columns map[string]int

func mapColumns(header []string) (columns, error) {
	c := columns{}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		c[h] = i
	}
	for _, req := range []string{ColTimestamp, ColTransactType, ColTransactStatus} {
		if _, ok := c[req]; !ok {
			return nil, fmt.Errorf("missing column %s", req)
		}
	}
	if !c.has(ColAmountBTC) && !c.has(ColAmountSatoshi) {
		return nil, fmt.Errorf("missing column %s or %s", ColAmountBTC, ColAmountSatoshi)
	}
	if !c.has(ColBalanceBTC) && !c.has(ColBalanceSatoshi) {
		return nil, fmt.Errorf("missing column %s or %s", ColBalanceBTC, ColBalanceSatoshi)
	}
	return c, nil
}

func (c columns) has(name string) bool {
	_, ok := c[name]
	return ok
}

func (c columns) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (c columns) parse(row []string, line int) (Record, error) {
	rec := Record{
		TransactID: c.get(row, ColTransactID),
		Type:       TransactType(c.get(row, ColTransactType)),
		Status:     TransactStatus(c.get(row, ColTransactStatus)),
		Currency:   c.get(row, ColCurrency),
		Text:       c.get(row, ColText),
	}

	ts := c.get(row, ColTimestamp)
	t, err := parseTime(ts)
	if err != nil {
		return Record{}, &MalformedRecordError{Line: line, Column: ColTimestamp, Value: ts, Err: err}
	}
	rec.Timestamp = t

	if rec.Type == "" {
		return Record{}, &MalformedRecordError{Line: line, Column: ColTransactType, Err: errors.New("empty")}
	}

	if rec.Amount, err = c.amount(row, line, ColAmountBTC, ColAmountSatoshi, true); err != nil {
		return Record{}, err
	}
	if rec.WalletBalance, err = c.amount(row, line, ColBalanceBTC, ColBalanceSatoshi, true); err != nil {
		return Record{}, err
	}
	if rec.Fee, err = c.amount(row, line, ColFeeBTC, ColFeeSatoshi, false); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// amount prefers the BTC column and falls back to satoshis.
func (c columns) amount(row []string, line int, btcCol, satCol string, required bool) (decimal.Decimal, error) {
	if v := c.get(row, btcCol); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, &MalformedRecordError{Line: line, Column: btcCol, Value: v, Err: err}
		}
		return d, nil
	}
	if v := c.get(row, satCol); v != "" {
		sat, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return decimal.Zero, &MalformedRecordError{Line: line, Column: satCol, Value: v, Err: err}
		}
		return decimal.New(sat, -8), nil
	}
	if required {
		return decimal.Zero, &MalformedRecordError{Line: line, Column: btcCol, Err: errors.New("empty")}
	}
	return decimal.Zero, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty")
	}
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
