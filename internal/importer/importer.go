// Package importer loads blood-pressure readings from a tabular export into
// the store for a named user. The import is best-effort: bad rows are logged
// and skipped, and whatever parsed is written as one batch at the end.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/paulr25/bp-tracker/internal/metrics"
	"github.com/paulr25/bp-tracker/internal/models"
)

// rowTimestampLayout matches the export's "Date/Time" column, e.g. "05/02/24 14:30".
const rowTimestampLayout = "02/01/06 15:04"

// Expected column headers in the input file.
const (
	colTimestamp = "Date/Time"
	colReading   = "Reading"
)

// UserSource resolves the target username. Lookup is case-insensitive since
// the username comes from an operator, not a login form.
type UserSource interface {
	GetByUsernameFold(ctx context.Context, username string) (*models.User, error)
}

// ReadingSink persists the parsed rows in a single transaction.
type ReadingSink interface {
	BulkInsert(ctx context.Context, readings []models.Reading) error
}

// Summary reports the outcome of an import run.
type Summary struct {
	Imported int
	Skipped  int
}

type Importer struct {
	Users    UserSource
	Readings ReadingSink
	Log      *slog.Logger
}

func New(users UserSource, readings ReadingSink, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{Users: users, Readings: readings, Log: log}
}

// ImportCSV reads rows from in and inserts the ones that parse for the given
// user. Row-level failures reduce the imported count but never abort the run;
// an unknown or ambiguous username aborts before anything is read.
// If zero rows parse, nothing is written.
func (im *Importer) ImportCSV(ctx context.Context, in io.Reader, username string) (Summary, error) {
	user, err := im.Users.GetByUsernameFold(ctx, username)
	if err != nil {
		return Summary{}, fmt.Errorf("resolve user %q: %w", username, err)
	}

	r := csv.NewReader(in)
	header, err := r.Read()
	if err != nil {
		return Summary{}, fmt.Errorf("read header: %w", err)
	}
	tsIdx, readingIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case colTimestamp:
			tsIdx = i
		case colReading:
			readingIdx = i
		}
	}
	if tsIdx < 0 || readingIdx < 0 {
		return Summary{}, fmt.Errorf("missing %q or %q column", colTimestamp, colReading)
	}

	var summary Summary
	var parsed []models.Reading
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			im.Log.Warn("skipping unreadable row", "error", err)
			summary.Skipped++
			continue
		}
		if len(record) <= tsIdx || len(record) <= readingIdx {
			im.Log.Warn("skipping short row", "fields", len(record))
			summary.Skipped++
			continue
		}

		takenAt, err := time.Parse(rowTimestampLayout, strings.TrimSpace(record[tsIdx]))
		if err != nil {
			im.Log.Warn("could not parse timestamp", "value", record[tsIdx], "error", err)
			summary.Skipped++
			continue
		}

		systolic, diastolic, err := ParseReading(record[readingIdx])
		if err != nil {
			im.Log.Warn("could not parse reading", "value", record[readingIdx], "error", err)
			summary.Skipped++
			continue
		}

		parsed = append(parsed, models.Reading{
			UserID:    user.ID,
			Systolic:  systolic,
			Diastolic: diastolic,
			TakenAt:   takenAt,
		})
	}

	if len(parsed) == 0 {
		metrics.AddImportRows(0, summary.Skipped)
		im.Log.Info("no readings were imported", "skipped", summary.Skipped)
		return summary, nil
	}

	if err := im.Readings.BulkInsert(ctx, parsed); err != nil {
		return summary, fmt.Errorf("bulk insert: %w", err)
	}
	summary.Imported = len(parsed)
	metrics.AddImportRows(summary.Imported, summary.Skipped)
	im.Log.Info("import finished", "imported", summary.Imported, "skipped", summary.Skipped)
	return summary, nil
}

// ParseReading splits a combined "127/85" value into systolic and diastolic.
// Exactly two slash-separated integers are accepted.
func ParseReading(s string) (systolic, diastolic int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid reading format: %q", s)
	}
	systolic, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid systolic value: %q", parts[0])
	}
	diastolic, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid diastolic value: %q", parts[1])
	}
	return systolic, diastolic, nil
}
