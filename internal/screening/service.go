package screening

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jdvermeer/screenlist/internal/tabular"
)

// Service provides the core business logic for list screening.
// It holds the loaded reference groups and limits how many screenings
// run at once.
type Service struct {
	groups  Groups
	limiter *Limiter
	started time.Time

	mu           sync.Mutex
	screenings   int64
	rowsScreened int64
}

// NewService creates a screening service over the given reference groups.
func NewService(groups Groups, maxConcurrent int, maxWait time.Duration) *Service {
	return &Service{
		groups:  groups,
		limiter: NewLimiter(maxConcurrent, maxWait),
		started: time.Now(),
	}
}

// Summary counts screening outcomes by category.
type Summary struct {
	Total   int `json:"total"`
	Imneo   int `json:"imneo"`
	XClient int `json:"xclient"`
	Safe    int `json:"safe"`
}

func (sum *Summary) add(o Outcome) {
	sum.Total++
	switch o.Status {
	case StatusImneo:
		sum.Imneo++
	case StatusXClientCandidate, StatusXClientRelation:
		sum.XClient++
	default:
		sum.Safe++
	}
}

// Result is the outcome of screening one uploaded table.
// Outcomes[i] corresponds to Table.Rows[i].
type Result struct {
	ID       string    `json:"id"`
	Mode     Mode      `json:"mode"`
	Outcomes []Outcome `json:"outcomes"`
	Summary  Summary   `json:"summary"`

	Table   *tabular.Table `json:"-"`
	Columns ColumnMap      `json:"-"`
}

// Screen classifies every row of an already-decoded table.
// Returns ErrBusy if the concurrent screening limit is reached and no
// slot frees up within the configured wait time.
func (s *Service) Screen(ctx context.Context, table *tabular.Table, mode Mode) (*Result, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	return s.screen(table, mode), nil
}

// ScreenUpload decodes an uploaded file and screens every row.
// The filename extension selects the decoder (.csv vs workbook); decoding
// is strict, so malformed rows fail the whole upload.
func (s *Service) ScreenUpload(ctx context.Context, filename string, data []byte, mode Mode) (*Result, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	table, err := tabular.Decode(data, filename)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}

	return s.screen(table, mode), nil
}

func (s *Service) screen(table *tabular.Table, mode Mode) *Result {
	start := time.Now()
	cols := UploadColumns(table.Headers)

	outcomes := make([]Outcome, len(table.Rows))
	var sum Summary
	for i := range table.Rows {
		outcomes[i] = Classify(cols.KeyAt(table, i), mode, s.groups)
		outcomes[i].Row = i + 1
		sum.add(outcomes[i])
	}

	res := &Result{
		ID:       uuid.New().String(),
		Mode:     mode,
		Outcomes: outcomes,
		Summary:  sum,
		Table:    table,
		Columns:  cols,
	}

	s.mu.Lock()
	s.screenings++
	s.rowsScreened += int64(sum.Total)
	s.mu.Unlock()

	slog.Info("screening complete",
		"screening_id", res.ID,
		"mode", mode,
		"rows", sum.Total,
		"imneo", sum.Imneo,
		"xclient", sum.XClient,
		"safe", sum.Safe,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return res
}

// GroupSizes reports how many distinct keys a reference group holds.
type GroupSizes struct {
	Names     int `json:"names"`
	Companies int `json:"companies"`
}

// Stats reports runtime counters for health and monitoring endpoints.
type Stats struct {
	UptimeSeconds int64      `json:"uptime_seconds"`
	Screenings    int64      `json:"screenings"`
	RowsScreened  int64      `json:"rows_screened"`
	Active        int        `json:"active"`
	MaxConcurrent int        `json:"max_concurrent"`
	Imneo         GroupSizes `json:"imneo"`
	XClient       GroupSizes `json:"xclient"`
}

// Stats returns a snapshot of service counters and reference group sizes.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	screenings := s.screenings
	rows := s.rowsScreened
	s.mu.Unlock()

	return Stats{
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Screenings:    screenings,
		RowsScreened:  rows,
		Active:        s.limiter.ActiveCount(),
		MaxConcurrent: s.limiter.MaxConcurrent(),
		Imneo: GroupSizes{
			Names:     s.groups.Imneo.Names.Len(),
			Companies: s.groups.Imneo.Companies.Len(),
		},
		XClient: GroupSizes{
			Names:     s.groups.XClient.Names.Len(),
			Companies: s.groups.XClient.Companies.Len(),
		},
	}
}

// WaitForDrain blocks until in-flight screenings finish or ctx is cancelled.
// Used during graceful shutdown.
func (s *Service) WaitForDrain(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
