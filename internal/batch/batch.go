package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"motordiag/internal/engine"
	"motordiag/internal/ingest"
	"motordiag/internal/model"
)

type SkippedSheet struct {
	Sheet  string `json:"sheet"`
	Reason string `json:"reason"`
}

type Summary struct {
	ID       uuid.UUID           `json:"id"`
	Started  time.Time           `json:"started"`
	Finished time.Time           `json:"finished"`
	Sheets   int                 `json:"sheets"`
	Entries  []model.SheetResult `json:"entries"`
	Skipped  []SkippedSheet      `json:"skipped,omitempty"`
}

type Progress func(done, total int, sheet string)

// Run processes every sheet of the workbook independently and
// sequentially. Per-sheet failures of any kind are recorded as skips and
// never abort the batch; the worst outcome is an empty entry list.
// Time-domain sheets contribute an entry only when they produced at
// least one fault; spectral sheets always contribute.
func Run(ctx context.Context, wb ingest.Workbook, p engine.Params, logger *slog.Logger, progress Progress) (*Summary, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	names, err := wb.SheetNames()
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	summary := &Summary{
		ID:      uuid.New(),
		Started: time.Now().UTC(),
		Sheets:  len(names),
	}
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := runSheet(wb, name, p, logger)
		switch {
		case err != nil:
			summary.Skipped = append(summary.Skipped, SkippedSheet{Sheet: name, Reason: err.Error()})
			if logger != nil {
				logger.Warn("sheet skipped", "sheet", name, "reason", err)
			}
		case p.Mode != model.ModeSpectral && len(res.Faults) == 0:
			// Clean time-domain sheets do not appear in the summary.
		default:
			summary.Entries = append(summary.Entries, *res)
		}
		if progress != nil {
			progress(i+1, len(names), name)
		}
	}
	summary.Finished = time.Now().UTC()
	if logger != nil {
		logger.Info("batch finished",
			"id", summary.ID,
			"sheets", summary.Sheets,
			"entries", len(summary.Entries),
			"skipped", len(summary.Skipped),
		)
	}
	return summary, nil
}

func runSheet(wb ingest.Workbook, name string, p engine.Params, logger *slog.Logger) (res *model.SheetResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	tbl, err := wb.ReadSheet(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	return engine.Run(tbl, p, logger)
}
