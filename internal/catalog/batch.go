package catalog

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// CreateFunc persists a draft and returns the id it was stored under.
type CreateFunc func(ctx context.Context, draft *ProductDraft) (string, error)

// BatchItem is one unit of an import batch. Err is set when the draft
// could not be prepared; such items are reported without calling create.
type BatchItem struct {
	Reference string
	Draft     *ProductDraft
	Err       error
}

// ImportOutcome is the per-draft line of an import report.
type ImportOutcome struct {
	Reference string `json:"reference"`
	Success   bool   `json:"success"`
	ProductID string `json:"productId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ImportResult aggregates the outcomes of a batch.
type ImportResult struct {
	Total   int             `json:"total"`
	Success int             `json:"success"`
	Failed  int             `json:"failed"`
	Results []ImportOutcome `json:"results"`
}

func (r *ImportResult) record(o ImportOutcome) {
	r.Total++
	if o.Success {
		r.Success++
	} else {
		r.Failed++
	}
	r.Results = append(r.Results, o)
}

// Runner materializes drafts one at a time through a create callback.
type Runner struct {
	logger *logrus.Entry
}

// NewRunner creates a batch runner. A nil logger falls back to the standard logrus logger.
func NewRunner(logger *logrus.Entry) *Runner {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Runner{logger: logger.WithField("component", "catalog.batch")}
}

// Run creates every prepared draft in order. A failing item never stops the
// batch; it is recorded and the next item is processed. Drafts are created
// sequentially because create may touch shared state (category lookups,
// file moves) that is not safe to run concurrently.
func (r *Runner) Run(ctx context.Context, items []BatchItem, create CreateFunc) *ImportResult {
	result := &ImportResult{Results: make([]ImportOutcome, 0, len(items))}

	for _, item := range items {
		outcome := ImportOutcome{Reference: item.Reference}

		var err error
		switch {
		case item.Err != nil:
			err = item.Err
		case item.Draft == nil:
			err = fmt.Errorf("no product data")
		default:
			outcome.ProductID, err = r.create(ctx, create, item.Draft)
		}

		if err != nil {
			outcome.ProductID = ""
			outcome.Error = err.Error()
			r.logger.WithFields(logrus.Fields{
				"reference": item.Reference,
				"error":     err.Error(),
			}).Warn("Product import failed")
		} else {
			outcome.Success = true
		}
		result.record(outcome)
	}

	r.logger.WithFields(logrus.Fields{
		"total":   result.Total,
		"success": result.Success,
		"failed":  result.Failed,
	}).Info("Import batch finished")
	return result
}

// create calls fn, turning a panic into an error so one bad draft cannot
// take down the rest of the batch.
func (r *Runner) create(ctx context.Context, fn CreateFunc, draft *ProductDraft) (id string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("unexpected failure: %v", rec)
		}
	}()
	return fn(ctx, draft)
}
