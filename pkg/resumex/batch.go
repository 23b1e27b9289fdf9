package resumex

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/cognicore/resumex/pkg/resumex/ledger"
	"github.com/cognicore/resumex/pkg/resumex/record"
)

// Input is one document of a batch. Err carries a failure from before
// extraction, such as a conversion error; such inputs yield an empty
// record.
type Input struct {
	ID   string
	Text string
	Err  error
}

// Batch is the result of a batch run. Records and Errors are index-aligned
// with the inputs.
type Batch struct {
	Records []record.Record
	Errors  []error
	Ledger  *ledger.Ledger
}

// Failed returns the number of inputs that produced an error.
func (b *Batch) Failed() int {
	n := 0
	for _, err := range b.Errors {
		if err != nil {
			n++
		}
	}
	return n
}

// ProcessBatch extracts a record from every document and builds a fresh
// ledger over them. len(records) == len(docs) always holds.
func (e *Engine) ProcessBatch(ctx context.Context, docs []string) ([]record.Record, *ledger.Ledger) {
	inputs := make([]Input, len(docs))
	for i, d := range docs {
		inputs[i] = Input{Text: d}
	}
	b := e.ProcessInputs(ctx, inputs)
	return b.Records, b.Ledger
}

// ProcessInputs runs Extract over inputs on a bounded worker pool.
// A failing document gets an empty record at its index and never affects
// its siblings. The ledger is folded after all workers finish, in input
// order.
func (e *Engine) ProcessInputs(ctx context.Context, inputs []Input) *Batch {
	b := &Batch{
		Records: make([]record.Record, len(inputs)),
		Errors:  make([]error, len(inputs)),
	}

	p := pool.New().WithMaxGoroutines(e.workers)
	for idx, in := range inputs {
		idx, in := idx, in
		p.Go(func() {
			rec, err := e.extractSafe(ctx, in)
			if err != nil {
				e.logger.Warn("Document failed",
					zap.Int("index", idx),
					zap.String("id", in.ID),
					zap.Error(err),
				)
				rec = e.Empty()
			}
			b.Records[idx] = rec
			b.Errors[idx] = err
		})
	}
	p.Wait()

	l := ledger.New(e.Schema())
	for i, rec := range b.Records {
		if b.Errors[i] == nil {
			l.Process(rec)
		}
	}
	b.Ledger = l

	e.logger.Info("Batch processed",
		zap.Int("documents", len(inputs)),
		zap.Int("failed", b.Failed()),
	)
	return b
}

// extractSafe runs Extract for one input, turning a panic into an error.
func (e *Engine) extractSafe(ctx context.Context, in Input) (rec record.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during extraction: %v", r)
		}
	}()

	if in.Err != nil {
		return record.Record{}, in.Err
	}
	if err := ctx.Err(); err != nil {
		return record.Record{}, err
	}
	return e.Extract(ctx, in.Text)
}
