package compiler

import (
	"context"
	"fmt"
	"time"

	"github.com/jensneuse/abstractlogger"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/wundergraph/graphql-ir-compiler/pkg/ir"
	"github.com/wundergraph/graphql-ir-compiler/pkg/operationreport"
)

// Pass transforms a single document. Implementations must not share mutable state between
// documents because Run calls Transform concurrently. Returning a nil definition removes the
// document from the result.
type Pass interface {
	Name() string
	Transform(compilerContext *Context, document ir.Definition) (ir.Definition, error)
}

type options struct {
	logger      abstractlogger.Logger
	concurrency int
}

type Option func(options *options)

func WithLogger(logger abstractlogger.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithConcurrency limits the number of documents transformed at the same time.
// Values below 1 transform one document at a time.
func WithConcurrency(concurrency int) Option {
	return func(options *options) {
		options.concurrency = concurrency
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:      abstractlogger.NoopLogger,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	return o
}

// Run applies pass to every document of compilerContext. Documents are independent, a failing
// document does not stop the others. All diagnostics are returned as an operationreport.Report,
// ordered like the documents they belong to.
func Run(ctx context.Context, compilerContext *Context, pass Pass, opts ...Option) (*Context, error) {
	o := newOptions(opts)
	documents := compilerContext.Documents()
	results := make([]ir.Definition, len(documents))
	errs := make([]error, len(documents))
	failed := atomic.NewInt64(0)
	start := time.Now()

	group := errgroup.Group{}
	group.SetLimit(o.concurrency)

	for i := range documents {
		i := i
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				failed.Inc()
				return nil
			}
			result, err := transformDocument(compilerContext, pass, documents[i])
			if err != nil {
				errs[i] = err
				failed.Inc()
				o.logger.Error("compiler.Run: document failed",
					abstractlogger.String("pass", pass.Name()),
					abstractlogger.String("document", documents[i].DefinitionName()),
					abstractlogger.Error(err),
				)
				return nil
			}
			results[i] = result
			return nil
		})
	}
	_ = group.Wait()

	o.logger.Debug("compiler.Run: pass finished",
		abstractlogger.String("pass", pass.Name()),
		abstractlogger.Int("documents", len(documents)),
		abstractlogger.Int("failed", int(failed.Load())),
		abstractlogger.String("duration", time.Since(start).String()),
	)

	report := operationreport.Report{}
	for i := range errs {
		if errs[i] != nil {
			report.AddError(errs[i])
		}
	}
	if report.HasErrors() {
		return nil, report
	}

	return compilerContext.withDocuments(results), nil
}

// RunPasses applies passes in order. Each pass sees the documents produced by the previous one.
func RunPasses(ctx context.Context, compilerContext *Context, passes []Pass, opts ...Option) (*Context, error) {
	var err error
	for _, pass := range passes {
		compilerContext, err = Run(ctx, compilerContext, pass, opts...)
		if err != nil {
			return nil, err
		}
	}
	return compilerContext, nil
}

func transformDocument(compilerContext *Context, pass Pass, document ir.Definition) (result ir.Definition, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic while transforming '%s': %v", pass.Name(), document.DefinitionName(), r)
		}
	}()
	return pass.Transform(compilerContext, document)
}
