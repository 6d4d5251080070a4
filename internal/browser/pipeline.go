// internal/browser/pipeline.go
// Pipeline glues the stages together: markup to DOM, stylesheet to
// CSSOM, cascade, render tree. It is the one entry point callers need.
package browser

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/quill/internal/cssom"
	"github.com/xkilldash9x/quill/internal/markup"
	"github.com/xkilldash9x/quill/internal/observability"
	"github.com/xkilldash9x/quill/internal/rendertree"
)

// Pipeline runs the full document-to-render-tree conversion. A Pipeline
// is stateless between calls and safe for concurrent use.
type Pipeline struct {
	logger   *zap.Logger
	recovery bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger overrides the process-global logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithRuleRecovery makes malformed stylesheet rules non-fatal; the
// stylesheet parser skips them instead of aborting the render.
func WithRuleRecovery() Option {
	return func(p *Pipeline) { p.recovery = true }
}

func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{logger: observability.GetLogger().Named("pipeline")}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render parses the document, extracts the stylesheet from its first
// style element and returns the render tree. A document without a style
// element renders against an empty stylesheet. The result is nil when
// the document's root itself is pruned.
func (p *Pipeline) Render(document string) (*rendertree.RenderObject, error) {
	dom, err := markup.Parse(document)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	css, ok := dom.ExtractStylesheet()
	if !ok {
		p.logger.Debug("document has no style element, rendering unstyled")
	}
	return p.build(dom, css)
}

// RenderWithStylesheet parses the document and applies an externally
// supplied stylesheet, ignoring any style element in the document.
func (p *Pipeline) RenderWithStylesheet(document, css string) (*rendertree.RenderObject, error) {
	dom, err := markup.Parse(document)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return p.build(dom, css)
}

func (p *Pipeline) build(dom *markup.Node, css string) (*rendertree.RenderObject, error) {
	var opts []cssom.Option
	if p.recovery {
		opts = append(opts, cssom.WithRecovery())
	}
	sheet, err := cssom.Parse(css, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing stylesheet: %w", err)
	}
	p.logger.Debug("stylesheet parsed", zap.Int("rules", len(sheet.Rules)))

	tree := rendertree.Build(dom, sheet)
	if tree == nil {
		p.logger.Warn("document root excluded from render tree")
	}
	return tree, nil
}
