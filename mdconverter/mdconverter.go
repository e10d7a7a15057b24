package mdconverter

import (
	"context"

	"github.com/rgonek/lark-block-converter/blocks"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"
)

// Converter converts GFM markdown to a Lark docx block tree.
type Converter struct {
	config Config
	parser goldmark.Markdown
}

type state struct {
	ctx      context.Context
	config   Config
	source   []byte
	builder  *contentBuilder
	logger   *zap.Logger
	warnings []blocks.Warning
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{
		config: cfg,
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}, nil
}

// Convert takes a markdown document and returns its block tree.
func (c *Converter) Convert(markdown string) (Result, error) {
	return c.ConvertWithContext(context.Background(), markdown)
}

// ConvertWithContext is Convert with a context that is handed to hooks.
func (c *Converter) ConvertWithContext(ctx context.Context, markdown string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s := &state{
		ctx:     ctx,
		config:  c.config,
		source:  []byte(markdown),
		builder: newContentBuilder(newIDAllocator(c.config.BlockIDs)),
		logger:  c.config.Logger,
	}

	root := c.parser.Parser().Parse(text.NewReader(s.source))
	if err := s.convertDocument(root); err != nil {
		return Result{}, err
	}

	content := s.builder.content()
	s.logger.Debug("markdown converted",
		zap.Int("topLevel", len(content.ChildrenID)),
		zap.Int("blocks", len(content.Descendants)),
		zap.Int("warnings", len(s.warnings)),
	)

	return Result{
		Content:  content,
		Warnings: s.warnings,
	}, nil
}

func (s *state) addWarning(warnType blocks.WarningType, nodeType, message string) {
	s.logger.Debug("conversion warning",
		zap.String("type", string(warnType)),
		zap.String("node", nodeType),
		zap.String("message", message),
	)
	s.warnings = append(s.warnings, blocks.Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}
