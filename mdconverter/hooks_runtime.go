package mdconverter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgonek/lark-block-converter/blocks"
	"go.uber.org/zap"
)

func (s *state) applyLinkHook(input LinkInput) (LinkOutput, bool, error) {
	if s.config.LinkHook == nil {
		return LinkOutput{}, false, nil
	}

	if err := s.checkContext(); err != nil {
		return LinkOutput{}, false, err
	}

	output, err := s.config.LinkHook(s.ctx, input)
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			if s.config.ResolutionMode == ResolutionStrict {
				return LinkOutput{}, false, fmt.Errorf("unresolved link destination %q: %w", input.Destination, err)
			}
			s.addWarning(
				blocks.WarningUnresolvedReference,
				"link",
				fmt.Sprintf("unresolved link destination %q; keeping original", input.Destination),
			)
			return LinkOutput{}, false, nil
		}
		return LinkOutput{}, false, fmt.Errorf("link hook failed: %w", err)
	}

	if !output.Handled {
		return LinkOutput{}, false, nil
	}

	output.Destination = strings.TrimSpace(output.Destination)
	if output.Destination == "" {
		return LinkOutput{}, false, errors.New("invalid link hook output: handled link requires non-empty destination")
	}

	s.logger.Debug("link rewritten by hook",
		zap.String("from", input.Destination),
		zap.String("to", output.Destination),
	)

	return output, true, nil
}

// resolveLinkURL runs the link hook, if any, and percent-encodes the result.
func (s *state) resolveLinkURL(input LinkInput) (string, error) {
	destination := input.Destination
	output, handled, err := s.applyLinkHook(input)
	if err != nil {
		return "", err
	}
	if handled {
		destination = output.Destination
	}

	return encodeURL(destination), nil
}

func (s *state) checkContext() error {
	if s.ctx == nil {
		return nil
	}
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("conversion cancelled: %w", err)
	}
	return nil
}
