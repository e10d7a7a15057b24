package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rgonek/lark-block-converter/mdconverter"
)

// linkBaseHook resolves relative link destinations against base. Absolute
// links and pure fragments are left to the converter.
func linkBaseHook(base string) (mdconverter.LinkHook, error) {
	parsedBase, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return nil, fmt.Errorf("invalid link base %q: %w", base, err)
	}
	if !parsedBase.IsAbs() {
		return nil, fmt.Errorf("link base %q must be an absolute URL", base)
	}

	return func(_ context.Context, in mdconverter.LinkInput) (mdconverter.LinkOutput, error) {
		if in.AutoLink || strings.HasPrefix(in.Destination, "#") {
			return mdconverter.LinkOutput{}, nil
		}

		ref, err := url.Parse(in.Destination)
		if err != nil {
			return mdconverter.LinkOutput{}, fmt.Errorf("%w: %v", mdconverter.ErrUnresolved, err)
		}
		if ref.IsAbs() {
			return mdconverter.LinkOutput{}, nil
		}

		return mdconverter.LinkOutput{
			Destination: parsedBase.ResolveReference(ref).String(),
			Handled:     true,
		}, nil
	}, nil
}
