package prompt

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Terminal prompts with pterm's interactive widgets.
type Terminal struct{}

func (Terminal) MultiSelect(msg string, options, defaults []string) ([]string, error) {
	selected, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(options).
		WithDefaultOptions(defaults).
		WithFilter(false).
		WithMaxHeight(len(options) + 1).
		Show(msg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	return selected, nil
}

func (Terminal) Select(msg string, options []string, def string) (string, error) {
	p := pterm.DefaultInteractiveSelect.WithOptions(options)
	if def != "" {
		p = p.WithDefaultOption(def)
	}
	choice, err := p.Show(msg)
	if err != nil {
		return "", fmt.Errorf("%s: %w", msg, err)
	}
	return choice, nil
}

func (Terminal) Confirm(msg string, def bool) (bool, error) {
	ok, err := pterm.DefaultInteractiveConfirm.WithDefaultValue(def).Show(msg)
	if err != nil {
		return false, fmt.Errorf("%s: %w", msg, err)
	}
	return ok, nil
}
