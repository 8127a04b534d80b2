// Package forms provides huh-based form components for the TUI.
package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// NewConfirmOverwriteForm asks whether pages already present in dir may be
// overwritten. The result pointer is bound to the confirm field value.
func NewConfirmOverwriteForm(dir string, existing int, overwrite *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overwrite existing pages?").
				Description(fmt.Sprintf("%s already holds %d flipbook page(s).", dir, existing)).
				Affirmative("Yes, overwrite").
				Negative("No, go back").
				Value(overwrite),
		),
	).WithTheme(Theme())
}
