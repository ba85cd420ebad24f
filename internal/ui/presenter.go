package ui

import "github.com/lehigh-university-libraries/dexsearch/internal/models"

// DetailPresenter shows the detail dialog for one record
type DetailPresenter interface {
	Show(p models.Pokemon)
	Hide()
}

// ErrorPresenter shows the error dialog with a failure description
type ErrorPresenter interface {
	Show(details string)
	Hide()
}

var (
	_ DetailPresenter = (*DetailDialog)(nil)
	_ ErrorPresenter  = (*ErrorDialog)(nil)
)

// DetailDialog is the single detail dialog, reused across selections
type DetailDialog struct {
	loc   *Localizer
	view  DetailView
	shown bool
}

func NewDetailDialog(l *Localizer) *DetailDialog {
	return &DetailDialog{loc: l}
}

func (d *DetailDialog) Show(p models.Pokemon) {
	d.view = DetailFor(d.loc, p)
	d.shown = true
}

func (d *DetailDialog) Hide() {
	d.shown = false
}

func (d *DetailDialog) Shown() bool {
	return d.shown
}

func (d *DetailDialog) View() DetailView {
	return d.view
}

// ErrorDialog displays failure text verbatim
type ErrorDialog struct {
	details string
	shown   bool
}

func NewErrorDialog() *ErrorDialog {
	return &ErrorDialog{}
}

func (d *ErrorDialog) Show(details string) {
	d.details = details
	d.shown = true
}

func (d *ErrorDialog) Hide() {
	d.shown = false
}

func (d *ErrorDialog) Shown() bool {
	return d.shown
}

func (d *ErrorDialog) Details() string {
	return d.details
}
