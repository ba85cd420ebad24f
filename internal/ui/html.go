package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Labels are the static texts of the page
type Labels struct {
	Title       string
	Placeholder string
	Loading     string
	Types       string
	Stats       string
	Physical    string
	Close       string
	Reload      string
	ErrorTitle  string
	ErrorIntro  string
}

// LabelsFor returns the page labels in the localizer's language
func LabelsFor(l *Localizer) Labels {
	return Labels{
		Title:       l.T(MsgTitle),
		Placeholder: l.T(MsgPlaceholder),
		Loading:     l.T(MsgLoading),
		Types:       l.T(MsgTypes),
		Stats:       l.T(MsgStats),
		Physical:    l.T(MsgPhysical),
		Close:       l.T(MsgClose),
		Reload:      l.T(MsgReload),
		ErrorTitle:  l.T(MsgErrorTitle),
		ErrorIntro:  l.T(MsgErrorIntro),
	}
}

// Page is everything the page template needs
type Page struct {
	Lang          string
	Labels        Labels
	Loading       bool
	StartupFailed bool
	SearchEnabled bool
	State         PageState
}

// LoadingPage is shown until the catalog is ready
func LoadingPage(l *Localizer) Page {
	return Page{
		Lang:    l.Tag().String(),
		Labels:  LabelsFor(l),
		Loading: true,
	}
}

// StartupErrorPage replaces the loading screen when the catalog fetch failed
func StartupErrorPage(l *Localizer, err error) Page {
	return Page{
		Lang:          l.Tag().String(),
		Labels:        LabelsFor(l),
		StartupFailed: true,
		State: PageState{
			Status:       StatusView{Text: l.T(MsgStartupFail), IsError: true},
			ErrorDetails: err.Error(),
			ErrorShown:   true,
		},
	}
}

// SearchPage renders a session once the catalog is ready
func SearchPage(l *Localizer, state PageState) Page {
	return Page{
		Lang:          l.Tag().String(),
		Labels:        LabelsFor(l),
		SearchEnabled: true,
		State:         state,
	}
}

// RenderHTML writes the page as HTML
func RenderHTML(w io.Writer, page Page) error {
	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
