package ui

import (
	"fmt"

	"github.com/lehigh-university-libraries/dexsearch/internal/models"
	"github.com/lehigh-university-libraries/dexsearch/internal/search"
)

// StatusView is the inline status line under the search box
type StatusView struct {
	Text    string
	IsError bool
}

// StatusFor maps a pipeline status to its message and error flag
func StatusFor(l *Localizer, status search.Status, count int) StatusView {
	switch status {
	case search.StatusNoQuery:
		return StatusView{Text: l.T(MsgNoQuery), IsError: true}
	case search.StatusEmpty:
		return StatusView{Text: l.T(MsgNoMatches), IsError: true}
	case search.StatusSearching:
		return StatusView{Text: l.T(MsgSearching)}
	case search.StatusSuccess:
		if count == 0 {
			return StatusView{Text: l.T(MsgNoMatches), IsError: true}
		}
		return StatusView{Text: l.T(MsgFound, count)}
	case search.StatusError:
		return StatusView{Text: l.T(MsgFailed), IsError: true}
	default:
		return StatusView{}
	}
}

// Card is the clickable summary of one record in the result grid
type Card struct {
	Index     int
	Name      string
	Number    string
	Thumbnail string
}

// CardsFor builds one card per record, in result order
func CardsFor(results []models.Pokemon) []Card {
	cards := make([]Card, 0, len(results))
	for i, p := range results {
		cards = append(cards, Card{
			Index:     i,
			Name:      p.Name,
			Number:    fmt.Sprintf("#%d", p.ID),
			Thumbnail: p.Thumbnail(),
		})
	}
	return cards
}

// StatBlock is one stat as shown in the detail view
type StatBlock struct {
	Name   string
	Base   string
	Effort string
}

// DetailView is the content of the detail dialog for one record
type DetailView struct {
	Name      string
	Thumbnail string
	TypeLines []string
	Stats     []StatBlock
	Physical  string
}

// DetailFor renders one record into the detail dialog content
func DetailFor(l *Localizer, p models.Pokemon) DetailView {
	view := DetailView{
		Name:      p.Name,
		Thumbnail: p.Thumbnail(),
		TypeLines: make([]string, 0, len(p.Types)),
		Stats:     make([]StatBlock, 0, len(p.Stats)),
		Physical:  l.T(MsgHeightWt, p.Height, p.Weight),
	}
	for _, t := range p.Types {
		view.TypeLines = append(view.TypeLines, TypeLine(t))
	}
	for _, s := range p.Stats {
		view.Stats = append(view.Stats, StatBlock{
			Name:   s.Stat.Name,
			Base:   l.T(MsgBase, s.BaseStat),
			Effort: l.T(MsgEffort, s.Effort),
		})
	}
	return view
}

// TypeLine formats one type entry as "Slot <n>: <category>"
func TypeLine(t models.TypeSlot) string {
	return fmt.Sprintf("Slot %d: %s", t.Slot, t.Type.Name)
}
