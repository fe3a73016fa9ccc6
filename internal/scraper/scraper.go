// Package scraper pulls typed facts out of the lottery results page. Each
// fact has an explicit normalization and an explicit failure policy: hard
// fail (jackpot), default to zero (winner count), or empty on absence
// (outlet list). Raw strings never leak past their normalizer.
package scraper

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/junwei-lim/toto-telegram-bot/internal/models"
	"github.com/junwei-lim/toto-telegram-bot/internal/util"
)

// ErrElementNotFound means the page loaded but its markup no longer matches
// the locator set. Fatal for the invocation, so the caller can alert.
var ErrElementNotFound = errors.New("expected element not found on page")

const outletLabelTimeout = 5 * time.Second

// Page is the read surface the extractors need from a browser session.
type Page interface {
	Navigate(url string) error
	Text(selector string) (string, error)
	Attribute(selector, name string) (string, error)
	AllTexts(selector string) ([]string, error)
	HTML(selector string) (string, error)
	WaitAttached(selector string, timeout time.Duration) (bool, error)
}

type Scraper struct {
	page       Page
	sel        Selectors
	resultsURL string
}

func New(page Page, resultsURL string) *Scraper {
	return &Scraper{page: page, sel: DefaultSelectors(), resultsURL: resultsURL}
}

// FetchAnnouncement navigates to the results page and reads the pre-draw
// facts: next jackpot and the draw date line.
func (s *Scraper) FetchAnnouncement() (models.DrawAnnouncement, error) {
	var ann models.DrawAnnouncement

	if err := s.page.Navigate(s.resultsURL); err != nil {
		return ann, err
	}

	rawJackpot, err := s.page.Text(s.sel.NextJackpot)
	if err != nil {
		return ann, fmt.Errorf("%w: next jackpot: %v", ErrElementNotFound, err)
	}
	jackpot, err := util.ParseAmount(rawJackpot)
	if err != nil {
		return ann, fmt.Errorf("unparsable jackpot %q: %w", rawJackpot, err)
	}

	rawDateLine, err := s.page.Text(s.sel.DrawDateLine)
	if err != nil {
		return ann, fmt.Errorf("%w: draw date: %v", ErrElementNotFound, err)
	}

	ann.JackpotAmount = jackpot
	ann.DrawDateText = strings.TrimSpace(rawDateLine)
	ann.DrawDatePart, ann.DrawTimePart, ann.DrawTimeSlot = ParseDrawDateLine(ann.DrawDateText)
	return ann, nil
}

// ParseDrawDateLine splits the scraped draw date line on commas and maps the
// time segment to a known draw slot. The date and time are the 2nd and 3rd
// segments; anything that doesn't match a known slot exactly maps to
// SlotUnknown, which suppresses self-scheduling downstream.
func ParseDrawDateLine(raw string) (datePart, timePart string, slot models.DrawTimeSlot) {
	parts := strings.Split(raw, ",")
	if len(parts) > 1 {
		datePart = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		timePart = strings.TrimSpace(parts[2])
	}

	switch timePart {
	case "6.30pm":
		slot = models.SlotEvening630
	case "9.30pm":
		slot = models.SlotEvening930
	default:
		slot = models.SlotUnknown
	}
	return datePart, timePart, slot
}

// FetchLatestResult navigates to the results page and reads the latest draw
// outcome. Group1Outlets is left nil; the drill-down is a separate,
// conditional navigation.
func (s *Scraper) FetchLatestResult() (models.DrawResult, error) {
	var res models.DrawResult

	if err := s.page.Navigate(s.resultsURL); err != nil {
		return res, err
	}

	drawDate, err := s.page.Text(s.sel.DrawDate)
	if err != nil {
		return res, fmt.Errorf("%w: draw date: %v", ErrElementNotFound, err)
	}
	drawNumber, err := s.page.Text(s.sel.DrawNumber)
	if err != nil {
		return res, fmt.Errorf("%w: draw number: %v", ErrElementNotFound, err)
	}

	rawNumbers, err := s.page.AllTexts(s.sel.WinningNumbers)
	if err != nil {
		return res, fmt.Errorf("%w: winning numbers: %v", ErrElementNotFound, err)
	}
	numbers := make([]string, 0, 6)
	for _, n := range rawNumbers {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		numbers = append(numbers, n)
		if len(numbers) == 6 {
			break
		}
	}

	additional, err := s.page.Text(s.sel.AdditionalNumber)
	if err != nil {
		return res, fmt.Errorf("%w: additional number: %v", ErrElementNotFound, err)
	}

	cells, err := s.page.AllTexts(s.sel.Group1Cells)
	if err != nil {
		return res, fmt.Errorf("%w: group 1 row: %v", ErrElementNotFound, err)
	}
	if len(cells) < 3 {
		return res, fmt.Errorf("%w: group 1 row has %d cells, want 3", ErrElementNotFound, len(cells))
	}

	res.DrawDate = strings.TrimSpace(drawDate)
	res.DrawNumber = strings.TrimSpace(drawNumber)
	res.WinningNumbers = numbers
	res.AdditionalNumber = strings.TrimSpace(additional)
	res.Group1ShareAmount = strings.TrimSpace(cells[1])
	res.Group1WinnerCount = util.SafeCount(cells[2])
	return res, nil
}

// FetchGroup1Outlets follows the "Winning Ticket Details" link and reads the
// Group 1 winning outlet list. Only call when the draw had Group 1 winners.
// A missing outlet label after a successful navigation yields an empty list,
// not an error; the page sometimes omits the section.
func (s *Scraper) FetchGroup1Outlets() ([]string, error) {
	href, err := s.page.Attribute(s.sel.OutletDetailsLink, "href")
	if err != nil {
		return nil, fmt.Errorf("%w: winning ticket details link: %v", ErrElementNotFound, err)
	}

	detailsURL, err := s.resolveHref(href)
	if err != nil {
		return nil, err
	}

	if err := s.page.Navigate(detailsURL); err != nil {
		return nil, err
	}

	attached, err := s.page.WaitAttached(s.sel.OutletLabel, outletLabelTimeout)
	if err != nil {
		return nil, err
	}
	if !attached {
		return nil, nil
	}

	html, err := s.page.HTML(s.sel.OutletContainer)
	if err != nil {
		return nil, fmt.Errorf("%w: outlet container: %v", ErrElementNotFound, err)
	}
	return ParseOutletList(html)
}

// resolveHref resolves a possibly relative link against the results page origin.
func (s *Scraper) resolveHref(href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", fmt.Errorf("%w: winning ticket details link has empty href", ErrElementNotFound)
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid details link %q: %w", href, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}

	base, err := url.Parse(s.resultsURL)
	if err != nil {
		return "", fmt.Errorf("invalid results URL %q: %w", s.resultsURL, err)
	}
	return base.ResolveReference(ref).String(), nil
}
