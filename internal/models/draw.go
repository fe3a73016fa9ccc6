package models

// DrawTimeSlot identifies one of the two local times a TOTO drawing happens.
type DrawTimeSlot int

const (
	SlotUnknown DrawTimeSlot = iota
	SlotEvening630
	SlotEvening930
)

func (s DrawTimeSlot) String() string {
	switch s {
	case SlotEvening630:
		return "6.30pm"
	case SlotEvening930:
		return "9.30pm"
	default:
		return "unknown"
	}
}

// DrawAnnouncement is the pre-draw state read from the results page.
type DrawAnnouncement struct {
	// JackpotAmount is the next jackpot normalized by digit-stripping.
	JackpotAmount int64 `validate:"gte=0"`
	// DrawDateText is the full draw date line exactly as scraped,
	// e.g. "Mon, 12 May 2025, 6.30pm".
	DrawDateText string `validate:"required"`
	// DrawDatePart and DrawTimePart are the trimmed 2nd and 3rd
	// comma-delimited segments of DrawDateText. Either may be empty when
	// the page shows an unrecognized format; the literal DrawDateText is
	// what reaches the notification in that case.
	DrawDatePart string
	DrawTimePart string
	DrawTimeSlot DrawTimeSlot
}

// DrawResult is the latest posted draw outcome.
type DrawResult struct {
	// DrawDate is the scraped draw date string, e.g. "Mon, 12 May 2025".
	// It is compared against today's formatted date as-is, never parsed.
	DrawDate   string `validate:"required"`
	DrawNumber string `validate:"required"`
	// WinningNumbers keeps the drawn order, left to right in the source table.
	WinningNumbers   []string `validate:"len=6,dive,required"`
	AdditionalNumber string   `validate:"required"`
	// Group1ShareAmount is rendered verbatim, e.g. "$1,000,000".
	Group1ShareAmount string `validate:"required"`
	Group1WinnerCount int    `validate:"gte=0"`
	// Group1Outlets is only populated by the drill-down navigation and may
	// be empty even when there are winners.
	Group1Outlets []string
}
