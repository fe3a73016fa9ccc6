package scraper

// Selectors pins every locator the extractors touch to one place, since the
// target markup is not under our control and these break together.
type Selectors struct {
	NextJackpot  string
	DrawDateLine string

	DrawDate         string
	DrawNumber       string
	WinningNumbers   string
	AdditionalNumber string
	Group1Cells      string

	OutletDetailsLink string
	OutletContainer   string
	OutletLabel       string
}

// OutletLabelText is the literal heading that marks the Group 1 outlet list
// inside the drill-down page.
const OutletLabelText = "Group 1 winning tickets sold at:"

// DefaultSelectors returns the locator set matching the live results page.
func DefaultSelectors() Selectors {
	return Selectors{
		NextJackpot:  "xpath=//div[normalize-space()='Next Jackpot']/following-sibling::span[1]",
		DrawDateLine: "div.toto-draw-date",

		DrawDate:         ".drawDate",
		DrawNumber:       ".drawNumber",
		WinningNumbers:   ".win1, .win2, .win3, .win4, .win5, .win6",
		AdditionalNumber: ".additional",
		// Second row of the winning-shares table: [label, share amount, winner count].
		Group1Cells: "xpath=(//table[contains(@class,'tableWinningShares')])[1]//tr[2]/td",

		OutletDetailsLink: "xpath=//a[normalize-space()='Winning Ticket Details']",
		OutletContainer:   "div.divWinningOutlets",
		OutletLabel:       "xpath=//div[contains(@class,'divWinningOutlets')]//*[normalize-space()='" + OutletLabelText + "']",
	}
}
