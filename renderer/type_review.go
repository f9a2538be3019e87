package renderer

import (
	"fmt"

	"github.com/etnz/dashboard"
)

// Review is the monthly review, with every value already formatted.
type Review struct {
	AsOf     string         `json:"asOf"`
	Horizon  int            `json:"horizon"`
	Sleeves  []SleeveLine   `json:"sleeves"`
	Runway   RunwayLine     `json:"runway"`
	Upcoming []MaturityLine `json:"upcoming"`
	Actions  []string       `json:"actions"`
}

// SleeveLine is a row of the sleeve drift table.
type SleeveLine struct {
	Name   string `json:"name"`
	Actual string `json:"actual"`
	Target string `json:"target"`
	Drift  string `json:"drift"`
	Value  string `json:"value"`
}

// RunwayLine is the runway section. Set is false when no burn is configured.
type RunwayLine struct {
	Set         bool   `json:"set"`
	Burn        string `json:"burn"`
	Sleeve      string `json:"sleeve"`
	SleeveValue string `json:"sleeveValue"`
	Months      string `json:"months"`
}

// MaturityLine is an item of the upcoming maturities list.
type MaturityLine struct {
	Date   string `json:"date"`
	Offset string `json:"offset"`
	Name   string `json:"name"`
	Value  string `json:"value"`
	Sleeve string `json:"sleeve"`
	Type   string `json:"type"`
}

// maxReviewMaturities is the number of maturities listed in the review.
const maxReviewMaturities = 10

// NewReview prepares the review of an overview.
func NewReview(o *dashboard.Overview, actions []string, on dashboard.Date) *Review {
	r := &Review{
		AsOf:     on.String(),
		Horizon:  dashboard.UpcomingHorizon,
		Sleeves:  []SleeveLine{},
		Upcoming: []MaturityLine{},
		Actions:  actions,
	}
	for _, s := range o.Sleeves {
		r.Sleeves = append(r.Sleeves, SleeveLine{
			Name:   s.Name,
			Actual: o.ActualPct[s.Name].String(),
			Target: s.Target.String(),
			Drift:  o.Drift[s.Name].SignedString(),
			Value:  o.Value(s.Name).String(),
		})
	}

	if o.Runway.HasBurn() {
		r.Runway = RunwayLine{
			Set:         true,
			Burn:        dashboard.NZD(o.Runway.Burn()).String(),
			Sleeve:      o.Runway.Sleeve(),
			SleeveValue: o.RunwayValue.String(),
			Months:      RunwayMonths(o),
		}
	}

	upcoming := o.Upcoming
	if len(upcoming) > maxReviewMaturities {
		upcoming = upcoming[:maxReviewMaturities]
	}
	for _, m := range upcoming {
		r.Upcoming = append(r.Upcoming, MaturityLine{
			Date:   m.MaturityDate.String(),
			Offset: fmt.Sprintf("%+dd", m.Days),
			Name:   m.Name,
			Value:  m.Value().String(),
			Sleeve: m.Sleeve,
			Type:   string(m.Type),
		})
	}
	return r
}
