package renderer

import "github.com/etnz/dashboard"

// ReviewMarkdown renders the monthly review of an overview, meant to be
// copied into a journal.
func ReviewMarkdown(o *dashboard.Overview, actions []string, on dashboard.Date) string {
	return RenderReview(NewReview(o, actions, on))
}

// RenderReview renders a Review to markdown.
func RenderReview(r *Review) string {
	partials := map[string]string{
		"review_title":    "review_title.md",
		"review_sleeves":  "review_sleeves.md",
		"review_runway":   "review_runway.md",
		"review_upcoming": "review_upcoming.md",
		"review_actions":  "review_actions.md",
	}
	return renderTemplate("review", "review.md", partials, r)
}
