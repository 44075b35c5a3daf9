package services

import "estimatetracker/estimates"

// UnitOptions lists the units offered for line items. Free text is still
// accepted; these are suggestions.
var UnitOptions = []string{
	"hrs",
	"pcs",
	"days",
	"m",
	"m2",
	"m3",
	"sqft",
	"kg",
	"MT",
	"ltr",
	"bag",
	"box",
	"set",
	"lot",
	"lumpsum",
	"trip",
}

// StatusOptions returns the estimate status labels in display order.
func StatusOptions() []string {
	out := make([]string, 0, len(estimates.Statuses))
	for _, s := range estimates.Statuses {
		out = append(out, string(s))
	}
	return out
}

// StatusBadgeClass maps a status label to the badge style used in lists.
func StatusBadgeClass(status string) string {
	switch estimates.Status(status) {
	case estimates.StatusCreated:
		return "badge-info"
	case estimates.StatusProcessing:
		return "badge-primary"
	case "Completed":
		return "badge-success"
	case estimates.StatusRejected:
		return "badge-error"
	case estimates.StatusOnHold:
		return "badge-warning"
	case estimates.StatusInTransit:
		return "badge-secondary"
	default:
		return "badge-ghost"
	}
}
