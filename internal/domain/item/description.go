package item

import (
	"fmt"
	"strings"
	"time"

	"github.com/flexprice/pricing/internal/types"
)

// DescribeOptions controls date rendering in generated descriptions.
type DescribeOptions struct {
	DateFormat string
	Location   *time.Location
}

const defaultDateFormat = "Jan 2, 2006"

// Describe renders the human readable line text for an item from its
// metadata. It never looks at prices.
func Describe(it Item, opts DescribeOptions) string {
	if it.Meta == nil {
		return it.Description
	}

	var text string
	switch m := it.Meta.(type) {
	case PackageMeta:
		text = joinNonEmpty(" - ", m.PackageName, m.Label)
	case ServiceMeta:
		text = joinNonEmpty(" - ", m.PackageName, m.Label)
	case OptionMeta:
		text = m.OptionName
		if m.Value != "" {
			text = fmt.Sprintf("%s: %s", m.OptionName, m.Value)
		}
		if it.Quantity > 1 {
			text = fmt.Sprintf("%s x %d", text, it.Quantity)
		}
	case SetupMeta:
		text = joinNonEmpty(" - ", m.PackageName, "Setup Fee")
	case CancelMeta:
		text = joinNonEmpty(" - ", m.PackageName, "Cancellation Fee")
	default:
		return it.Description
	}

	l := it.Meta.GetLifecycle()
	switch l.State {
	case types.ItemStateUpdated:
		text = "Updated: " + text
	case types.ItemStateRemoved:
		text = "Removed: " + text
	}

	if span := formatSpan(l, opts); span != "" {
		text = fmt.Sprintf("%s (%s)", text, span)
	}
	if l.Prorated {
		text += " - prorated"
	}
	return text
}

func formatSpan(l Lifecycle, opts DescribeOptions) string {
	if l.StartDate == nil || l.EndDate == nil {
		return ""
	}
	format := opts.DateFormat
	if format == "" {
		format = defaultDateFormat
	}
	start, end := *l.StartDate, *l.EndDate
	if opts.Location != nil {
		start, end = start.In(opts.Location), end.In(opts.Location)
	}
	return fmt.Sprintf("%s - %s", start.Format(format), end.Format(format))
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
