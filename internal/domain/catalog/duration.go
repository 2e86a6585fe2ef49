package catalog

// TotalDuration returns the base service duration plus the durations of the
// selected extra services, in minutes. Selected ids with no matching extra are
// silently excluded: an id that no longer resolves means the add-on is not
// currently offered, not a fault.
func TotalDuration(base Service, selected []int64, all []ExtraService) int {
	total := base.DurationMinutes
	for _, extra := range lookup(selected, all) {
		total += extra.DurationMinutes
	}
	return total
}

// TotalPrice sums prices the same way TotalDuration sums durations.
func TotalPrice(base Service, selected []int64, all []ExtraService) float64 {
	total := base.Price
	for _, extra := range lookup(selected, all) {
		total += extra.Price
	}
	return total
}

func lookup(selected []int64, all []ExtraService) []ExtraService {
	byID := make(map[int64]ExtraService, len(all))
	for _, e := range all {
		byID[e.ID] = e
	}

	found := make([]ExtraService, 0, len(selected))
	for _, id := range selected {
		if e, ok := byID[id]; ok {
			found = append(found, e)
		}
	}
	return found
}
