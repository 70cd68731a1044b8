package reconcile

// Diff computes the ordered change list between the previous and current
// records of one feed.
//
// Every current record is matched by identity key against the previous
// snapshot. Unmatched records are New; matched records are Modified when
// rules.CompareFields reports differences. When the policy tracks removals,
// previous records whose key is absent from current are Removed.
//
// Ordering: New/Modified in current order, then Removed in previous order.
// The n-th occurrence of a duplicated key is paired with the n-th previous
// occurrence, falling back to the first one, so Diff(s, s) is always empty.
func Diff(rules Rules, previous, current []Record) []Change {
	index := make(map[string][]Record, len(previous))
	for _, rec := range previous {
		key := rec.Key()
		index[key] = append(index[key], rec)
	}

	var changes []Change
	seen := make(map[string]int, len(current))

	for _, rec := range current {
		key := rec.Key()
		occurrence := seen[key]
		seen[key] = occurrence + 1

		candidates, ok := index[key]
		if !ok {
			changes = append(changes, Change{Type: ChangeNew, New: rec})
			continue
		}

		old := candidates[0]
		if occurrence < len(candidates) {
			old = candidates[occurrence]
		}

		if details := rules.CompareFields(old, rec); len(details) > 0 {
			changes = append(changes, Change{
				Type:    ChangeModified,
				Old:     old,
				New:     rec,
				Details: details,
			})
		}
	}

	if !rules.Policy().TrackRemovals {
		return changes
	}

	for _, rec := range previous {
		if _, ok := seen[rec.Key()]; !ok {
			changes = append(changes, Change{Type: ChangeRemoved, Old: rec})
		}
	}

	return changes
}

// NewKeys returns the identity keys of the ChangeNew entries in changes.
func NewKeys(changes []Change) []string {
	var keys []string
	for _, c := range changes {
		if c.Type == ChangeNew {
			keys = append(keys, c.New.Key())
		}
	}
	return keys
}
