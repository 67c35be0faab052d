package core

import (
	"sort"
	"strings"
	"time"
)

func (s *AppState) handleCycleSortField() RenderAction {
	if s.ViewState.Kind != ViewContainerList {
		return renderNone()
	}
	s.SortState = NewSortState(s.SortState.Field.Next())
	s.forceSortContainers()
	return renderNow()
}

func (s *AppState) handleSetSortField(field SortField) RenderAction {
	if s.ViewState.Kind != ViewContainerList {
		return renderNone()
	}
	if s.SortState.Field == field {
		s.SortState.Direction = s.SortState.Direction.Toggle()
	} else {
		s.SortState = NewSortState(field)
	}
	s.forceSortContainers()
	return renderNow()
}

func (s *AppState) handleToggleShowAll() RenderAction {
	if s.ViewState.Kind != ViewContainerList {
		return renderNone()
	}
	s.ShowAll = !s.ShowAll
	s.forceSortContainers()
	s.clampSelectionAfterFilter()
	return renderNow()
}

// SortContainers rebuilds SortedKeys, honoring SortThrottle unless forced.
func (s *AppState) SortContainers() { s.sortContainersInternal(false) }

// forceSortContainers bypasses the throttle.
func (s *AppState) forceSortContainers() { s.sortContainersInternal(true) }

func (s *AppState) sortContainersInternal(force bool) {
	if !force && time.Since(s.LastSortTime) < SortThrottle {
		return
	}
	s.LastSortTime = time.Now()

	searchFilter := strings.ToLower(s.SearchInput)
	hasSearch := searchFilter != ""

	keys := make([]ContainerKey, 0, len(s.Containers))
	for key, c := range s.Containers {
		if !s.ShowAll && c.State != StateRunning {
			continue
		}
		if hasSearch {
			name := strings.ToLower(c.Name)
			id := strings.ToLower(c.Key.ContainerID)
			host := strings.ToLower(string(c.Key.HostID))
			if !strings.Contains(name, searchFilter) &&
				!strings.Contains(id, searchFilter) &&
				!strings.Contains(host, searchFilter) {
				continue
			}
		}
		keys = append(keys, key)
	}

	// Map iteration order is random; ordering by id first gives ties on the
	// sort field the same relative order on every rebuild.
	sort.Slice(keys, func(i, j int) bool { return keys[i].ContainerID < keys[j].ContainerID })

	direction := s.SortState.Direction
	field := s.SortState.Field

	sort.SliceStable(keys, func(i, j int) bool {
		a := s.Containers[keys[i]]
		b := s.Containers[keys[j]]

		if a.Key.HostID != b.Key.HostID {
			return a.Key.HostID < b.Key.HostID
		}

		less := secondaryLess(field, a, b)
		if direction == Descending {
			// secondaryLess gives ascending order; for descending we need
			// the reverse relation, but equal elements must stay equal
			// (not reversed) to preserve sort stability.
			greater := secondaryLess(field, b, a)
			return greater
		}
		return less
	})

	s.SortedKeys = keys
}

// secondaryLess reports whether a sorts strictly before b on the given
// field, in ascending order, applying each field's missing-value rule.
func secondaryLess(field SortField, a, b *Container) bool {
	switch field {
	case SortUptime:
		switch {
		case a.CreatedAt == nil && b.CreatedAt == nil:
			return false
		case a.CreatedAt == nil:
			return true // None sorts less than any value
		case b.CreatedAt == nil:
			return false
		default:
			return a.CreatedAt.Before(*b.CreatedAt)
		}
	case SortName:
		return a.Name < b.Name
	case SortCPU:
		ac, bc := a.Stats.CPUPercent, b.Stats.CPUPercent
		if isNaN(ac) || isNaN(bc) {
			return false // NaN treated as equal
		}
		return ac < bc
	case SortMemory:
		am, bm := a.Stats.MemoryPercent, b.Stats.MemoryPercent
		if isNaN(am) || isNaN(bm) {
			return false
		}
		return am < bm
	default:
		return false
	}
}

func isNaN(f float64) bool { return f != f }
