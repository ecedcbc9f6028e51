package agent

import "github.com/Garsondee/Lawn-Sense/internal/game"

// Scripted is a fixed-priority baseline that ignores any genome. It is used
// as a reference opponent for the learning policies in batch reports.
func Scripted(s *game.Snapshot) game.Action {
	if c, ok := s.FirstCollectible(); ok {
		return game.Collect(c.ID)
	}
	sunflowers := s.CountKind(game.UnitSunflower)
	rows := lanesByPressure(s)

	// Two early sunflowers in the back column.
	if s.Wave == 1 && s.Level == 1 && sunflowers < 2 {
		if a, ok := placeFirst(s, game.UnitSunflower, []int{0}, rows); ok {
			return a
		}
	}
	// One peashooter per lane, contested lanes first.
	for _, row := range rows {
		if s.UnitsInLane(row, game.UnitPeashooter) == 0 {
			if a, ok := placeFirst(s, game.UnitPeashooter, []int{2, 3}, []int{row}); ok {
				return a
			}
		}
	}
	// A wallnut in front of every armed lane that is under pressure.
	for _, row := range rows {
		armed := s.RoleInLane(row, game.RoleAttacker) > 0
		if armed && s.UnitsInLane(row, game.UnitWallnut) == 0 && (s.EnemiesInLane(row) > 0 || s.Wave >= 2) {
			if a, ok := placeFirst(s, game.UnitWallnut, []int{4, 5}, []int{row}); ok {
				return a
			}
		}
	}
	if sunflowers < 5 {
		if a, ok := placeFirst(s, game.UnitSunflower, []int{0, 1}, rows); ok {
			return a
		}
	}
	// Second shooter per lane, upgraded to a repeater when affordable.
	for _, row := range rows {
		if s.RoleInLane(row, game.RoleAttacker) < 2 {
			if a, ok := placeFirst(s, game.UnitRepeater, []int{3, 4}, []int{row}); ok && s.EnemiesInLane(row) > 0 {
				return a
			}
			if a, ok := placeFirst(s, game.UnitPeashooter, []int{3, 4}, []int{row}); ok {
				return a
			}
		}
	}
	if s.Wave >= 3 || s.Level > 1 {
		for _, row := range rows {
			if s.UnitsInLane(row, game.UnitWallnut) < 2 {
				if a, ok := placeFirst(s, game.UnitWallnut, []int{5, 6}, []int{row}); ok {
					return a
				}
			}
		}
	}
	if (s.Wave >= 5 || s.Level > 1) && sunflowers < 8 {
		if a, ok := placeFirst(s, game.UnitSunflower, []int{0, 1, 2}, rows); ok {
			return a
		}
	}
	return game.Wait()
}

// lanesByPressure orders rows by live enemy count, busiest first; ties keep
// row order.
func lanesByPressure(s *game.Snapshot) []int {
	rows := make([]int, s.Rows())
	for i := range rows {
		rows[i] = i
	}
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && s.EnemiesInLane(rows[j]) > s.EnemiesInLane(rows[j-1]); j-- {
			rows[j], rows[j-1] = rows[j-1], rows[j]
		}
	}
	return rows
}

// placeFirst returns a placement of kind at the first empty cell scanning
// rows in the given order, then cols.
func placeFirst(s *game.Snapshot, kind game.UnitKind, cols, rows []int) (game.Action, bool) {
	if !s.Affordable(kind) {
		return game.Action{}, false
	}
	for _, row := range rows {
		for _, col := range cols {
			if !s.Occupied(col, row) {
				return game.Place(kind, col, row), true
			}
		}
	}
	return game.Action{}, false
}
