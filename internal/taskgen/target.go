package taskgen

import "github.com/sitecheckhq/sitecheck/internal/models"

// ResolveTarget picks the asset one occurrence applies to. occurrenceIdx is
// the zero-based index of the occurrence within the current generation run;
// combined with the persisted rotation cursor it keeps round-robin assignment
// fair across runs that only partially consume the lookahead horizon.
//
// A nil result means the task is not scoped to a single asset: either the
// template strategy is "all" (task covers the whole pool) or no asset could
// be resolved at all.
func ResolveTarget(s models.Schedule, tpl *models.CheckTemplate, occurrenceIdx int) *int {
	strategy := ""
	if tpl != nil && tpl.AssignStrategy != nil {
		strategy = *tpl.AssignStrategy
	}
	switch strategy {
	case models.StrategyRotate:
		if len(s.AssetIDs) == 0 {
			// Rotate with an empty pool is a data inconsistency, not an
			// error: fall back to the legacy single asset.
			return s.LegacyAssetID
		}
		id := s.AssetIDs[(s.RotationCursor+occurrenceIdx)%len(s.AssetIDs)]
		return &id
	case models.StrategyAll:
		return nil
	default:
		return s.LegacyAssetID
	}
}

// NextRotationCursor returns the cursor to persist after a generation run so
// the next run continues the round-robin where this one stopped. Pool size
// defaults to 1 when the schedule has no pool, making the cursor a no-op.
func NextRotationCursor(s models.Schedule, tasksCreated int) int {
	size := len(s.AssetIDs)
	if size == 0 {
		size = 1
	}
	return (s.RotationCursor + tasksCreated) % size
}
