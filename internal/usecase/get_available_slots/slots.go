package get_available_slots

import (
	"sort"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

// freeStartTimes возвращает времена начала доступных слотов, не занятые живыми записями
func freeStartTimes(slots []domain.RecurringSlot, occupied []types.TimeString) []domain.AvailableSlot {
	taken := make(map[types.TimeString]struct{}, len(occupied))
	for _, t := range occupied {
		taken[t] = struct{}{}
	}

	seen := make(map[types.TimeString]struct{}, len(slots))
	result := make([]domain.AvailableSlot, 0, len(slots))

	for _, slot := range slots {
		if !slot.IsAvailable {
			continue
		}
		if _, ok := taken[slot.StartTime]; ok {
			continue
		}
		if _, ok := seen[slot.StartTime]; ok {
			continue
		}
		seen[slot.StartTime] = struct{}{}
		result = append(result, domain.AvailableSlot{Time: slot.StartTime})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Time.IsBefore(result[j].Time)
	})

	return result
}
