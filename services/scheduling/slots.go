package scheduling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medvault/models"
	"medvault/utils"
)

// GetDoctorAvailability returns either the doctor's raw weekly ranges (no
// date given) or the expanded, occupancy-annotated 30-minute slot listing for
// a concrete date.
func (s *DefaultSchedulingService) GetDoctorAvailability(ctx context.Context, doctorID, date string) ([]models.AvailabilityRange, []models.Slot, error) {
	ranges, err := s.Availability.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if date == "" {
		return ranges, nil, nil
	}

	target, err := ParseDate(date)
	if err != nil {
		return nil, nil, utils.ErrInvalidInput("date must be YYYY-MM-DD")
	}

	weekday := target.Weekday().String()
	filtered := ranges[:0:0]
	for _, r := range ranges {
		if strings.EqualFold(r.Day, weekday) {
			filtered = append(filtered, r)
		}
	}

	dayStart, dayEnd := dayBounds(target)
	appts, err := s.Appointments.ListBlockingOnDay(ctx, doctorID, dayStart, dayEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}

	return nil, buildSlots(filtered, target, date, appts), nil
}

// buildSlots walks each range in 30-minute steps, marks slots whose window
// contains a blocking appointment, and deduplicates by (date, startTime) with
// first occurrence winning. The dedup is a safety net against overlapping
// stored ranges; overlap prevention proper happens at range creation.
func buildSlots(ranges []models.AvailabilityRange, target time.Time, date string, appts []models.Appointment) []models.Slot {
	slots := make([]models.Slot, 0)
	seen := make(map[string]bool)

	for _, r := range ranges {
		start, serr := ToMinutes(r.StartTime)
		end, eerr := ToMinutes(r.EndTime)
		if serr != nil || eerr != nil {
			continue
		}

		for t := start; t < end; t += 30 {
			key := date + "_" + FormatMinutes(t)
			if seen[key] {
				continue
			}
			seen[key] = true

			slot := models.Slot{
				AvailabilityID: r.ID,
				Doctor:         r.Doctor,
				Day:            r.Day,
				StartTime:      FormatMinutes(t),
				EndTime:        FormatMinutes(t + 30),
				Available:      true,
				Date:           date,
			}

			slotStart := atMinutes(target, t)
			slotEnd := atMinutes(target, t+30)
			for _, a := range appts {
				if !a.Date.Before(slotStart) && a.Date.Before(slotEnd) {
					slot.Available = false
					break
				}
			}

			slots = append(slots, slot)
		}
	}
	return slots
}
