package scheduling

import (
	"context"
	"errors"
	"fmt"

	"medvault/models"
	"medvault/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// validateRangeTimes checks start < end and that the range decomposes into
// whole 30-minute slots. Applied on both create and update.
func validateRangeTimes(startTime, endTime string) error {
	s, err := ToMinutes(startTime)
	if err != nil {
		return utils.ErrInvalidInput("startTime must be a valid HH:MM time")
	}
	e, err := ToMinutes(endTime)
	if err != nil {
		return utils.ErrInvalidInput("endTime must be a valid HH:MM time")
	}
	if s >= e {
		return utils.ErrInvalidInput("startTime must be before endTime")
	}
	if (e-s)%30 != 0 {
		return utils.ErrInvalidInput("Time slot duration must be a multiple of 30 minutes")
	}
	return nil
}

// rangesOverlap reports whether [newStart, newEnd) collides with an existing
// range: new start inside the existing range, new end inside it, or the new
// range fully containing it.
func rangesOverlap(newStart, newEnd, exStart, exEnd int) bool {
	if exStart <= newStart && exEnd > newStart {
		return true
	}
	if exStart < newEnd && exEnd >= newEnd {
		return true
	}
	if exStart >= newStart && exEnd <= newEnd {
		return true
	}
	return false
}

// AddAvailability creates a weekly range after overlap validation against the
// doctor's other ranges on the same day.
func (s *DefaultSchedulingService) AddAvailability(ctx context.Context, doctorID string, req models.CreateAvailabilityRequest) (*models.AvailabilityRange, error) {
	day, ok := CanonicalDay(req.Day)
	if !ok {
		return nil, utils.ErrInvalidInput("day must be a weekday name")
	}
	if err := validateRangeTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	newStart, _ := ToMinutes(req.StartTime)
	newEnd, _ := ToMinutes(req.EndTime)

	existing, err := s.Availability.ListByDoctorAndDay(ctx, doctorID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing availability: %w", err)
	}
	for _, r := range existing {
		exStart, serr := ToMinutes(r.StartTime)
		exEnd, eerr := ToMinutes(r.EndTime)
		if serr != nil || eerr != nil {
			continue
		}
		if rangesOverlap(newStart, newEnd, exStart, exEnd) {
			return nil, utils.ErrConflict("Slot overlaps existing availability")
		}
	}

	now := s.now()
	rng := &models.AvailabilityRange{
		ID:        uuid.New().String(),
		Doctor:    doctorID,
		Day:       day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Availability.Create(ctx, rng); err != nil {
		return nil, fmt.Errorf("failed to create availability: %w", err)
	}
	return rng, nil
}

// UpdateAvailability applies partial field changes to an owned range.
func (s *DefaultSchedulingService) UpdateAvailability(ctx context.Context, rangeID, callerID string, req models.UpdateAvailabilityRequest) (*models.AvailabilityRange, error) {
	rng, err := s.getOwnedRange(ctx, rangeID, callerID)
	if err != nil {
		return nil, err
	}

	if req.Day != "" {
		day, ok := CanonicalDay(req.Day)
		if !ok {
			return nil, utils.ErrInvalidInput("day must be a weekday name")
		}
		rng.Day = day
	}
	if req.StartTime != "" {
		rng.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		rng.EndTime = req.EndTime
	}
	if err := validateRangeTimes(rng.StartTime, rng.EndTime); err != nil {
		return nil, err
	}

	if err := s.Availability.Update(ctx, rng); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}
	return rng, nil
}

// DeleteAvailability removes an owned range. Re-deleting is a no-op after the
// ownership check has resolved.
func (s *DefaultSchedulingService) DeleteAvailability(ctx context.Context, rangeID, callerID string) error {
	if _, err := s.getOwnedRange(ctx, rangeID, callerID); err != nil {
		return err
	}
	if err := s.Availability.Delete(ctx, rangeID); err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	return nil
}

func (s *DefaultSchedulingService) getOwnedRange(ctx context.Context, rangeID, callerID string) (*models.AvailabilityRange, error) {
	rng, err := s.Availability.GetByID(ctx, rangeID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("Availability slot not found")
	}
	if err != nil {
		return nil, err
	}
	if rng.Doctor != callerID {
		return nil, utils.ErrForbidden("Not authorized")
	}
	return rng, nil
}
