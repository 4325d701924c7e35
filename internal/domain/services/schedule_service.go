package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
)

// Schedule validation errors
var (
	ErrNoActiveDays    = errors.New("el horario personalizado debe tener al menos un día activo")
	ErrGraceOutOfRange = errors.New("la tolerancia debe estar entre 0 y 120 minutos")
	ErrUnknownVariant  = errors.New("tipo de horario no reconocido")
	ErrMalformedTime   = errors.New("hora inválida, se espera formato HH:MM")
)

// IncompleteDayWindowError reports an active day missing a time bound
type IncompleteDayWindowError struct {
	Day time.Weekday
}

func (e *IncompleteDayWindowError) Error() string {
	return fmt.Sprintf("día %s activo pero sin horario completo", e.Day)
}

// InvertedWindowError reports a day whose start is not before its end
type InvertedWindowError struct {
	Day time.Weekday
}

func (e *InvertedWindowError) Error() string {
	return fmt.Sprintf("día %s: la hora de inicio debe ser anterior a la de fin", e.Day)
}

// WindowStatus classifies a clock time against a day window
type WindowStatus string

const (
	WindowOnTime WindowStatus = "on_time"
	WindowLate   WindowStatus = "late"
	WindowClosed WindowStatus = "closed"
)

// WindowResult is the outcome of evaluating a clock time against the
// area schedule. MinutesLate counts from the end of the grace period.
type WindowResult struct {
	Status      WindowStatus `json:"status"`
	MinutesLate int          `json:"minutes_late"`
}

// MaxGracePeriodMinutes bounds the late-arrival tolerance
const MaxGracePeriodMinutes = 120

// InterfaceScheduleService defines the weekly schedule service interface
type InterfaceScheduleService interface {
	ValidateSchedule(schedule *models.AreaSchedule) error
	EvaluateWindow(schedule *models.AreaSchedule, day time.Weekday, clock time.Time) WindowResult
	DefaultSchedule() *models.AreaSchedule
	TransitionScheduleType(oldType, newType models.ScheduleType, current *models.AreaSchedule) *models.AreaSchedule
}

// ScheduleService implements weekly work-schedule validation and window
// evaluation. All methods are pure functions.
type ScheduleService struct{}

// NewScheduleService creates a new schedule service
func NewScheduleService() InterfaceScheduleService {
	return &ScheduleService{}
}

// 1 ValidateSchedule checks the internal consistency of a weekly
// schedule. Schedules of type "none" always pass: their day fields are
// carried but never enforced.
func (s *ScheduleService) ValidateSchedule(schedule *models.AreaSchedule) error {
	if schedule.ScheduleType == models.ScheduleTypeNone {
		return nil
	}
	if schedule.ScheduleType != models.ScheduleTypeDefault && schedule.ScheduleType != models.ScheduleTypeCustom {
		return ErrUnknownVariant
	}

	if schedule.GracePeriodMinutes < 0 || schedule.GracePeriodMinutes > MaxGracePeriodMinutes {
		return ErrGraceOutOfRange
	}

	for _, day := range models.ScheduleWeekdays {
		window := schedule.Window(day)
		if !window.Active {
			continue
		}
		if window.Start == nil || window.End == nil {
			return &IncompleteDayWindowError{Day: day}
		}
		start, err := parseClock(*window.Start)
		if err != nil {
			return err
		}
		end, err := parseClock(*window.End)
		if err != nil {
			return err
		}
		if start >= end {
			return &InvertedWindowError{Day: day}
		}
	}

	if schedule.ScheduleType == models.ScheduleTypeCustom && schedule.ActiveDayCount() == 0 {
		return ErrNoActiveDays
	}

	return nil
}

// 2 EvaluateWindow classifies a clock time against the schedule for the
// given weekday. Arrivals within start plus the grace period are on
// time; arrivals up to the end of the window are late, counted from the
// end of the grace period; everything else is closed.
func (s *ScheduleService) EvaluateWindow(schedule *models.AreaSchedule, day time.Weekday, clock time.Time) WindowResult {
	if schedule == nil || schedule.ScheduleType == models.ScheduleTypeNone {
		return WindowResult{Status: WindowOnTime}
	}

	window := schedule.Window(day)
	if !window.Active || window.Start == nil || window.End == nil {
		return WindowResult{Status: WindowClosed}
	}

	start, err := parseClock(*window.Start)
	if err != nil {
		return WindowResult{Status: WindowClosed}
	}
	end, err := parseClock(*window.End)
	if err != nil {
		return WindowResult{Status: WindowClosed}
	}

	minutes := clock.Hour()*60 + clock.Minute()
	graceEnd := start + schedule.GracePeriodMinutes

	switch {
	case minutes <= graceEnd:
		return WindowResult{Status: WindowOnTime}
	case minutes <= end:
		return WindowResult{Status: WindowLate, MinutesLate: minutes - graceEnd}
	default:
		// Arrival after closing. Whether this blocks the mark is the
		// recorder's policy; the lateness is still measured here.
		return WindowResult{Status: WindowClosed, MinutesLate: minutes - graceEnd}
	}
}

// 3 DefaultSchedule builds the standard business-hours schedule:
// Monday through Friday 08:00-17:00 with 15 minutes of tolerance,
// weekend inactive.
func (s *ScheduleService) DefaultSchedule() *models.AreaSchedule {
	start := "08:00"
	end := "17:00"

	schedule := &models.AreaSchedule{
		ScheduleType:       models.ScheduleTypeDefault,
		GracePeriodMinutes: 15,
	}
	for _, day := range models.ScheduleWeekdays {
		if day == time.Saturday || day == time.Sunday {
			schedule.SetWindow(day, models.DayWindow{Active: false})
			continue
		}
		dayStart, dayEnd := start, end
		schedule.SetWindow(day, models.DayWindow{Active: true, Start: &dayStart, End: &dayEnd})
	}
	return schedule
}

// 4 TransitionScheduleType applies a schedule-type change and returns
// the resulting schedule. The transition table:
//
//	same        -> same     no-op, keep the current schedule
//	none/custom -> default  load the default schedule
//	none        -> custom   seed from the default schedule
//	default     -> custom   keep the current day windows
//	any         -> none     keep day fields, deactivate all days, zero grace
func (s *ScheduleService) TransitionScheduleType(oldType, newType models.ScheduleType, current *models.AreaSchedule) *models.AreaSchedule {
	if oldType == newType && current != nil {
		return current
	}

	switch newType {
	case models.ScheduleTypeDefault:
		return s.DefaultSchedule()

	case models.ScheduleTypeCustom:
		if oldType == models.ScheduleTypeDefault && current != nil {
			next := *current
			next.ScheduleType = models.ScheduleTypeCustom
			return &next
		}
		next := s.DefaultSchedule()
		next.ScheduleType = models.ScheduleTypeCustom
		return next

	case models.ScheduleTypeNone:
		next := &models.AreaSchedule{ScheduleType: models.ScheduleTypeNone}
		if current != nil {
			*next = *current
			next.ScheduleType = models.ScheduleTypeNone
		}
		next.GracePeriodMinutes = 0
		for _, day := range models.ScheduleWeekdays {
			window := next.Window(day)
			window.Active = false
			next.SetWindow(day, window)
		}
		return next

	default:
		if current != nil {
			return current
		}
		return s.DefaultSchedule()
	}
}

// parseClock converts an "HH:MM" string to minutes since midnight
func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, ErrMalformedTime
	}
	return t.Hour()*60 + t.Minute(), nil
}
