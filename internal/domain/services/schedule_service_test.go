package services

import (
	"errors"
	"testing"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
)

func strPtr(s string) *string { return &s }

func mondaySchedule(start, end string, grace int) *models.AreaSchedule {
	schedule := &models.AreaSchedule{
		ScheduleType:       models.ScheduleTypeCustom,
		GracePeriodMinutes: grace,
	}
	schedule.SetWindow(time.Monday, models.DayWindow{
		Active: true,
		Start:  strPtr(start),
		End:    strPtr(end),
	})
	return schedule
}

func clockAt(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC) // a Monday
}

func TestValidateSchedule_DefaultPasses(t *testing.T) {
	svc := NewScheduleService()
	if err := svc.ValidateSchedule(svc.DefaultSchedule()); err != nil {
		t.Fatalf("default schedule should validate: %v", err)
	}
}

func TestValidateSchedule_NonePassesEvenWhenMalformed(t *testing.T) {
	svc := NewScheduleService()
	schedule := &models.AreaSchedule{
		ScheduleType:       models.ScheduleTypeNone,
		GracePeriodMinutes: 999,
		MondayActive:       true, // active day without bounds
	}
	if err := svc.ValidateSchedule(schedule); err != nil {
		t.Fatalf("schedules of type none always validate, got %v", err)
	}
}

func TestValidateSchedule_ActiveDayMissingBound(t *testing.T) {
	svc := NewScheduleService()
	schedule := mondaySchedule("08:00", "17:00", 15)
	schedule.MondayEnd = nil

	err := svc.ValidateSchedule(schedule)
	var incomplete *IncompleteDayWindowError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteDayWindowError, got %v", err)
	}
	if incomplete.Day != time.Monday {
		t.Errorf("expected Monday, got %v", incomplete.Day)
	}
}

func TestValidateSchedule_InvertedWindow(t *testing.T) {
	svc := NewScheduleService()
	schedule := mondaySchedule("17:00", "08:00", 15)

	err := svc.ValidateSchedule(schedule)
	var inverted *InvertedWindowError
	if !errors.As(err, &inverted) {
		t.Fatalf("expected InvertedWindowError, got %v", err)
	}
}

func TestValidateSchedule_EqualBoundsRejected(t *testing.T) {
	svc := NewScheduleService()
	schedule := mondaySchedule("08:00", "08:00", 0)

	err := svc.ValidateSchedule(schedule)
	var inverted *InvertedWindowError
	if !errors.As(err, &inverted) {
		t.Fatalf("expected InvertedWindowError for start == end, got %v", err)
	}
}

func TestValidateSchedule_CustomNeedsActiveDay(t *testing.T) {
	svc := NewScheduleService()
	schedule := &models.AreaSchedule{
		ScheduleType:       models.ScheduleTypeCustom,
		GracePeriodMinutes: 10,
	}
	if err := svc.ValidateSchedule(schedule); !errors.Is(err, ErrNoActiveDays) {
		t.Fatalf("expected ErrNoActiveDays, got %v", err)
	}
}

func TestValidateSchedule_GraceBounds(t *testing.T) {
	svc := NewScheduleService()

	for _, grace := range []int{-1, 121} {
		schedule := mondaySchedule("08:00", "17:00", grace)
		if err := svc.ValidateSchedule(schedule); !errors.Is(err, ErrGraceOutOfRange) {
			t.Errorf("grace %d: expected ErrGraceOutOfRange, got %v", grace, err)
		}
	}
	for _, grace := range []int{0, 120} {
		schedule := mondaySchedule("08:00", "17:00", grace)
		if err := svc.ValidateSchedule(schedule); err != nil {
			t.Errorf("grace %d should be accepted, got %v", grace, err)
		}
	}
}

func TestValidateSchedule_MalformedTime(t *testing.T) {
	svc := NewScheduleService()
	schedule := mondaySchedule("8 en punto", "17:00", 0)
	if err := svc.ValidateSchedule(schedule); !errors.Is(err, ErrMalformedTime) {
		t.Fatalf("expected ErrMalformedTime, got %v", err)
	}
}

func TestEvaluateWindow_OnTimeWithinGrace(t *testing.T) {
	svc := NewScheduleService()
	schedule := mondaySchedule("08:00", "17:00", 15)

	cases := []struct {
		hour, minute int
	}{
		{7, 30}, // early
		{8, 0},  // exact start
		{8, 15}, // exact end of grace
	}
	for _, tc := range cases {
		result := svc.EvaluateWindow(schedule, time.Monday, clockAt(tc.hour, tc.minute))
		if result.Status != WindowOnTime {
			t.Errorf("%02d:%02d: expected on_time, got %s", tc.hour, tc.minute, result.Status)
		}
		if result.MinutesLate != 0 {
			t.Errorf("%02d:%02d: on_time should carry zero minutes late", tc.hour, tc.minute)
		}
	}
}

func TestEvaluateWindow_LateCountsFromGraceEnd(t *testing.T) {
	svc := NewScheduleService()
	schedule := mondaySchedule("08:00", "17:00", 15)

	result := svc.EvaluateWindow(schedule, time.Monday, clockAt(8, 16))
	if result.Status != WindowLate {
		t.Fatalf("expected late, got %s", result.Status)
	}
	if result.MinutesLate != 1 {
		t.Errorf("expected 1 minute late, got %d", result.MinutesLate)
	}

	result = svc.EvaluateWindow(schedule, time.Monday, clockAt(9, 0))
	if result.MinutesLate != 45 {
		t.Errorf("expected 45 minutes late, got %d", result.MinutesLate)
	}
}

func TestEvaluateWindow_ClosedAfterEnd(t *testing.T) {
	svc := NewScheduleService()
	schedule := mondaySchedule("08:00", "17:00", 15)

	result := svc.EvaluateWindow(schedule, time.Monday, clockAt(17, 1))
	if result.Status != WindowClosed {
		t.Fatalf("expected closed, got %s", result.Status)
	}
	if result.MinutesLate == 0 {
		t.Error("closed arrivals still report their lateness")
	}
}

func TestEvaluateWindow_InactiveDayIsClosed(t *testing.T) {
	svc := NewScheduleService()
	schedule := mondaySchedule("08:00", "17:00", 15)

	result := svc.EvaluateWindow(schedule, time.Sunday, clockAt(10, 0))
	if result.Status != WindowClosed {
		t.Fatalf("expected closed on inactive day, got %s", result.Status)
	}
}

func TestEvaluateWindow_NoneAlwaysOnTime(t *testing.T) {
	svc := NewScheduleService()
	schedule := &models.AreaSchedule{ScheduleType: models.ScheduleTypeNone}

	result := svc.EvaluateWindow(schedule, time.Sunday, clockAt(3, 0))
	if result.Status != WindowOnTime {
		t.Fatalf("type none never closes, got %s", result.Status)
	}

	result = svc.EvaluateWindow(nil, time.Monday, clockAt(3, 0))
	if result.Status != WindowOnTime {
		t.Fatalf("missing schedule never closes, got %s", result.Status)
	}
}

func TestDefaultSchedule_Shape(t *testing.T) {
	svc := NewScheduleService()
	schedule := svc.DefaultSchedule()

	if schedule.ScheduleType != models.ScheduleTypeDefault {
		t.Errorf("expected default type, got %s", schedule.ScheduleType)
	}
	if schedule.GracePeriodMinutes != 15 {
		t.Errorf("expected 15 minutes of grace, got %d", schedule.GracePeriodMinutes)
	}
	if schedule.ActiveDayCount() != 5 {
		t.Errorf("expected 5 active days, got %d", schedule.ActiveDayCount())
	}
	if schedule.SaturdayActive || schedule.SundayActive {
		t.Error("weekend should be inactive")
	}
	window := schedule.Window(time.Wednesday)
	if *window.Start != "08:00" || *window.End != "17:00" {
		t.Errorf("unexpected window %v-%v", *window.Start, *window.End)
	}
}

func TestTransitionScheduleType_ToNoneDeactivatesDays(t *testing.T) {
	svc := NewScheduleService()
	current := svc.DefaultSchedule()

	next := svc.TransitionScheduleType(models.ScheduleTypeDefault, models.ScheduleTypeNone, current)
	if next.ScheduleType != models.ScheduleTypeNone {
		t.Fatalf("expected type none, got %s", next.ScheduleType)
	}
	if next.GracePeriodMinutes != 0 {
		t.Errorf("expected grace zeroed, got %d", next.GracePeriodMinutes)
	}
	if next.ActiveDayCount() != 0 {
		t.Errorf("expected all days deactivated, got %d active", next.ActiveDayCount())
	}
	// Day bounds are kept even though deactivated
	if next.MondayStart == nil || *next.MondayStart != "08:00" {
		t.Error("day bounds should be preserved through the transition")
	}
}

func TestTransitionScheduleType_DefaultToCustomKeepsWindows(t *testing.T) {
	svc := NewScheduleService()
	current := svc.DefaultSchedule()
	current.SetWindow(time.Monday, models.DayWindow{
		Active: true,
		Start:  strPtr("06:00"),
		End:    strPtr("14:00"),
	})

	next := svc.TransitionScheduleType(models.ScheduleTypeDefault, models.ScheduleTypeCustom, current)
	if next.ScheduleType != models.ScheduleTypeCustom {
		t.Fatalf("expected type custom, got %s", next.ScheduleType)
	}
	window := next.Window(time.Monday)
	if *window.Start != "06:00" {
		t.Errorf("expected Monday window kept, got %s", *window.Start)
	}
}

func TestTransitionScheduleType_NoneToCustomSeedsDefault(t *testing.T) {
	svc := NewScheduleService()

	next := svc.TransitionScheduleType(models.ScheduleTypeNone, models.ScheduleTypeCustom, nil)
	if next.ScheduleType != models.ScheduleTypeCustom {
		t.Fatalf("expected type custom, got %s", next.ScheduleType)
	}
	if next.ActiveDayCount() != 5 {
		t.Errorf("expected default weekday seed, got %d active days", next.ActiveDayCount())
	}
}

func TestTransitionScheduleType_SameTypeKeepsCustomWindows(t *testing.T) {
	svc := NewScheduleService()
	custom := &models.AreaSchedule{
		ScheduleType:       models.ScheduleTypeCustom,
		GracePeriodMinutes: 20,
	}
	custom.SetWindow(time.Tuesday, models.DayWindow{
		Active: true,
		Start:  strPtr("10:00"),
		End:    strPtr("18:00"),
	})

	next := svc.TransitionScheduleType(models.ScheduleTypeCustom, models.ScheduleTypeCustom, custom)
	if next.ScheduleType != models.ScheduleTypeCustom {
		t.Fatalf("expected type custom, got %s", next.ScheduleType)
	}
	window := next.Window(time.Tuesday)
	if window.Start == nil || *window.Start != "10:00" {
		t.Error("Tuesday window should survive a same-type transition")
	}
	if next.Window(time.Monday).Active {
		t.Error("Monday should stay inactive, not be reseeded from the default")
	}
	if next.GracePeriodMinutes != 20 {
		t.Errorf("expected grace kept, got %d", next.GracePeriodMinutes)
	}
}

func TestTransitionScheduleType_BackToDefaultRestores(t *testing.T) {
	svc := NewScheduleService()
	custom := mondaySchedule("06:00", "14:00", 30)

	next := svc.TransitionScheduleType(models.ScheduleTypeCustom, models.ScheduleTypeDefault, custom)
	if next.GracePeriodMinutes != 15 {
		t.Errorf("expected default grace, got %d", next.GracePeriodMinutes)
	}
	window := next.Window(time.Monday)
	if *window.Start != "08:00" {
		t.Errorf("expected default window restored, got %s", *window.Start)
	}
}
