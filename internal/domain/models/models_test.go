package models

import (
	"testing"
	"time"
)

func TestPagedList(t *testing.T) {
	page := NewPagedList([]int{1, 2, 3}, 7, 1, 3)
	if page.TotalPages != 3 {
		t.Errorf("expected 3 pages for 7 items of size 3, got %d", page.TotalPages)
	}
	if page.Total != 7 || page.Page != 1 || page.PageSize != 3 {
		t.Errorf("unexpected page metadata: %+v", page)
	}

	empty := NewPagedList[int](nil, 0, 1, 10)
	if empty.Results == nil {
		t.Error("results must serialize as an empty list, not null")
	}
	if empty.TotalPages != 0 {
		t.Errorf("expected 0 pages, got %d", empty.TotalPages)
	}
}

func TestAttendanceHoursWorked(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(8*time.Hour + 30*time.Minute)

	record := Attendance{CheckIn: &checkIn}
	if record.IsComplete() {
		t.Error("record without check-out is not complete")
	}
	if record.HoursWorked() != 0 {
		t.Errorf("incomplete record works 0 hours, got %f", record.HoursWorked())
	}

	record.CheckOut = &checkOut
	if !record.IsComplete() {
		t.Error("record with both marks is complete")
	}
	if record.HoursWorked() != 8.5 {
		t.Errorf("expected 8.5 hours, got %f", record.HoursWorked())
	}
}

func TestScheduleWindowRoundTrip(t *testing.T) {
	start, end := "07:00", "15:00"
	var schedule AreaSchedule

	schedule.SetWindow(time.Thursday, DayWindow{Active: true, Start: &start, End: &end})

	window := schedule.Window(time.Thursday)
	if !window.Active || *window.Start != "07:00" || *window.End != "15:00" {
		t.Errorf("window not round-tripped: %+v", window)
	}
	if !schedule.ThursdayActive {
		t.Error("SetWindow should write the day column")
	}
	if schedule.ActiveDayCount() != 1 {
		t.Errorf("expected one active day, got %d", schedule.ActiveDayCount())
	}

	other := schedule.Window(time.Friday)
	if other.Active {
		t.Error("untouched days stay inactive")
	}
}

func TestFaceProfileThreshold(t *testing.T) {
	var nilProfile *FaceProfile
	if nilProfile.Threshold() != DefaultConfidenceThreshold {
		t.Error("nil profile falls back to the default threshold")
	}

	profile := &FaceProfile{ConfidenceThreshold: 0.85}
	if profile.Threshold() != 0.85 {
		t.Errorf("expected 0.85, got %f", profile.Threshold())
	}

	profile.ConfidenceThreshold = 0
	if profile.Threshold() != DefaultConfidenceThreshold {
		t.Error("zero threshold falls back to the default")
	}
}
