package models

import "time"

// ScheduleType is the enforcement mode of an area schedule
type ScheduleType string

const (
	// ScheduleTypeDefault enforces the standard business-hours schedule
	ScheduleTypeDefault ScheduleType = "default"
	// ScheduleTypeCustom enforces admin-defined per-day windows
	ScheduleTypeCustom ScheduleType = "custom"
	// ScheduleTypeNone disables time-of-day enforcement entirely. Day
	// window fields may still carry data; they are ignored.
	ScheduleTypeNone ScheduleType = "none"
)

// DayWindow is one weekday's work window. Start and End are "HH:MM"
// strings on the wire, nil when the day is inactive.
type DayWindow struct {
	Active bool
	Start  *string
	End    *string
}

// AreaSchedule is the weekly recurring schedule of an area. One row per
// area, replaced wholesale on every update — there is no partial
// per-day patch contract.
type AreaSchedule struct {
	BaseModel
	AreaID uint `gorm:"uniqueIndex;not null" json:"-"`

	ScheduleType       ScheduleType `gorm:"type:varchar(10);default:'default'" json:"schedule_type"`
	GracePeriodMinutes int          `gorm:"default:0" json:"grace_period_minutes"` // 0..120

	MondayActive bool    `gorm:"default:false" json:"monday_active"`
	MondayStart  *string `gorm:"type:varchar(5)" json:"monday_start"`
	MondayEnd    *string `gorm:"type:varchar(5)" json:"monday_end"`

	TuesdayActive bool    `gorm:"default:false" json:"tuesday_active"`
	TuesdayStart  *string `gorm:"type:varchar(5)" json:"tuesday_start"`
	TuesdayEnd    *string `gorm:"type:varchar(5)" json:"tuesday_end"`

	WednesdayActive bool    `gorm:"default:false" json:"wednesday_active"`
	WednesdayStart  *string `gorm:"type:varchar(5)" json:"wednesday_start"`
	WednesdayEnd    *string `gorm:"type:varchar(5)" json:"wednesday_end"`

	ThursdayActive bool    `gorm:"default:false" json:"thursday_active"`
	ThursdayStart  *string `gorm:"type:varchar(5)" json:"thursday_start"`
	ThursdayEnd    *string `gorm:"type:varchar(5)" json:"thursday_end"`

	FridayActive bool    `gorm:"default:false" json:"friday_active"`
	FridayStart  *string `gorm:"type:varchar(5)" json:"friday_start"`
	FridayEnd    *string `gorm:"type:varchar(5)" json:"friday_end"`

	SaturdayActive bool    `gorm:"default:false" json:"saturday_active"`
	SaturdayStart  *string `gorm:"type:varchar(5)" json:"saturday_start"`
	SaturdayEnd    *string `gorm:"type:varchar(5)" json:"saturday_end"`

	SundayActive bool    `gorm:"default:false" json:"sunday_active"`
	SundayStart  *string `gorm:"type:varchar(5)" json:"sunday_start"`
	SundayEnd    *string `gorm:"type:varchar(5)" json:"sunday_end"`
}

// ScheduleWeekdays lists the weekdays in wire order (Monday first)
var ScheduleWeekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// Window returns the day window for a weekday
func (s *AreaSchedule) Window(day time.Weekday) DayWindow {
	switch day {
	case time.Monday:
		return DayWindow{Active: s.MondayActive, Start: s.MondayStart, End: s.MondayEnd}
	case time.Tuesday:
		return DayWindow{Active: s.TuesdayActive, Start: s.TuesdayStart, End: s.TuesdayEnd}
	case time.Wednesday:
		return DayWindow{Active: s.WednesdayActive, Start: s.WednesdayStart, End: s.WednesdayEnd}
	case time.Thursday:
		return DayWindow{Active: s.ThursdayActive, Start: s.ThursdayStart, End: s.ThursdayEnd}
	case time.Friday:
		return DayWindow{Active: s.FridayActive, Start: s.FridayStart, End: s.FridayEnd}
	case time.Saturday:
		return DayWindow{Active: s.SaturdayActive, Start: s.SaturdayStart, End: s.SaturdayEnd}
	default:
		return DayWindow{Active: s.SundayActive, Start: s.SundayStart, End: s.SundayEnd}
	}
}

// SetWindow assigns the day window for a weekday
func (s *AreaSchedule) SetWindow(day time.Weekday, w DayWindow) {
	switch day {
	case time.Monday:
		s.MondayActive, s.MondayStart, s.MondayEnd = w.Active, w.Start, w.End
	case time.Tuesday:
		s.TuesdayActive, s.TuesdayStart, s.TuesdayEnd = w.Active, w.Start, w.End
	case time.Wednesday:
		s.WednesdayActive, s.WednesdayStart, s.WednesdayEnd = w.Active, w.Start, w.End
	case time.Thursday:
		s.ThursdayActive, s.ThursdayStart, s.ThursdayEnd = w.Active, w.Start, w.End
	case time.Friday:
		s.FridayActive, s.FridayStart, s.FridayEnd = w.Active, w.Start, w.End
	case time.Saturday:
		s.SaturdayActive, s.SaturdayStart, s.SaturdayEnd = w.Active, w.Start, w.End
	case time.Sunday:
		s.SundayActive, s.SundayStart, s.SundayEnd = w.Active, w.Start, w.End
	}
}

// ActiveDayCount returns how many weekdays are active
func (s *AreaSchedule) ActiveDayCount() int {
	count := 0
	for _, day := range ScheduleWeekdays {
		if s.Window(day).Active {
			count++
		}
	}
	return count
}
