package model

import "testing"

func TestIsValidDay(t *testing.T) {
	for _, day := range Days {
		if !IsValidDay(day) {
			t.Errorf("expected %q to be a valid day", day)
		}
	}

	for _, invalid := range []DayOfWeek{"Minggu", "Monday", "", "senin"} {
		if IsValidDay(invalid) {
			t.Errorf("expected %q to be rejected", invalid)
		}
	}
}

func TestIsValidTimeSlot(t *testing.T) {
	for _, slot := range TimeSlots {
		if !IsValidTimeSlot(slot) {
			t.Errorf("expected %q to be a valid time slot", slot)
		}
	}

	for _, invalid := range []string{"07:00-08:40", "17:00 - 18:40", ""} {
		if IsValidTimeSlot(invalid) {
			t.Errorf("expected %q to be rejected", invalid)
		}
	}
}

func TestScheduleItemRosterHelpers(t *testing.T) {
	item := ScheduleItem{LecturerIDs: []int64{3, 7}}

	if !item.HasLecturer(3) || !item.HasLecturer(7) {
		t.Error("expected both roster members to be found")
	}
	if item.HasLecturer(5) {
		t.Error("expected absent lecturer not to be found")
	}
	if item.IsOpenSlot() {
		t.Error("entry with lecturers should not be an open slot")
	}

	empty := ScheduleItem{}
	if !empty.IsOpenSlot() {
		t.Error("entry without lecturers should be an open slot")
	}
}

func TestAppSettingBoolValue(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{" true ", true},
		{"false", false},
		{"", false},
		{"1", false},
	}
	for _, tc := range cases {
		s := AppSetting{Value: tc.value}
		if got := s.BoolValue(); got != tc.want {
			t.Errorf("BoolValue(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
