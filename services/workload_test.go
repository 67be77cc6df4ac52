package services

import (
	"math"
	"testing"

	"github.com/simpdb/simpdb-api/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeWorkloadSoloLecturer(t *testing.T) {
	courses := []model.Course{{ID: 1, Credits: 3}}
	schedule := []model.ScheduleItem{
		{ID: 10, CourseID: 1, LecturerIDs: []int64{5}},
	}
	logs := []model.TeachingLog{
		{ScheduleID: 10, LecturerID: 5, Week: 1},
		{ScheduleID: 10, LecturerID: 5, Week: 2},
		{ScheduleID: 10, LecturerID: 5, Week: 3},
		{ScheduleID: 10, LecturerID: 5, Week: 4},
	}

	w := ComputeWorkload(5, schedule, courses, logs)
	if w.ClassCount != 1 {
		t.Fatalf("ClassCount = %d, want 1", w.ClassCount)
	}
	if !almostEqual(w.PlannedSKS, 3) {
		t.Fatalf("PlannedSKS = %f, want 3", w.PlannedSKS)
	}
	// 3 credits * 4 attended weeks / 16
	if !almostEqual(w.RealizedSKS, 0.75) {
		t.Fatalf("RealizedSKS = %f, want 0.75", w.RealizedSKS)
	}
}

func TestComputeWorkloadTeamSplitsPlanned(t *testing.T) {
	courses := []model.Course{{ID: 1, Credits: 4}}
	schedule := []model.ScheduleItem{
		{ID: 10, CourseID: 1, LecturerIDs: []int64{5, 6}},
	}

	w := ComputeWorkload(5, schedule, courses, nil)
	if !almostEqual(w.PlannedSKS, 2) {
		t.Fatalf("PlannedSKS = %f, want 2 (credit split across team)", w.PlannedSKS)
	}
	if !almostEqual(w.RealizedSKS, 0) {
		t.Fatalf("RealizedSKS = %f, want 0 with no logs", w.RealizedSKS)
	}
}

func TestComputeWorkloadIgnoresOtherLecturersLogs(t *testing.T) {
	courses := []model.Course{{ID: 1, Credits: 2}}
	schedule := []model.ScheduleItem{
		{ID: 10, CourseID: 1, LecturerIDs: []int64{5, 6}},
	}
	logs := []model.TeachingLog{
		{ScheduleID: 10, LecturerID: 6, Week: 1},
		{ScheduleID: 10, LecturerID: 6, Week: 2},
		{ScheduleID: 10, LecturerID: 5, Week: 9},
	}

	w := ComputeWorkload(5, schedule, courses, logs)
	if !almostEqual(w.RealizedSKS, 2.0*1.0/16.0) {
		t.Fatalf("RealizedSKS = %f, want %f", w.RealizedSKS, 2.0*1.0/16.0)
	}
}

func TestComputeWorkloadSkipsUnrelatedEntries(t *testing.T) {
	courses := []model.Course{{ID: 1, Credits: 3}, {ID: 2, Credits: 2}}
	schedule := []model.ScheduleItem{
		{ID: 10, CourseID: 1, LecturerIDs: []int64{5}},
		{ID: 11, CourseID: 2, LecturerIDs: []int64{7}},
		{ID: 12, CourseID: 2}, // open slot
	}

	w := ComputeWorkload(5, schedule, courses, nil)
	if w.ClassCount != 1 {
		t.Fatalf("ClassCount = %d, want 1", w.ClassCount)
	}
}

func TestComputeAllWorkloads(t *testing.T) {
	lecturers := []model.Lecturer{{ID: 5}, {ID: 6}}
	courses := []model.Course{{ID: 1, Credits: 4}}
	schedule := []model.ScheduleItem{
		{ID: 10, CourseID: 1, LecturerIDs: []int64{5, 6}},
	}

	all := ComputeAllWorkloads(lecturers, schedule, courses, nil)
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	for _, w := range all {
		if !almostEqual(w.PlannedSKS, 2) {
			t.Fatalf("lecturer %d PlannedSKS = %f, want 2", w.LecturerID, w.PlannedSKS)
		}
	}
}
