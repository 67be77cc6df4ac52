package services

import "github.com/simpdb/simpdb-api/model"

// LecturerWorkload is the SKS recap for one lecturer: planned load from the
// schedule versus realized load from teaching logs.
type LecturerWorkload struct {
	LecturerID  uint    `json:"lecturer_id"`
	ClassCount  int     `json:"class_count"`
	PlannedSKS  float64 `json:"planned_sks"`
	RealizedSKS float64 `json:"realized_sks"`
}

// ComputeWorkload aggregates planned and realized SKS for one lecturer over a
// snapshot of the dataset. Planned SKS splits the course credit evenly across
// the teaching team; realized SKS prorates the credit by attended weeks:
// credits * attended / 16.
func ComputeWorkload(lecturerID uint, schedule []model.ScheduleItem, courses []model.Course, logs []model.TeachingLog) LecturerWorkload {
	creditsByID := make(map[uint]int, len(courses))
	for _, c := range courses {
		creditsByID[c.ID] = c.Credits
	}

	attended := make(map[uint]int) // scheduleID -> weeks taught by this lecturer
	for _, l := range logs {
		if l.LecturerID == lecturerID {
			attended[l.ScheduleID]++
		}
	}

	w := LecturerWorkload{LecturerID: lecturerID}
	for _, item := range schedule {
		if !item.HasLecturer(int64(lecturerID)) {
			continue
		}
		w.ClassCount++

		credits, ok := creditsByID[item.CourseID]
		teamSize := len(item.LecturerIDs)
		if !ok || teamSize == 0 {
			continue
		}

		w.PlannedSKS += float64(credits) / float64(teamSize)
		w.RealizedSKS += float64(credits*attended[item.ID]) / float64(model.WeeksPerTerm)
	}
	return w
}

// ComputeAllWorkloads builds the recap for every lecturer in the snapshot.
func ComputeAllWorkloads(lecturers []model.Lecturer, schedule []model.ScheduleItem, courses []model.Course, logs []model.TeachingLog) []LecturerWorkload {
	out := make([]LecturerWorkload, 0, len(lecturers))
	for _, l := range lecturers {
		out = append(out, ComputeWorkload(l.ID, schedule, courses, logs))
	}
	return out
}
