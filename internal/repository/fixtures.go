package repository

import (
	"fmt"
	"time"

	"epass-service/internal/model"
)

type fixtureApplicant struct {
	userID, name, email, phone, address string
}

var fixtureApplicants = []fixtureApplicant{
	{"demo-user-1", "Ravi Kumar", "ravi.kumar@example.com", "9876500001", "14 MG Road, Bengaluru"},
	{"demo-user-2", "Priya Sharma", "priya.sharma@example.com", "9876500002", "7 Park Street, Kolkata"},
	{"demo-user-3", "Arjun Mehta", "arjun.mehta@example.com", "9876500003", "22 Marine Drive, Mumbai"},
	{"demo-user-4", "Sneha Iyer", "sneha.iyer@example.com", "9876500004", "3 Anna Salai, Chennai"},
}

var fixtureTrips = []struct {
	destination, purpose string
}{
	{"City Hospital", "Scheduled dialysis session"},
	{"Central Market", "Weekly grocery purchase"},
	{"Old Town", "Visiting hospitalised parent"},
	{"Power Station", "Shift duty at electricity board"},
	{"District Pharmacy", "Collecting prescription medicines"},
	{"Railway Colony", "Attending family funeral"},
}

// FixtureCount is the size of the generated demo collection.
const FixtureCount = 12

// GenerateFixtures builds a deterministic demo collection relative to now:
// pending, approved and rejected passes spread across the active categories.
func GenerateFixtures(now time.Time, categories []model.Category) []model.Pass {
	var active []model.Category
	for _, c := range categories {
		if c.IsActive {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		return []model.Pass{}
	}

	statuses := []model.PassStatus{model.StatusPending, model.StatusApproved, model.StatusRejected}
	passes := make([]model.Pass, 0, FixtureCount)
	for i := 0; i < FixtureCount; i++ {
		applicant := fixtureApplicants[i%len(fixtureApplicants)]
		trip := fixtureTrips[i%len(fixtureTrips)]
		status := statuses[i%len(statuses)]
		applied := now.Add(-time.Duration(FixtureCount-i) * 6 * time.Hour)
		start := now.AddDate(0, 0, i%4)

		p := model.Pass{
			ID:          fmt.Sprintf("demo-pass-%02d", i+1),
			UserID:      applicant.userID,
			CategoryID:  active[i%len(active)].ID,
			FullName:    applicant.name,
			Email:       applicant.email,
			Phone:       applicant.phone,
			Address:     applicant.address,
			Destination: trip.destination,
			Purpose:     trip.purpose,
			StartDate:   start.Format("2006-01-02"),
			EndDate:     start.AddDate(0, 0, i%3).Format("2006-01-02"),
			StartTime:   "08:00",
			EndTime:     "18:00",
			Status:      status,
			AppliedAt:   applied,
			UpdatedAt:   applied,
		}
		if status.Decided() {
			notes := "Documents verified"
			if status == model.StatusRejected {
				notes = "Purpose does not qualify for curfew travel"
			}
			by := "admin"
			p.AdminNotes = &notes
			p.ApprovedBy = &by
			p.UpdatedAt = applied.Add(2 * time.Hour)
		}
		passes = append(passes, p)
	}
	return passes
}
