package availability

import (
	"github.com/jwalitptl/booking-api/internal/model"
)

// eligibleTechnicians keeps technicians qualified for the service: they
// must be active, bookable, and hold every required skill. An empty
// result is "no availability", not an error.
func eligibleTechnicians(technicians []*model.Technician, svc *model.Service) []*model.Technician {
	eligible := make([]*model.Technician, 0, len(technicians))
	for _, t := range technicians {
		if !t.IsActive || !t.CanBeBooked {
			continue
		}
		if !t.HasAllSkills(svc.RequiredSkills) {
			continue
		}
		eligible = append(eligible, t)
	}
	return eligible
}
