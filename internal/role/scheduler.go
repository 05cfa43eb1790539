package role

import (
	"fmt"
	"sync"
	"time"

	"github.com/sells-group/intake-engine/internal/model"
)

// Business-hour slot starts offered on each weekday.
var slotTimes = []string{"09:00", "10:00", "13:00", "14:00", "15:00"}

// businessDays is how far ahead the simulated calendar extends.
const businessDays = 7

// offeredSlots is how many openings a suggestion presents.
const offeredSlots = 3

// Scheduler is the consultation-scheduling specialization. It runs a
// simulated calendar: weekday business-hour slots over the coming days,
// with booked slots marked taken for the lifetime of the process.
type Scheduler struct {
	now func() time.Time

	mu    sync.Mutex
	taken map[string]bool // "date time" keys
}

// NewScheduler builds the scheduling role. A nil clock uses time.Now.
func NewScheduler(now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		now:   now,
		taken: make(map[string]bool),
	}
}

// Name returns the audit-log identifier for this role.
func (r *Scheduler) Name() string { return "scheduler" }

// SuggestTimes offers the soonest open consultation slots with the routed
// attorney.
func (r *Scheduler) SuggestTimes(attorney string) model.SchedulingSuggestion {
	if attorney == "" {
		attorney = "Intake Coordinator"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var open []model.TimeSlot
	for _, slot := range r.calendar(attorney) {
		if slot.Available {
			open = append(open, slot)
			if len(open) == offeredSlots {
				break
			}
		}
	}

	suggestion := "Our calendar is full at the moment; our team will call you to find a time."
	if len(open) > 0 {
		suggestion = fmt.Sprintf("We'd like to get you on the calendar with %s. The earliest opening is %s at %s.",
			attorney, open[0].Date, open[0].Time)
	}

	return model.SchedulingSuggestion{
		Suggestion: suggestion,
		Slots:      open,
	}
}

// Book confirms a consultation in the chosen slot and marks it taken.
func (r *Scheduler) Book(slot model.TimeSlot, s *model.Session, caseType string) model.Appointment {
	r.mu.Lock()
	r.taken[slotKey(slot.Date, slot.Time)] = true
	r.mu.Unlock()

	return model.Appointment{
		Date:            slot.Date,
		Time:            slot.Time,
		DurationMinutes: 30,
		Type:            "phone",
		Attorney:        slot.Attorney,
		ClientName:      s.ClientInfo["name"],
		ClientPhone:     s.ClientInfo["phone"],
		CaseType:        caseType,
		Status:          "confirmed",
	}
}

// calendar enumerates the next businessDays weekdays of slots in order.
// Caller holds r.mu.
func (r *Scheduler) calendar(attorney string) []model.TimeSlot {
	var slots []model.TimeSlot
	day := r.now()
	days := 0
	for days < businessDays {
		day = day.AddDate(0, 0, 1)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		days++
		date := day.Format("2006-01-02")
		for _, t := range slotTimes {
			slots = append(slots, model.TimeSlot{
				Date:      date,
				Time:      t,
				Attorney:  attorney,
				Available: !r.taken[slotKey(date, t)],
			})
		}
	}
	return slots
}

func slotKey(date, t string) string {
	return date + " " + t
}
