package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/flavioricotta/Obracontrolia/models"
)

// WeekGroup is one calendar week of spend, newest first in the timeline.
type WeekGroup struct {
	Label    string           `json:"label"`
	Start    string           `json:"start"`
	End      string           `json:"end"`
	Total    float64          `json:"total"`
	Expenses []models.Expense `json:"expenses"`
}

// weekStart returns the Sunday starting the week of d. Weeks run
// Sunday through Saturday, the pt-BR convention the timeline uses.
func weekStart(d time.Time) time.Time {
	offset := int(d.Weekday())
	return time.Date(d.Year(), d.Month(), d.Day()-offset, 0, 0, 0, 0, d.Location())
}

// SpendByWeek groups expenses into calendar weeks labelled "dd/MM a dd/MM",
// newest week first. Expenses with an unparseable date are skipped; the
// gateway guarantees ISO dates, so that is a belt-and-braces path.
func SpendByWeek(expenses []models.Expense) []WeekGroup {
	byStart := map[string]*WeekGroup{}

	for _, e := range expenses {
		d, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			continue
		}
		start := weekStart(d)
		end := start.AddDate(0, 0, 6)
		key := start.Format("2006-01-02")

		group, ok := byStart[key]
		if !ok {
			group = &WeekGroup{
				Label: fmt.Sprintf("%s a %s", start.Format("02/01"), end.Format("02/01")),
				Start: key,
				End:   end.Format("2006-01-02"),
			}
			byStart[key] = group
		}
		group.Total += e.AmountPaid
		group.Expenses = append(group.Expenses, e)
	}

	groups := make([]WeekGroup, 0, len(byStart))
	for _, g := range byStart {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Start > groups[j].Start
	})
	return groups
}
