package service

import (
	"sort"
	"time"

	"github.com/noah-isme/student-records-api/internal/models"
)

const (
	topLocationLimit   = 5
	recentAdditionDays = 30
)

// ComputeStudentStatistics summarises students as of now. GPA aggregates only
// consider students with a GPA above 0; the GPA bands count every student.
func ComputeStudentStatistics(students []models.Student, now time.Time) models.StudentStatistics {
	stats := models.StudentStatistics{
		TotalStudents:              len(students),
		GraduationYearDistribution: []models.YearCount{},
		TopStates:                  []models.StateCount{},
		TopCities:                  []models.CityCount{},
	}
	if len(students) == 0 {
		return stats
	}

	currentYear := now.Year()
	recentCutoff := now.AddDate(0, 0, -recentAdditionDays)

	var gpaSum float64
	var gpaCount int
	years := map[int]int{}
	states := newOrderedCounter()
	cities := newOrderedCounter()

	for _, s := range students {
		if s.GPA > 0 {
			if gpaCount == 0 || s.GPA > stats.HighestGPA {
				stats.HighestGPA = s.GPA
			}
			if gpaCount == 0 || s.GPA < stats.LowestGPA {
				stats.LowestGPA = s.GPA
			}
			gpaSum += s.GPA
			gpaCount++
		}

		years[s.GraduationYear]++
		if s.State != nil {
			states.add(*s.State)
		}
		if s.City != nil {
			cities.add(*s.City)
		}

		if !s.CreatedAt.Before(recentCutoff) {
			stats.RecentAdditions++
		}

		switch {
		case s.GPA >= 3.5:
			stats.GPADistribution.Excellent++
		case s.GPA >= 3.0:
			stats.GPADistribution.Good++
		case s.GPA >= 2.5:
			stats.GPADistribution.Satisfactory++
		default:
			stats.GPADistribution.NeedsImprovement++
		}

		if s.GraduationYear == currentYear || s.GraduationYear == currentYear+1 {
			stats.UpcomingGraduations++
		}
	}

	if gpaCount > 0 {
		stats.AverageGPA = gpaSum / float64(gpaCount)
	}

	for year, count := range years {
		stats.GraduationYearDistribution = append(stats.GraduationYearDistribution, models.YearCount{Year: year, Count: count})
	}
	sort.Slice(stats.GraduationYearDistribution, func(i, j int) bool {
		return stats.GraduationYearDistribution[i].Year < stats.GraduationYearDistribution[j].Year
	})

	for _, e := range states.top(topLocationLimit) {
		stats.TopStates = append(stats.TopStates, models.StateCount{State: e.key, Count: e.count})
	}
	for _, e := range cities.top(topLocationLimit) {
		stats.TopCities = append(stats.TopCities, models.CityCount{City: e.key, Count: e.count})
	}

	return stats
}

type countEntry struct {
	key   string
	count int
}

// orderedCounter counts non-empty keys and remembers first-seen order so ties
// keep encounter order after a stable sort.
type orderedCounter struct {
	index   map[string]int
	entries []countEntry
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{index: map[string]int{}}
}

func (c *orderedCounter) add(key string) {
	if key == "" {
		return
	}
	if i, ok := c.index[key]; ok {
		c.entries[i].count++
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, countEntry{key: key, count: 1})
}

func (c *orderedCounter) top(n int) []countEntry {
	sorted := append([]countEntry(nil), c.entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].count > sorted[j].count })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
