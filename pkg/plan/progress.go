package plan

// Count is a raw completed/total tally of sub-goals.
type Count struct {
	Done  int
	Total int
}

// Percent rounds 100*Done/Total half up, or returns 0 when Total is 0.
func (c Count) Percent() int {
	return roundRatio(c.Done, c.Total)
}

func (c Count) add(o Count) Count {
	return Count{Done: c.Done + o.Done, Total: c.Total + o.Total}
}

// MonthCount tallies one month's sub-goals.
func MonthCount(m MonthBlock) Count {
	c := Count{Total: len(m.SubGoals)}
	for _, sg := range m.SubGoals {
		if sg.Completed {
			c.Done++
		}
	}
	return c
}

// QuarterCount tallies every sub-goal in the quarter's months.
func QuarterCount(q QuarterBlock) Count {
	var c Count
	for _, m := range q.Months {
		c = c.add(MonthCount(m))
	}
	return c
}

// GoalCount tallies every sub-goal in the schedule.
func GoalCount(quarters []QuarterBlock) Count {
	var c Count
	for _, q := range quarters {
		c = c.add(QuarterCount(q))
	}
	return c
}

// MonthProgress is the completion percentage of one month.
func MonthProgress(m MonthBlock) int { return MonthCount(m).Percent() }

// QuarterProgress is the completion percentage across a quarter's months.
func QuarterProgress(q QuarterBlock) int { return QuarterCount(q).Percent() }

// GoalProgress is the completion percentage across the whole schedule.
// Counts are summed first and rounded once, never averaged per level.
func GoalProgress(quarters []QuarterBlock) int { return GoalCount(quarters).Percent() }

// roundRatio computes round(100*num/den) with halves rounded up, in integer
// arithmetic so results are exact.
func roundRatio(num, den int) int {
	if den <= 0 || num <= 0 {
		return 0
	}
	return (200*num + den) / (2 * den)
}
