package analytics

import (
	"sort"

	"github.com/pm-tools/project-pulse/pkg/models/domain"
)

// GroupByTask reduces the flat record set into per-task totals, each with a
// per-member split of the task's hours. Lists sort descending by hours; ties
// keep insertion order. Planning lines supply the displayed unit price: the
// first billable line seen for a task wins.
func GroupByTask(records []domain.TimeRecord, planningLines []domain.PlanningLine) []domain.TaskBreakdown {
	type taskAccumulator struct {
		breakdown domain.TaskBreakdown
		members   map[string]*domain.MemberHours
		order     []string
	}

	tasks := make(map[string]*taskAccumulator)
	var taskOrder []string

	for _, record := range records {
		accumulator, ok := tasks[record.TaskCode]
		if !ok {
			accumulator = &taskAccumulator{
				breakdown: domain.TaskBreakdown{
					TaskCode:    record.TaskCode,
					Description: record.Description,
				},
				members: make(map[string]*domain.MemberHours),
			}
			tasks[record.TaskCode] = accumulator
			taskOrder = append(taskOrder, record.TaskCode)
		}

		accumulator.breakdown.Hours += record.Hours
		switch record.State {
		case domain.ApprovalApproved:
			accumulator.breakdown.ApprovedHours += record.Hours
		case domain.ApprovalOpen, domain.ApprovalSubmitted:
			accumulator.breakdown.PendingHours += record.Hours
		}

		member, ok := accumulator.members[record.ResourceID]
		if !ok {
			member = &domain.MemberHours{
				ResourceID:   record.ResourceID,
				ResourceName: record.ResourceName,
			}
			accumulator.members[record.ResourceID] = member
			accumulator.order = append(accumulator.order, record.ResourceID)
		}
		member.Hours += record.Hours
	}

	for _, line := range planningLines {
		if !line.Billable || line.UnitPrice == 0 {
			continue
		}
		if accumulator, ok := tasks[line.TaskCode]; ok && accumulator.breakdown.UnitPrice == 0 {
			accumulator.breakdown.UnitPrice = line.UnitPrice
		}
	}

	result := make([]domain.TaskBreakdown, 0, len(tasks))
	for _, code := range taskOrder {
		accumulator := tasks[code]
		for _, id := range accumulator.order {
			accumulator.breakdown.Members = append(accumulator.breakdown.Members, *accumulator.members[id])
		}
		sort.SliceStable(accumulator.breakdown.Members, func(i, j int) bool {
			return accumulator.breakdown.Members[i].Hours > accumulator.breakdown.Members[j].Hours
		})
		result = append(result, accumulator.breakdown)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Hours > result[j].Hours
	})
	return result
}

// GroupByMember is the transpose of GroupByTask: per-resource totals with a
// per-task split, same state accounting and ordering rules.
func GroupByMember(records []domain.TimeRecord) []domain.MemberBreakdown {
	type memberAccumulator struct {
		breakdown domain.MemberBreakdown
		tasks     map[string]*domain.TaskHours
		order     []string
	}

	members := make(map[string]*memberAccumulator)
	var memberOrder []string

	for _, record := range records {
		accumulator, ok := members[record.ResourceID]
		if !ok {
			accumulator = &memberAccumulator{
				breakdown: domain.MemberBreakdown{
					ResourceID:   record.ResourceID,
					ResourceName: record.ResourceName,
				},
				tasks: make(map[string]*domain.TaskHours),
			}
			members[record.ResourceID] = accumulator
			memberOrder = append(memberOrder, record.ResourceID)
		}

		accumulator.breakdown.Hours += record.Hours
		switch record.State {
		case domain.ApprovalApproved:
			accumulator.breakdown.ApprovedHours += record.Hours
		case domain.ApprovalOpen, domain.ApprovalSubmitted:
			accumulator.breakdown.PendingHours += record.Hours
		}

		task, ok := accumulator.tasks[record.TaskCode]
		if !ok {
			task = &domain.TaskHours{TaskCode: record.TaskCode}
			accumulator.tasks[record.TaskCode] = task
			accumulator.order = append(accumulator.order, record.TaskCode)
		}
		task.Hours += record.Hours
	}

	result := make([]domain.MemberBreakdown, 0, len(members))
	for _, id := range memberOrder {
		accumulator := members[id]
		for _, code := range accumulator.order {
			accumulator.breakdown.Tasks = append(accumulator.breakdown.Tasks, *accumulator.tasks[code])
		}
		sort.SliceStable(accumulator.breakdown.Tasks, func(i, j int) bool {
			return accumulator.breakdown.Tasks[i].Hours > accumulator.breakdown.Tasks[j].Hours
		})
		result = append(result, accumulator.breakdown)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Hours > result[j].Hours
	})
	return result
}
