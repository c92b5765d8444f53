package calendar

import (
	"curvelab/internal/domain"
	"fmt"
	"time"
)

// InvalidScheduleError reports a malformed schedule request.
type InvalidScheduleError struct {
	Reason string
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid schedule: %s", e.Reason)
}

// GenerateSchedule rolls coupon dates backward from maturity in steps of freq,
// adjusts each to a business day, and clips the earliest period to start
// (front stub). Deterministic and side-effect free.
func GenerateSchedule(
	start, maturity time.Time,
	freq domain.Frequency,
	cal Calendar,
	roll RollConvention,
) (domain.PaymentSchedule, error) {
	if !maturity.After(start) {
		return nil, &InvalidScheduleError{
			Reason: fmt.Sprintf("maturity %s is not after start %s",
				maturity.Format(dateLayout), start.Format(dateLayout)),
		}
	}
	if freq.Months() <= 0 {
		return nil, &InvalidScheduleError{
			Reason: fmt.Sprintf("non-positive frequency %d", freq.Months()),
		}
	}

	// unadjusted boundaries, maturity first
	boundaries := []time.Time{maturity}
	for i := 1; ; i++ {
		d := maturity.AddDate(0, -freq.Months()*i, 0)
		if !d.After(start) {
			break
		}
		boundaries = append(boundaries, d)
	}
	boundaries = append(boundaries, start)

	// reverse to chronological order
	for i, j := 0, len(boundaries)-1; i < j; i, j = i+1, j-1 {
		boundaries[i], boundaries[j] = boundaries[j], boundaries[i]
	}

	schedule := make(domain.PaymentSchedule, 0, len(boundaries)-1)
	for i := 0; i < len(boundaries)-1; i++ {
		accrualStart := cal.Adjust(boundaries[i], roll)
		accrualEnd := cal.Adjust(boundaries[i+1], roll)
		schedule = append(schedule, domain.SchedulePeriod{
			AccrualStart: accrualStart,
			AccrualEnd:   accrualEnd,
			Payment:      accrualEnd,
		})
	}
	return schedule, nil
}
