package calendar

// Japanese national holidays plus the Dec 31 - Jan 3 bank closure, which is
// what matters for TONA fixings and JGB settlement.
var japanHolidays = []string{
	"2022-01-01", "2022-01-02", "2022-01-03", "2022-01-10", "2022-02-11",
	"2022-02-23", "2022-03-21", "2022-04-29", "2022-05-03", "2022-05-04",
	"2022-05-05", "2022-07-18", "2022-08-11", "2022-09-19", "2022-09-23",
	"2022-10-10", "2022-11-03", "2022-11-23", "2022-12-31",

	"2023-01-01", "2023-01-02", "2023-01-03", "2023-01-09", "2023-02-11",
	"2023-02-23", "2023-03-21", "2023-04-29", "2023-05-03", "2023-05-04",
	"2023-05-05", "2023-07-17", "2023-08-11", "2023-09-18", "2023-09-23",
	"2023-10-09", "2023-11-03", "2023-11-23", "2023-12-31",

	"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-08", "2024-02-11",
	"2024-02-12", "2024-02-23", "2024-03-20", "2024-04-29", "2024-05-03",
	"2024-05-04", "2024-05-05", "2024-05-06", "2024-07-15", "2024-08-11",
	"2024-08-12", "2024-09-16", "2024-09-22", "2024-09-23", "2024-10-14",
	"2024-11-03", "2024-11-04", "2024-11-23", "2024-12-31",

	"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-13", "2025-02-11",
	"2025-02-23", "2025-02-24", "2025-03-20", "2025-04-29", "2025-05-03",
	"2025-05-04", "2025-05-05", "2025-05-06", "2025-07-21", "2025-08-11",
	"2025-09-15", "2025-09-23", "2025-10-13", "2025-11-03", "2025-11-23",
	"2025-11-24", "2025-12-31",

	"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-12", "2026-02-11",
	"2026-02-23", "2026-03-20", "2026-04-29", "2026-05-03", "2026-05-04",
	"2026-05-05", "2026-05-06", "2026-07-20", "2026-08-11", "2026-09-21",
	"2026-09-22", "2026-09-23", "2026-10-12", "2026-11-03", "2026-11-23",
	"2026-12-31",
}

// Japan returns the Tokyo business-day calendar.
func Japan() Calendar {
	return New("Japan", japanHolidays)
}
