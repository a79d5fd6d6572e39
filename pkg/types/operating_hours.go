package types

// DayHours describes a single day's opening window. Times are "HH:MM"
// 24-hour strings; Closed wins over the open/close pair.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// OperatingHours always carries all seven days so callers never need
// existence checks on individual entries.
type OperatingHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

// DefaultOperatingHours returns an every-day 11:00-22:00 schedule, the
// seed used for freshly registered tenants.
func DefaultOperatingHours() OperatingHours {
	day := DayHours{Open: "11:00", Close: "22:00"}
	return OperatingHours{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
		Saturday:  day,
		Sunday:    day,
	}
}
