package report

// Summary condenses the report sections into the counts shown at the foot
// of the terminal report. Derivation is pure: it never queries the system
// and repeated derivation over the same report yields the same summary.
type Summary struct {
	User        UserSummary      `json:"user" yaml:"user"`
	Directories DirectorySummary `json:"directories" yaml:"directories"`
	Services    ServiceSummary   `json:"services" yaml:"services"`
	Sockets     SocketSummary    `json:"sockets" yaml:"sockets"`
	Timers      TimerSummary     `json:"timers" yaml:"timers"`
	Manager     ManagerSummary   `json:"manager" yaml:"manager"`
}

// UserSummary identifies whose manager was inspected. Linger is null when
// the setting could not be determined.
type UserSummary struct {
	Name   string `json:"name" yaml:"name"`
	UID    int    `json:"uid" yaml:"uid"`
	Linger *bool  `json:"linger" yaml:"linger"`
}

// DirectorySummary covers the unit-search paths. TotalUnits sums only
// known counts; unknown (negative) counts are excluded, not zeroed.
type DirectorySummary struct {
	ConfigExists bool `json:"config_exists" yaml:"config_exists"`
	TotalUnits   int  `json:"total_units" yaml:"total_units"`
}

// ServiceSummary counts services by activation state. Failed matches the
// exact state "failed"; Active matches the exact state "active".
type ServiceSummary struct {
	Total  int `json:"total" yaml:"total"`
	Active int `json:"active" yaml:"active"`
	Failed int `json:"failed" yaml:"failed"`
}

// SocketSummary counts sockets by activation state.
type SocketSummary struct {
	Total  int `json:"total" yaml:"total"`
	Active int `json:"active" yaml:"active"`
}

// TimerSummary counts scheduled timers.
type TimerSummary struct {
	Total int `json:"total" yaml:"total"`
}

// ManagerSummary records the manager health classification.
type ManagerSummary struct {
	Running bool `json:"running" yaml:"running"`
}

// BuildSummary derives the summary from an already-captured report.
func BuildSummary(r *Report) Summary {
	s := Summary{
		Timers:  TimerSummary{Total: len(r.Timers)},
		Manager: ManagerSummary{Running: r.ManagerStatus.Running()},
	}

	if r.UserInfo != nil {
		s.User = UserSummary{
			Name:   r.UserInfo.Name,
			UID:    r.UserInfo.UID,
			Linger: r.UserInfo.Linger,
		}
	}

	for _, d := range r.Directories {
		if d.Name == "User Config" {
			s.Directories.ConfigExists = d.Exists
		}
		if d.UnitCount >= 0 {
			s.Directories.TotalUnits += d.UnitCount
		}
	}

	s.Services.Total = len(r.Services)
	for _, u := range r.Services {
		switch u.Active {
		case "active":
			s.Services.Active++
		case "failed":
			s.Services.Failed++
		}
	}

	s.Sockets.Total = len(r.Sockets)
	for _, u := range r.Sockets {
		if u.Active == "active" {
			s.Sockets.Active++
		}
	}

	return s
}
