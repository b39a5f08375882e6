package models

// HealthCheckResponse is the body of the health check route
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// Stats holds the counts shown on the admin dashboard
type Stats struct {
	TotalUsers        int64                `json:"totalUsers"`
	UsersByRole       map[Role]int64       `json:"usersByRole"`
	CasesByStatus     map[CaseStatus]int64 `json:"casesByStatus"`
	ScheduledHearings int64                `json:"scheduledHearings"`
}

// Dashboard holds the counts and upcoming hearings of the cases a user may view
type Dashboard struct {
	Role             Role                 `json:"role"`
	TotalCases       int64                `json:"totalCases"`
	CasesByStatus    map[CaseStatus]int64 `json:"casesByStatus"`
	CaseBacklog      int64                `json:"caseBacklog"` // pending and processing
	HearingsToday    int64                `json:"hearingsToday"`
	UpcomingHearings []Hearing            `json:"upcomingHearings"`
}
