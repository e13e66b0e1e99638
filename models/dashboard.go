// path: models/dashboard.go
package models

type StatusCount struct {
	Status ConservationStatus `json:"status"`
	Count  int                `json:"count"`
}

type MethodTypeCount struct {
	Type  MethodType `json:"type"`
	Count int        `json:"count"`
}

// MonthlyCount is keyed "<year>-<month>" with an unpadded month.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type DashboardStats struct {
	TotalSpecies        int               `json:"totalSpecies"`
	TotalMethods        int               `json:"totalMethods"`
	TotalLocations      int               `json:"totalLocations"`
	TotalMonitoringData int               `json:"totalMonitoringData"`
	RecentData          []*Observation    `json:"recentData"`
	SpeciesByStatus     []StatusCount     `json:"speciesByStatus"`
	MethodsByType       []MethodTypeCount `json:"methodsByType"`
	DataByMonth         []MonthlyCount    `json:"dataByMonth"`
}
