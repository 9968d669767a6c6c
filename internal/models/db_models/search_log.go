package db_models

// SearchLog records one category query made against the place model.
type SearchLog struct {
	BaseModel
	TraceID     string `gorm:"size:64;index" json:"trace_id"`
	Location    string `gorm:"not null" json:"location"`
	Category    string `gorm:"not null;index" json:"category"`
	ResultCount int    `json:"result_count"`
	Failed      bool   `json:"failed"`
}
