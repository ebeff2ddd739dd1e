package rdb

import "time"

// RunRecord is the RDB persistence model for domain Run.
// Table name: runs
type RunRecord struct {
	ID         string        `gorm:"primaryKey;type:text;not null"`
	Task       string        `gorm:"type:text;not null;index"`
	Host       string        `gorm:"type:text"`
	DryRun     bool          `gorm:"not null"`
	StartedAt  time.Time     `gorm:"not null;index"`
	FinishedAt time.Time     `gorm:"not null"`
	Error      string        `gorm:"type:text"`
	Entries    []EntryRecord `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

func (RunRecord) TableName() string { return "runs" }

// EntryRecord persistence model, one row per report entry.
type EntryRecord struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	RunID    string `gorm:"type:text;not null;index"` // references Run
	Seq      int    `gorm:"not null"`
	Category string `gorm:"type:text;not null"`
	Subject  string `gorm:"type:text"`
	Detail   string `gorm:"type:text"`
}

func (EntryRecord) TableName() string { return "run_entries" }
