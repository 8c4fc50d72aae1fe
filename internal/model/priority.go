package model

// Priority is a row of the fixed priority catalog.
type Priority struct {
	ID    uint64 `gorm:"primaryKey;autoIncrement"`
	Label string `gorm:"size:32;not null;uniqueIndex:uk_priority_label"`
}

func (Priority) TableName() string {
	return "priority"
}

// DefaultPriorityLabels are inserted, in this order, into an empty catalog.
var DefaultPriorityLabels = []string{"Urgente", "Medio", "Bajo"}
