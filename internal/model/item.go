package model

import "time"

type Item struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	PriorityID  uint64    `gorm:"not null;index"`
	Priority    *Priority `gorm:"foreignKey:PriorityID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Item) TableName() string {
	return "items"
}

// ItemView is an item joined with its priority label. It is the only item
// shape handed out of the repository.
type ItemView struct {
	ID            uint64
	Name          string
	Description   string
	PriorityID    uint64
	PriorityLabel string
}
