package model

import "time"

type User struct {
	ID               uint      `gorm:"column:id;primaryKey" json:"id"`
	Name             string    `gorm:"column:name;size:255;not null" json:"name"`
	Email            string    `gorm:"column:email;size:255;uniqueIndex:idx_user_email" json:"email"`
	Role             string    `gorm:"column:role;size:64" json:"role"`
	Skills           []string  `gorm:"column:skills;serializer:json;type:text" json:"skills"`
	AvatarURL        string    `gorm:"column:avatar_url;size:1024" json:"avatar_url"`
	WorkloadCapacity int       `gorm:"column:workload_capacity;default:40" json:"workload_capacity"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserSummary is the reduced projection joined onto tasks and history rows.
type UserSummary struct {
	ID        uint   `gorm:"column:id;primaryKey" json:"id"`
	Name      string `gorm:"column:name" json:"name"`
	Role      string `gorm:"column:role" json:"role,omitempty"`
	AvatarURL string `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
}

func (UserSummary) TableName() string {
	return "users"
}
