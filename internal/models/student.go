package models

import "time"

type StatusStudent struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Key  string `gorm:"size:50;uniqueIndex;not null" json:"key"`
	Name string `gorm:"size:100;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Student struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	PersonID *uint   `json:"person_id"`
	Person   *Person `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"person,omitempty"`

	StatusStudentID *uint          `json:"status_student_id"`
	StatusStudent   *StatusStudent `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"status_student,omitempty"`

	Notes     []StudentNote     `json:"notes,omitempty"`
	Documents []StudentDocument `json:"documents,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StudentNote struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	TenantID  uint   `json:"tenant_id"`
	StudentID uint   `gorm:"index" json:"student_id"`
	Note      string `gorm:"type:text;not null" json:"note"`
	CreatedBy uint   `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
}

type StudentDocument struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	TenantID  uint   `json:"tenant_id"`
	StudentID uint   `gorm:"index" json:"student_id"`
	FileID    uint   `json:"file_id"`
	File      File   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"file"`
	Type      string `gorm:"size:50" json:"type"`

	CreatedAt time.Time `json:"created_at"`
}
