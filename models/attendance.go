package models

import "attendance/db"

const (
	KindVerify   = "verify"
	KindIdentify = "identify"

	maxAttendanceList = 500
)

// Attendance is a single verification or identification outcome
type Attendance struct {
	ID        uint64  `gorm:"primaryKey" json:"id"`
	CreatedAt int64   `gorm:"index" json:"created_at"`
	Kind      string  `gorm:"type:varchar(20)" json:"kind"`
	Name      string  `gorm:"type:varchar(300)" json:"name"` // Recognized person, identification only
	ICNumber  string  `gorm:"type:varchar(100)" json:"ic_number"`
	Verified  bool    `json:"verified"`
	Distance  float64 `json:"distance"`
	Result    string  `gorm:"type:varchar(500)" json:"result"`
}

func (a *Attendance) Create() error {
	return db.Instance.Create(a).Error
}

// RecentAttendance returns the latest records first
func RecentAttendance(limit int) (result []Attendance, err error) {
	if limit <= 0 || limit > maxAttendanceList {
		limit = maxAttendanceList
	}
	result = []Attendance{}
	err = db.Instance.Order("id DESC").Limit(limit).Find(&result).Error
	return
}
