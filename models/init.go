package models

import (
	"attendance/db"
	"log"
)

func Init() {
	for _, model := range []any{&Person{}, &Face{}, &Attendance{}} {
		if err := db.Instance.AutoMigrate(model); err != nil {
			log.Printf("Auto-migrate error: %v", err)
		}
	}
}
