package models

import (
	"attendance/db"
	"strings"

	"gorm.io/gorm"
)

type Person struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	Name      string `gorm:"type:varchar(300);uniqueIndex"`
}

// PersonInfo is a Person with the number of enrolled faces
type PersonInfo struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
	Faces     int64  `json:"faces"`
}

// TableName overrides the table name
func (Person) TableName() string {
	return "people"
}

// CleanName restricts the characters of a person's name, as it is also used as a storage path.
// All other characters are replaced with '_' (underscore)
func CleanName(in string) string {
	var name strings.Builder
	for i, c := range strings.TrimSpace(in) {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			(c == '.' && i > 0) || (c == '-') || (c == '_') {

			name.WriteRune(c)
		} else {
			name.WriteString("_")
		}
	}
	return name.String()
}

func (p *Person) BeforeSave(tx *gorm.DB) (err error) {
	p.Name = CleanName(p.Name)
	return
}

// FindOrCreatePerson returns the person with the given (cleaned) name, creating it if missing
func FindOrCreatePerson(tx *gorm.DB, name string) (person Person, err error) {
	person.Name = CleanName(name)
	err = tx.Where("name = ?", person.Name).FirstOrCreate(&person).Error
	return
}

func ListPeople() (result []PersonInfo, err error) {
	result = []PersonInfo{}
	err = db.Instance.
		Table("people").
		Select("people.id, people.name, people.created_at, COUNT(faces.id) AS faces").
		Joins("LEFT JOIN faces ON (faces.person_id = people.id)").
		Group("people.id, people.name, people.created_at").
		Order("people.name").
		Scan(&result).Error
	return
}
