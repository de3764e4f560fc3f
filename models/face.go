package models

import (
	"attendance/db"
	"image"

	"gorm.io/gorm"
)

// Face is one enrolled face crop. Descriptor holds 128 little-endian float32 values
type Face struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	PersonID   uint64 `gorm:"index"`
	Person     Person `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Path       string `gorm:"type:varchar(500)"` // Path of the crop within the gallery storage
	Descriptor []byte `gorm:"type:blob"`
	RectX1     uint16
	RectY1     uint16
	RectX2     uint16
	RectY2     uint16
}

func (f *Face) SetRectangle(r image.Rectangle) {
	f.RectX1 = uint16(r.Min.X)
	f.RectY1 = uint16(r.Min.Y)
	f.RectX2 = uint16(r.Max.X)
	f.RectY2 = uint16(r.Max.Y)
}

func (f *Face) Rectangle() image.Rectangle {
	return image.Rect(int(f.RectX1), int(f.RectY1), int(f.RectX2), int(f.RectY2))
}

// CreateFace saves face under the named person, creating the person if missing.
// Nothing is saved if either insert fails
func CreateFace(name string, face *Face) (person Person, err error) {
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		p, err := FindOrCreatePerson(tx, name)
		if err != nil {
			return err
		}
		face.PersonID = p.ID
		if err := tx.Create(face).Error; err != nil {
			return err
		}
		person = p
		return nil
	})
	return
}

// AllFaces returns every enrolled face with its Person preloaded
func AllFaces() (result []Face, err error) {
	err = db.Instance.Preload("Person").Order("id").Find(&result).Error
	return
}

func FacesOf(personID uint64) (result []Face, err error) {
	err = db.Instance.Where("person_id = ?", personID).Find(&result).Error
	return
}
