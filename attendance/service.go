package attendance

import (
	"attendance/db"
	"attendance/events"
	"attendance/faces"
	"attendance/models"
	"attendance/storage"
	"attendance/utils"
	"bytes"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

const cropQuality = 90

var ErrEmptyName = errors.New("empty name")

type FaceDetector interface {
	Detect(img []byte, backend faces.Backend) (faces.Detection, error)
}

type ICReader interface {
	FindIC(img []byte) (string, bool, error)
}

type Publisher interface {
	Publish(eventType string, data any)
}

// Service runs the verification, identification and enrollment flows
type Service struct {
	Detector FaceDetector
	Reader   ICReader
	Gallery  *faces.Gallery
	Storage  storage.StorageAPI
	Events   Publisher // optional
	Backend  faces.Backend
	Metric   faces.Metric
	// Threshold for 1:1 verification, <= 0 means the metric's default
	Threshold float64

	// Serializes gallery changes (Enroll, Forget) with Reload
	lock sync.Mutex
}

// Verify checks that the person in img is the owner of the ID card they hold,
// then reads the ID number from the card
func (s *Service) Verify(img []byte) (result Result, err error) {
	result.Kind = models.KindVerify
	detection, err := s.Detector.Detect(img, s.Backend)
	if err != nil {
		return result, err
	}
	result.FaceCount = len(detection.Faces)
	user, card, ok := faces.PickPair(detection.Faces)
	if !ok {
		result.Message = NotEnoughFaces
		return result, s.record(&result)
	}
	verification := faces.Verify(user.Descriptor, card.Descriptor, s.Metric, s.Threshold)
	result.Verified = verification.Verified
	result.Distance = verification.Distance
	if !verification.Verified {
		result.Message = DifferentUser
		return result, s.record(&result)
	}
	ic, icOK, err := s.Reader.FindIC(detection.JPEG)
	if err != nil {
		return result, err
	}
	if icOK {
		result.ICNumber = ic
		result.Message = icFound(ic)
	} else {
		result.Message = ICNotDetected
	}
	return result, s.record(&result)
}

// Identify looks the person up in the gallery and reads the ID number if they are known
func (s *Service) Identify(img []byte) (result Result, err error) {
	result.Kind = models.KindIdentify
	detection, err := s.Detector.Detect(img, s.Backend)
	if err != nil {
		return result, err
	}
	result.FaceCount = len(detection.Faces)
	person, ok := faces.Widest(detection.Faces)
	if !ok {
		result.Message = Unknown
		return result, s.record(&result)
	}
	match, ok := s.Gallery.Find(person.Descriptor)
	if !ok {
		result.Message = Unknown
		return result, s.record(&result)
	}
	result.Name = match.Label
	result.Verified = true
	result.Distance = match.Distance
	ic, icOK, err := s.Reader.FindIC(detection.JPEG)
	if err != nil {
		return result, err
	}
	if icOK {
		result.ICNumber = ic
	}
	result.Message = userWithIC(match.Label, result.ICNumber)
	return result, s.record(&result)
}

// Enroll saves the widest face of img into the gallery under name
func (s *Service) Enroll(name string, img []byte) (result Result, err error) {
	name = models.CleanName(name)
	if name == "" {
		return result, ErrEmptyName
	}
	detection, err := s.Detector.Detect(img, s.Backend)
	if err != nil {
		return result, err
	}
	result.FaceCount = len(detection.Faces)
	f, ok := faces.Widest(detection.Faces)
	if !ok {
		result.Message = NoFace
		return result, nil
	}
	crop, err := utils.EncodeJPEG(f.Crop, cropQuality)
	if err != nil {
		return result, fmt.Errorf("encoding crop: %w", err)
	}
	// The crop goes first, a person is only created together with their face
	path := name + "/" + uuid.New().String() + ".jpg"
	if _, err = s.Storage.Save(path, bytes.NewReader(crop)); err != nil {
		return result, fmt.Errorf("saving crop %s: %w", path, err)
	}
	desc := [128]float32(f.Descriptor)
	faceRow := models.Face{
		Path:       path,
		Descriptor: utils.Float32ArrayToByteArray(desc[:]),
	}
	faceRow.SetRectangle(f.Rectangle)

	s.lock.Lock()
	defer s.lock.Unlock()
	person, err := models.CreateFace(name, &faceRow)
	if err != nil {
		_ = s.Storage.Delete(path)
		return result, fmt.Errorf("saving face: %w", err)
	}
	s.Gallery.Add(faces.Sample{FaceID: faceRow.ID, Label: person.Name, Descriptor: f.Descriptor})
	log.Printf("Enrolled face %d of %s (%s)", faceRow.ID, person.Name, path)

	result.Name = person.Name
	result.Message = enrolled(person.Name)
	return result, nil
}

// Reload rebuilds the gallery from the database
func (s *Service) Reload() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	start := time.Now()
	rows, err := models.AllFaces()
	if err != nil {
		return fmt.Errorf("loading faces: %w", err)
	}
	samples := make([]faces.Sample, 0, len(rows))
	for _, row := range rows {
		values := utils.ByteArrayToFloat32Array(row.Descriptor)
		if len(values) != faces.DescriptorSize {
			log.Printf("Face %d has an invalid descriptor (%d values), skipping", row.ID, len(values))
			continue
		}
		sample := faces.Sample{FaceID: row.ID, Label: row.Person.Name}
		copy(sample.Descriptor[:], values)
		samples = append(samples, sample)
	}
	s.Gallery.Set(samples)
	log.Printf("Gallery reloaded: %d face(s) in %v", len(samples), time.Since(start))
	return nil
}

// StartSync reloads the gallery every interval, forever
func (s *Service) StartSync(interval time.Duration) {
	for {
		time.Sleep(interval)
		if err := s.Reload(); err != nil {
			log.Printf("Gallery sync error: %v", err)
		}
	}
}

// Forget removes a person, their faces and stored crops. Returns false if name is not enrolled
func (s *Service) Forget(name string) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	person := models.Person{}
	if err := db.Instance.Where("name = ?", models.CleanName(name)).Limit(1).Find(&person).Error; err != nil {
		return false, err
	}
	if person.ID == 0 {
		return false, nil
	}
	rows, err := models.FacesOf(person.ID)
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		if err := s.Storage.Delete(row.Path); err != nil {
			log.Printf("Cannot delete crop %s: %v", row.Path, err)
		}
	}
	if err = db.Instance.Where("person_id = ?", person.ID).Delete(&models.Face{}).Error; err != nil {
		return false, err
	}
	if err = db.Instance.Delete(&person).Error; err != nil {
		return false, err
	}
	removed := s.Gallery.Remove(person.Name)
	log.Printf("Forgot %s: %d face(s)", person.Name, removed)
	return true, nil
}

func (s *Service) record(result *Result) error {
	record := models.Attendance{
		Kind:     result.Kind,
		Name:     result.Name,
		ICNumber: result.ICNumber,
		Verified: result.Verified,
		Distance: result.Distance,
		Result:   result.Message,
	}
	if err := record.Create(); err != nil {
		return fmt.Errorf("saving attendance: %w", err)
	}
	if s.Events != nil {
		s.Events.Publish(events.TypeAttendance, record)
	}
	return nil
}
