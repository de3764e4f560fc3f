package cmd

import (
	"attendance/attendance"
	"attendance/config"
	"attendance/db"
	"attendance/events"
	"attendance/faces"
	"attendance/models"
	"attendance/ocr"
	"attendance/storage"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// components holds everything a command needs, to be closed when it is done
type components struct {
	service  *attendance.Service
	detector *faces.Detector
	ocr      *ocr.Tesseract
	hub      *events.Hub
	mqtt     *events.MQTTSink
}

func setup(cmd *cobra.Command, withEvents bool) (*components, error) {
	backend, err := faces.ParseBackend(mustGetString(cmd, "detector"))
	if err != nil {
		return nil, err
	}
	metric, err := faces.ParseMetric(mustGetString(cmd, "metric"))
	if err != nil {
		return nil, err
	}
	threshold := mustGetFloat64(cmd, "threshold")

	db.Init(config.MYSQL_DSN, config.SQLITE_FILE)
	models.Init()
	storage.Init()

	c := &components{}
	if c.detector, err = faces.NewDetector(mustGetString(cmd, "models"), uint(config.FACE_TARGET_SIZE)); err != nil {
		return nil, err
	}
	if c.ocr, err = ocr.NewTesseract(config.OCR_LANGUAGE); err != nil {
		c.Close()
		return nil, err
	}
	extractor, err := ocr.NewExtractor(c.ocr, config.IC_PATTERN)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.service = &attendance.Service{
		Detector:  c.detector,
		Reader:    extractor,
		Gallery:   faces.NewGalleryWith(metric, threshold, c.detector.Classifier()),
		Storage:   storage.GetDefaultStorage(),
		Backend:   backend,
		Metric:    metric,
		Threshold: threshold,
	}
	if withEvents {
		var sinks []events.Sink
		if config.MQTT_BROKER != "" {
			if c.mqtt, err = events.NewMQTTSink(config.MQTT_BROKER, config.MQTT_TOPIC); err != nil {
				c.Close()
				return nil, err
			}
			sinks = append(sinks, c.mqtt)
		}
		c.hub = events.NewHub(sinks...)
		c.service.Events = c.hub
	}
	if err = c.service.Reload(); err != nil {
		c.Close()
		return nil, fmt.Errorf("loading gallery: %w", err)
	}
	log.Printf("Ready: detector %s, metric %s, %d face(s) enrolled", backend, metric, c.service.Gallery.Len())
	return c, nil
}

func (c *components) Close() {
	if c.mqtt != nil {
		c.mqtt.Close()
	}
	if c.ocr != nil {
		_ = c.ocr.Close()
	}
	if c.detector != nil {
		c.detector.Close()
	}
}
