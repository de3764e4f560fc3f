package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS       = "" // e.g. "example.com,example2.com"
	BIND_ADDRESS      = "0.0.0.0:8080"
	DEBUG_MODE        = true
	MYSQL_DSN         = ""              // MySQL will be used if this is set
	SQLITE_FILE       = "attendance.db" // SQLite will be used if MYSQL_DSN is not configured
	MODELS_DIR        = "models-data"   // dlib models: shape_predictor_5_face_landmarks.dat, dlib_face_recognition_resnet_model_v1.dat, mmod_human_face_detector.dat
	GALLERY_DIR       = "gallery"       // Face crops of enrolled people (disk storage)
	S3_BUCKET         = ""              // Gallery is kept in S3 if this is set
	S3_PREFIX         = ""
	S3_REGION         = "us-east-1"
	S3_ENDPOINT       = ""          // For S3 compatible services (MinIO, etc)
	S3_AUTH           = ""          // "key:secret"
	FACE_DETECTOR     = "hog"       // hog or cnn. CNN is much slower, supposedly more accurate at different angles
	FACE_METRIC       = "euclidean" // cosine, euclidean or euclidean_l2
	FACE_THRESHOLD    = 0.0         // Overrides the default threshold of FACE_METRIC when > 0
	FACE_TARGET_SIZE  = 224         // Stored face crops are fitted into a square of this size
	OCR_LANGUAGE      = "eng"
	IC_PATTERN        = `\d{6}-\d{2}-\d{4}`
	MAX_UPLOAD_MB     = 16
	MQTT_BROKER       = "" // e.g. tcp://127.0.0.1:1883. Attendance events are published there if set
	MQTT_TOPIC        = "attendance/events"
	GALLERY_SYNC_SECS = 0 // Reload the gallery from the DB periodically (useful when several instances share MySQL)
)

func init() {
	// .env file is optional
	_ = godotenv.Load()
	Load()
}

// Load reads all the settings from the environment, keeping the current value for unset ones
func Load() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("MODELS_DIR", &MODELS_DIR)
	readEnvString("GALLERY_DIR", &GALLERY_DIR)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_AUTH", &S3_AUTH)
	readEnvString("FACE_DETECTOR", &FACE_DETECTOR)
	readEnvString("FACE_METRIC", &FACE_METRIC)
	readEnvFloat("FACE_THRESHOLD", &FACE_THRESHOLD)
	readEnvInt("FACE_TARGET_SIZE", &FACE_TARGET_SIZE)
	readEnvString("OCR_LANGUAGE", &OCR_LANGUAGE)
	readEnvString("IC_PATTERN", &IC_PATTERN)
	readEnvInt("MAX_UPLOAD_MB", &MAX_UPLOAD_MB)
	readEnvString("MQTT_BROKER", &MQTT_BROKER)
	readEnvString("MQTT_TOPIC", &MQTT_TOPIC)
	readEnvInt("GALLERY_SYNC_SECS", &GALLERY_SYNC_SECS)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvFloat(name string, value *float64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return
	}
	*value = f
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
