// Package config loads process configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration. Values here are process-level
// bootstrap settings; user preferences live in the store and override the
// corresponding fields after first run.
type Config struct {
	Addr      string // listen address for the local UI server
	StaticDir string // directory of UI assets, empty to skip static serving
	DataDir   string // directory for the database and downloaded models
	DBPath    string

	ModelPath      string // seed path of the pose model on first run
	ModelInputSize int    // seed input side of the pose model

	CanvasSize    int // square detector canvas side in pixels
	DisplayWidth  int // display box the UI draws results into
	DisplayHeight int

	ConfidenceThreshold float64 // default keypoint confidence floor
	PresenceThreshold   float64 // default person-presence floor
	ExtendedJoints      bool    // include shoulder and hip angles
	MergePolicy         string  // "best-per-angle" or "best-per-keypoint"

	EnableTray bool // run the system tray icon
	WarmStart  bool // load the model at startup instead of first use
}

// Load reads configuration from the environment after loading an optional
// .env file. Missing variables fall back to defaults.
func Load() Config {
	// A missing .env is the normal case, not an error.
	_ = godotenv.Load()

	dataDir := getEnv("POSECHECK_DATA_DIR", defaultDataDir())

	return Config{
		Addr:      getEnv("POSECHECK_ADDR", ":8790"),
		StaticDir: getEnv("POSECHECK_STATIC_DIR", ""),
		DataDir:   dataDir,
		DBPath:    getEnv("POSECHECK_DB_PATH", filepath.Join(dataDir, "posecheck.db")),

		ModelPath:      getEnv("POSECHECK_MODEL_PATH", filepath.Join(dataDir, "movenet_thunder.onnx")),
		ModelInputSize: getEnvAsInt("POSECHECK_MODEL_INPUT_SIZE", 256),

		CanvasSize:    getEnvAsInt("POSECHECK_CANVAS_SIZE", 512),
		DisplayWidth:  getEnvAsInt("POSECHECK_DISPLAY_WIDTH", 480),
		DisplayHeight: getEnvAsInt("POSECHECK_DISPLAY_HEIGHT", 360),

		ConfidenceThreshold: getEnvAsFloat("POSECHECK_CONFIDENCE_THRESHOLD", 0.3),
		PresenceThreshold:   getEnvAsFloat("POSECHECK_PRESENCE_THRESHOLD", 0.2),
		ExtendedJoints:      getEnvAsBool("POSECHECK_EXTENDED_JOINTS", false),
		MergePolicy:         getEnv("POSECHECK_MERGE_POLICY", "best-per-angle"),

		EnableTray: getEnvAsBool("POSECHECK_TRAY", false),
		WarmStart:  getEnvAsBool("POSECHECK_WARM_START", true),
	}
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".posecheck"
	}
	return filepath.Join(homeDir, ".posecheck")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
