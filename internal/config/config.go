package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// HSV is a lower or upper bound in OpenCV's HSV space (H 0-179, S and V 0-255).
type HSV [3]float64

type Config struct {
	Camera          string // Indeks urządzenia ("0") albo ścieżka do pliku wideo
	OutputDirectory string
	LogDirectory    string
	WindowTitle     string
	BoxSize         int     // Bok kwadratu ROI w pikselach
	AreaThreshold   float64 // Kontur musi mieć pole większe niż ta wartość
	LowerColor      HSV
	UpperColor      HSV
	CaptureInterval time.Duration // Minimalny odstęp między zapisanymi zdjęciami
	Headless        bool
	StatusAddr      string // Pusty = serwer statusu wyłączony
}

var (
	DefaultLowerColor = HSV{40, 50, 50}
	DefaultUpperColor = HSV{80, 255, 255}
)

// Load reads an optional .env file and builds the configuration from the environment.
func Load() *Config {
	// .env jest opcjonalny
	_ = godotenv.Load()

	return &Config{
		Camera:          getEnv("CAMERA", "0"),
		OutputDirectory: getEnv("OUTPUT_DIR", filepath.Join("public", "captured_images")),
		LogDirectory:    getEnv("LOG_DIR", filepath.Join(".", "logs")),
		WindowTitle:     getEnv("WINDOW_TITLE", `Webcam - Press "q" to quit`),
		BoxSize:         getEnvAsInt("BOX_SIZE", 200),
		AreaThreshold:   float64(getEnvAsInt("AREA_THRESHOLD", 500)),
		LowerColor:      getEnvAsHSV("HSV_LOWER", DefaultLowerColor),
		UpperColor:      getEnvAsHSV("HSV_UPPER", DefaultUpperColor),
		CaptureInterval: time.Duration(getEnvAsInt("CAPTURE_INTERVAL", 15)) * time.Second,
		Headless:        getEnvAsBool("HEADLESS", false),
		StatusAddr:      getEnv("STATUS_ADDR", ""),
	}
}

// ParseHSV parses "h,s,v" into an HSV bound.
func ParseHSV(value string) (HSV, error) {
	var out HSV
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("expected 3 components, got %d", len(parts))
	}
	limits := [3]float64{179, 255, 255}
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return out, fmt.Errorf("component %d: %w", i, err)
		}
		if v < 0 || float64(v) > limits[i] {
			return out, fmt.Errorf("component %d out of range: %d", i, v)
		}
		out[i] = float64(v)
	}
	return out, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
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

func getEnvAsHSV(key string, defaultValue HSV) HSV {
	if value := os.Getenv(key); value != "" {
		if hsv, err := ParseHSV(value); err == nil {
			return hsv
		}
	}
	return defaultValue
}
