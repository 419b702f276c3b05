package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

const firmwareFilename = "firmware.bin"

// DeviceConfig is the provisioning document the embedded client pulls.
// Persisted as a flat JSON file, not the relational store.
type DeviceConfig struct {
	WifiSSID     string `json:"wifi_ssid"`
	WifiPassword string `json:"wifi_password"`
	FastData     bool   `json:"fast_data"`
}

// FetchTracker records when the device last pulled its config and
// firmware. Process-lifetime bookkeeping only; reset on restart is
// acceptable.
type FetchTracker struct {
	mu           sync.RWMutex
	lastConfig   time.Time
	lastFirmware time.Time
}

func (t *FetchTracker) MarkConfig(now time.Time) {
	t.mu.Lock()
	t.lastConfig = now
	t.mu.Unlock()
}

func (t *FetchTracker) MarkFirmware(now time.Time) {
	t.mu.Lock()
	t.lastFirmware = now
	t.mu.Unlock()
}

func (t *FetchTracker) Snapshot() (config, firmware time.Time) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastConfig, t.lastFirmware
}

// DeviceHandlers owns the device-facing surface: the config file, the
// firmware artifact and the fetch bookkeeping.
type DeviceHandlers struct {
	ConfigPath  string
	FirmwareDir string
	Tracker     *FetchTracker
	DisplayZone *time.Location
}

// NewDeviceHandlers sets up the on-disk layout under dataDir and makes
// sure a config file exists.
func NewDeviceHandlers(dataDir string, zone *time.Location) (*DeviceHandlers, error) {
	firmwareDir := filepath.Join(dataDir, "firmware")
	if err := os.MkdirAll(firmwareDir, 0o755); err != nil {
		return nil, err
	}

	h := &DeviceHandlers{
		ConfigPath:  filepath.Join(dataDir, "config.json"),
		FirmwareDir: firmwareDir,
		Tracker:     &FetchTracker{},
		DisplayZone: zone,
	}
	if _, err := os.Stat(h.ConfigPath); os.IsNotExist(err) {
		if err := h.writeConfig(DeviceConfig{}); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *DeviceHandlers) readConfig() (DeviceConfig, error) {
	var cfg DeviceConfig
	b, err := os.ReadFile(h.ConfigPath)
	if err != nil {
		return cfg, err
	}
	err = json.Unmarshal(b, &cfg)
	return cfg, err
}

func (h *DeviceHandlers) writeConfig(cfg DeviceConfig) error {
	b, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(h.ConfigPath, b, 0o644)
}

// GetConfig serves the stored device config and marks the fetch.
func (h *DeviceHandlers) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.readConfig()
	if err != nil {
		logger.Error("read config file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to read config file")
		return
	}
	h.Tracker.MarkConfig(time.Now().UTC())
	writeJSON(w, http.StatusOK, cfg)
}

// SaveConfig replaces the stored device config. SSID is mandatory.
func (h *DeviceHandlers) SaveConfig(w http.ResponseWriter, r *http.Request) {
	var cfg DeviceConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if cfg.WifiSSID == "" {
		writeError(w, http.StatusBadRequest, "SSID is required")
		return
	}
	if err := h.writeConfig(cfg); err != nil {
		logger.Error("save config file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save config")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Configuration saved",
	})
}

// VerifyConfig compares a submitted config document to the stored one.
func (h *DeviceHandlers) VerifyConfig(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Config *DeviceConfig `json:"config"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Config == nil {
		writeError(w, http.StatusBadRequest, "Configuration data is required")
		return
	}

	stored, err := h.readConfig()
	if err != nil {
		logger.Error("read config file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to verify configuration")
		return
	}
	if stored != *body.Config {
		writeError(w, http.StatusBadRequest, "Configuration verification failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Configuration verified successfully",
	})
}

// CurrentConfig serves the config in the newline-delimited plain-text
// form the embedded client parses: fast-data flag, SSID, password.
func (h *DeviceHandlers) CurrentConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.readConfig()
	if err != nil {
		logger.Error("read config file", zap.Error(err))
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "0\n\n")
		return
	}

	fast := 0
	if cfg.FastData {
		fast = 1
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "%d\n%s\n%s", fast, cfg.WifiSSID, cfg.WifiPassword)
}

func (h *DeviceHandlers) firmwarePath() string {
	return filepath.Join(h.FirmwareDir, firmwareFilename)
}

// GetFirmware serves the artifact and marks the fetch.
func (h *DeviceHandlers) GetFirmware(w http.ResponseWriter, r *http.Request) {
	path := h.firmwarePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		writeError(w, http.StatusNotFound, "No firmware found")
		return
	}
	h.Tracker.MarkFirmware(time.Now().UTC())
	http.ServeFile(w, r, path)
}

// UploadFirmware stores a new artifact under the fixed name, replacing
// any previous one.
func (h *DeviceHandlers) UploadFirmware(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "bad multipart form")
		return
	}

	file, header, err := r.FormFile("firmware")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" || filepath.Ext(header.Filename) != ".bin" {
		writeError(w, http.StatusBadRequest, "Invalid firmware file")
		return
	}

	path := h.firmwarePath()
	dst, err := os.Create(path)
	if err != nil {
		logger.Error("create firmware file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to store firmware")
		return
	}
	defer dst.Close()

	size, err := dst.ReadFrom(file)
	if err != nil {
		logger.Error("write firmware file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to store firmware")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Firmware uploaded successfully",
		"size":    size,
	})
}

// FirmwareStatus reports whether an artifact exists and its metadata.
func (h *DeviceHandlers) FirmwareStatus(w http.ResponseWriter, r *http.Request) {
	info, err := os.Stat(h.firmwarePath())
	if os.IsNotExist(err) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"exists": false})
		return
	}
	if err != nil {
		logger.Error("stat firmware file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to check firmware status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exists":        true,
		"size":          info.Size(),
		"last_modified": info.ModTime().In(h.DisplayZone).Format("2006-01-02 15:04:05"),
		"filename":      firmwareFilename,
	})
}

// RemoveFirmware deletes the artifact.
func (h *DeviceHandlers) RemoveFirmware(w http.ResponseWriter, r *http.Request) {
	path := h.firmwarePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		writeError(w, http.StatusNotFound, "No firmware found")
		return
	}
	if err := os.Remove(path); err != nil {
		logger.Error("remove firmware file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to remove firmware")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Firmware removed",
	})
}

// FetchStatus reports the last config and firmware pull instants in
// the display zone; null when a pull has not happened this process.
func (h *DeviceHandlers) FetchStatus(w http.ResponseWriter, r *http.Request) {
	lastConfig, lastFirmware := h.Tracker.Snapshot()

	format := func(t time.Time) interface{} {
		if t.IsZero() {
			return nil
		}
		return t.In(h.DisplayZone).Format("2006-01-02 15:04:05 MST")
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"last_config_fetch":   format(lastConfig),
		"last_firmware_fetch": format(lastFirmware),
	})
}
