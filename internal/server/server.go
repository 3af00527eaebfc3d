// Package server exposes the projection engine and scenario store over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/feasly/feasibility-engine/internal/config"
	"github.com/feasly/feasibility-engine/internal/engine"
	"github.com/feasly/feasibility-engine/internal/scenario"
	"github.com/feasly/feasibility-engine/pkg/constants"
	"github.com/feasly/feasibility-engine/pkg/output"
)

type handler struct {
	logger        *zap.Logger
	engine        *engine.Engine
	store         *scenario.Store
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the projection API.
// The store is shared across requests; pass a fresh one per server.
func NewHandler(logger *zap.Logger, store *scenario.Store, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = scenario.NewStore()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		engine:        engine.New(logger),
		store:         store,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Single-parameter-set projection
	mux.HandleFunc("/api/projection", h.handleProjection)

	// Batch projection from an uploaded YAML config
	mux.HandleFunc("/api/projection/file", h.handleProjectionFile)

	// Scenario snapshots: POST saves, GET lists
	mux.HandleFunc("/api/scenarios", h.handleScenarios)

	// Scenario lookup by ID, best-scenario comparison, YAML export
	mux.HandleFunc("/api/scenarios/", h.handleScenarioSubpath)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type projectionResponse struct {
	Result   *engine.ProjectionResult `json:"result"`
	Warnings []string                 `json:"warnings,omitempty"`
	Duration string                   `json:"duration"`
}

type batchProjectionResponse struct {
	Scenarios []output.NamedProjection `json:"scenarios"`
	CSV       string                   `json:"csv"`
	Warnings  []string                 `json:"warnings,omitempty"`
	Duration  string                   `json:"duration"`
}

type saveScenarioRequest struct {
	Name   string                    `json:"name"`
	Params config.BusinessParameters `json:"params"`
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var params config.BusinessParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode parameters: %v", err), "server.handleProjection")
		return
	}

	warnings := params.Normalize()
	result, err := h.engine.ComputeProjection(params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, config.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		h.respondError(w, status, err.Error(), "server.handleProjection")
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("projection computed",
		zap.String("op", "server.handleProjection"),
		zap.String("businessType", params.BusinessType),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, projectionResponse{
		Result:   result,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleProjectionFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleProjectionFile")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleProjectionFile")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", "server.handleProjectionFile")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleProjectionFile"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handleProjectionFile")
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleProjectionFile")
		return
	}

	warnings := cfg.ValidateConfiguration()

	var results []output.NamedProjection
	for _, sc := range cfg.Scenarios {
		if !sc.Active {
			continue
		}
		result, err := h.engine.ComputeProjection(sc.Parameters)
		if err != nil {
			h.respondError(w, http.StatusBadRequest,
				fmt.Sprintf("scenario '%s': %v", sc.Name, err), "server.handleProjectionFile")
			return
		}
		results = append(results, output.NamedProjection{Name: sc.Name, Projection: result})
	}

	elapsed := time.Since(start)
	h.logger.Info("batch projection computed",
		zap.String("op", "server.handleProjectionFile"),
		zap.Int("scenarios", len(results)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, batchProjectionResponse{
		Scenarios: results,
		CSV:       output.CsvString(results),
		Warnings:  warnings,
		Duration:  elapsed.String(),
	})
}

func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleScenarioSave(w, r)
	case http.MethodGet:
		h.writeJSON(w, http.StatusOK, h.store.List())
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleScenarioSave(w http.ResponseWriter, r *http.Request) {
	var req saveScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode scenario: %v", err), "server.handleScenarioSave")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		h.respondError(w, http.StatusBadRequest, "scenario name is required", "server.handleScenarioSave")
		return
	}

	req.Params.Normalize()
	result, err := h.engine.ComputeProjection(req.Params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, config.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		h.respondError(w, status, err.Error(), "server.handleScenarioSave")
		return
	}

	snapshot := h.store.Save(req.Name, req.Params, *result)
	h.logger.Info("scenario saved",
		zap.String("op", "server.handleScenarioSave"),
		zap.String("id", snapshot.ID),
		zap.String("name", snapshot.Name),
	)

	h.writeJSON(w, http.StatusOK, snapshot)
}

func (h *handler) handleScenarioSubpath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/scenarios/")
	switch {
	case rest == "best":
		h.handleScenarioBest(w, r)
	case rest == "export":
		h.handleScenarioExport(w, r)
	default:
		h.handleScenarioLoad(w, r, rest)
	}
}

func (h *handler) handleScenarioBest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	best, ok := h.store.Best()
	if !ok {
		h.respondError(w, http.StatusNotFound, "no comparable scenarios saved", "server.handleScenarioBest")
		return
	}
	h.writeJSON(w, http.StatusOK, best)
}

func (h *handler) handleScenarioLoad(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	snapshot, ok := h.store.Load(id)
	if !ok {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("scenario %s not found", id), "server.handleScenarioLoad")
		return
	}
	h.writeJSON(w, http.StatusOK, snapshot)
}

type exportRequest struct {
	ID string `json:"id"`
}

func (h *handler) handleScenarioExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode export request: %v", err), "server.handleScenarioExport")
		return
	}

	snapshot, ok := h.store.Load(req.ID)
	if !ok {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("scenario %s not found", req.ID), "server.handleScenarioExport")
		return
	}

	yamlBytes, err := marshalScenarioYAML(snapshot)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode scenario: %v", err), "server.handleScenarioExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// marshalScenarioYAML renders a saved scenario as a config-file fragment with
// a stable key order, so exported files diff cleanly.
func marshalScenarioYAML(snapshot scenario.Scenario) ([]byte, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	appendKey := func(key string, value interface{}) error {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
		return nil
	}

	if err := appendKey("name", snapshot.Name); err != nil {
		return nil, err
	}
	if err := appendKey("active", true); err != nil {
		return nil, err
	}
	if err := appendKey("parameters", snapshot.Params); err != nil {
		return nil, err
	}

	return yaml.Marshal(mapNode)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
