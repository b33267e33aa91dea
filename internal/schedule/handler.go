package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"souveno-backend/internal/cache"
	"souveno-backend/internal/httpx"
	"souveno-backend/internal/middleware"
	"souveno-backend/internal/transport"
	"souveno-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

const slotConflictMessage = "This time slot is already booked. Please choose a different time."

type Handler struct {
	service  *Service
	val      *validation.Validator
	log      *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
	dev      bool
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, c cache.Cache, cacheTTL time.Duration, dev bool) *Handler {
	return &Handler{
		service:  service,
		val:      val,
		log:      log,
		cache:    c,
		cacheTTL: cacheTTL,
		dev:      dev,
	}
}

type createdResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    CreatedData `json:"data"`
}

type errorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	Detail  string            `json:"error,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, details map[string]string) {
	transport.WriteJSON(w, status, errorResponse{
		Success: false,
		Message: message,
		Errors:  details,
	})
}

func (h *Handler) writeInternalError(w http.ResponseWriter, detail string) {
	resp := errorResponse{
		Success: false,
		Message: "Internal server error. Please try again later.",
	}
	if h.dev {
		resp.Detail = detail
	}
	transport.WriteJSON(w, http.StatusInternalServerError, resp)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("schedule create: invalid json")
		h.writeError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		details := httpx.ValidationDetails(h.val.ValidationErrors(err))
		log.Warn("schedule create: validation error", slog.Int("fields", len(details)))
		h.writeError(w, http.StatusBadRequest, validationMessage(details), details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	record, err := h.service.Create(ctx, req, httpx.ClientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken):
			log.Warn("schedule create: slot taken",
				slog.String("date", req.PreferredDate),
				slog.String("time", req.PreferredTime),
			)
			h.writeError(w, http.StatusBadRequest, slotConflictMessage, nil)
		case errors.Is(err, ErrPastDate):
			log.Warn("schedule create: date in the past", slog.String("date", req.PreferredDate))
			h.writeError(w, http.StatusBadRequest, "Preferred date is in the past", nil)
		case errors.Is(err, ErrInvalidDate):
			log.Warn("schedule create: invalid date", slog.String("date", req.PreferredDate))
			h.writeError(w, http.StatusBadRequest, "Validation failed", map[string]string{"preferredDate": "date"})
		default:
			log.Error("schedule create: database error", slog.String("error", err.Error()))
			h.writeInternalError(w, err.Error())
		}
		return
	}

	if h.cache != nil {
		_ = h.cache.Delete(r.Context(), slotCacheKey(record.PreferredDate))
	}

	go func(created Request) {
		notifyCtx, notifyCancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer notifyCancel()
		if err := h.service.Notify(notifyCtx, created); err != nil {
			h.log.Warn("schedule create: notification failed",
				slog.String("schedule_id", created.ID),
				slog.String("email", created.Email),
				slog.String("error", err.Error()),
			)
		}
	}(record)

	log.Info("schedule create: booked",
		slog.String("schedule_id", record.ID),
		slog.String("date", record.PreferredDate),
		slog.String("time", record.PreferredTime),
	)
	transport.WriteJSON(w, http.StatusCreated, createdResponse{
		Success: true,
		Message: "Call scheduled successfully",
		Data: CreatedData{
			ID:            record.ID,
			Name:          record.Name,
			Email:         record.Email,
			PreferredDate: record.PreferredDate,
			PreferredTime: record.PreferredTime,
			Status:        record.Status,
		},
	})
}

func (h *Handler) BookedSlots(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		log.Warn("schedule slots: invalid date", slog.String("date", date))
		transport.WriteError(w, http.StatusBadRequest, "Invalid date", nil)
		return
	}

	key := slotCacheKey(date)
	if h.cache != nil {
		if payload, ok, err := h.cache.Get(r.Context(), key); err == nil && ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(payload)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	times, err := h.service.BookedTimes(ctx, date)
	if err != nil {
		log.Error("schedule slots: database error", slog.String("error", err.Error()))
		transport.WriteInternalError(w, "Error fetching booked slots", err.Error(), h.dev)
		return
	}

	body := map[string]interface{}{
		"date":        date,
		"bookedSlots": times,
	}
	if h.cache != nil {
		if raw, err := json.Marshal(body); err == nil {
			_ = h.cache.Set(r.Context(), key, raw, h.cacheTTL)
		}
	}

	log.Info("schedule slots: ok", slog.String("date", date), slog.Int("count", len(times)))
	transport.WriteJSON(w, http.StatusOK, body)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	page, limit, err := httpx.ParsePageLimit(r.URL.Query(), 10, 100)
	if err != nil {
		log.Warn("schedule list: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	filter := ListFilter{
		Status: strings.TrimSpace(r.URL.Query().Get("status")),
		Date:   strings.TrimSpace(r.URL.Query().Get("date")),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, total, err := h.service.List(ctx, filter, page, limit)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			transport.WriteError(w, http.StatusBadRequest, "Invalid status", map[string]string{"status": "oneof"})
			return
		}
		log.Error("schedule list: database error", slog.String("error", err.Error()))
		transport.WriteInternalError(w, "Error fetching schedules", err.Error(), h.dev)
		return
	}

	log.Info("schedule list: ok", slog.Int("count", len(items)), slog.Int64("total", total))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"schedules":   items,
		"totalPages":  httpx.TotalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("schedule status: missing id")
		transport.WriteError(w, http.StatusBadRequest, "Missing id", nil)
		return
	}

	var req StatusUpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("schedule status: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		details := httpx.ValidationDetails(h.val.ValidationErrors(err))
		log.Warn("schedule status: validation error", slog.Int("fields", len(details)))
		transport.WriteError(w, http.StatusBadRequest, "Validation failed", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	updated, err := h.service.UpdateStatus(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			log.Warn("schedule status: invalid status", slog.String("status", req.Status))
			transport.WriteError(w, http.StatusBadRequest, "Invalid status", nil)
			return
		}
		if errors.Is(err, ErrNotFound) {
			log.Warn("schedule status: not found", slog.String("schedule_id", id))
			transport.WriteError(w, http.StatusNotFound, "Schedule not found", nil)
			return
		}
		log.Error("schedule status: database error", slog.String("error", err.Error()))
		transport.WriteInternalError(w, "Error updating schedule status", err.Error(), h.dev)
		return
	}

	// A cancellation frees the slot, so drop the cached listing for that day.
	if h.cache != nil {
		_ = h.cache.Delete(r.Context(), slotCacheKey(updated.PreferredDate))
	}

	log.Info("schedule status: ok", slog.String("schedule_id", id), slog.String("status", updated.Status))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Schedule status updated",
		"schedule": updated,
	})
}

func slotCacheKey(date string) string {
	return "slots:" + date
}

func validationMessage(details map[string]string) string {
	for _, tag := range details {
		if tag == "required" {
			return "Please fill in all required fields"
		}
	}
	return "Validation failed"
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
