package contact

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"souveno-backend/internal/httpx"
	"souveno-backend/internal/middleware"
	"souveno-backend/internal/transport"
	"souveno-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
	dev     bool
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, dev bool) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
		dev:     dev,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("contact create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		details := httpx.ValidationDetails(h.val.ValidationErrors(err))
		log.Warn("contact create: validation error", slog.Int("fields", len(details)))
		transport.WriteError(w, http.StatusBadRequest, "All fields are required", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	msg, err := h.service.Create(ctx, req, httpx.ClientIP(r), r.UserAgent())
	if err != nil {
		log.Error("contact create: database error", slog.String("error", err.Error()))
		transport.WriteInternalError(w, "Error submitting contact form", err.Error(), h.dev)
		return
	}

	go func(created Message) {
		notifyCtx, notifyCancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer notifyCancel()
		if err := h.service.Notify(notifyCtx, created); err != nil {
			h.log.Warn("contact create: notification failed",
				slog.String("contact_id", created.ID),
				slog.String("email", created.Email),
				slog.String("error", err.Error()),
			)
		}
	}(msg)

	log.Info("contact create: stored", slog.String("contact_id", msg.ID), slog.String("subject", msg.Subject))
	transport.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Contact form submitted successfully",
		"id":      msg.ID,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	page, limit, err := httpx.ParsePageLimit(r.URL.Query(), 10, 100)
	if err != nil {
		log.Warn("contact list: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	filter := ListFilter{
		Status: strings.TrimSpace(r.URL.Query().Get("status")),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, total, err := h.service.List(ctx, filter, page, limit)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			transport.WriteError(w, http.StatusBadRequest, "Invalid status", map[string]string{"status": "oneof"})
			return
		}
		log.Error("contact list: database error", slog.String("error", err.Error()))
		transport.WriteInternalError(w, "Error fetching contacts", err.Error(), h.dev)
		return
	}

	log.Info("contact list: ok", slog.Int("count", len(items)), slog.Int64("total", total))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"contacts":    items,
		"totalPages":  httpx.TotalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("contact status: missing id")
		transport.WriteError(w, http.StatusBadRequest, "Missing id", nil)
		return
	}

	var req StatusUpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("contact status: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	updated, err := h.service.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			log.Warn("contact status: invalid status", slog.String("status", req.Status))
			transport.WriteError(w, http.StatusBadRequest, "Invalid status", nil)
			return
		}
		if errors.Is(err, ErrNotFound) {
			log.Warn("contact status: not found", slog.String("contact_id", id))
			transport.WriteError(w, http.StatusNotFound, "Contact not found", nil)
			return
		}
		log.Error("contact status: database error", slog.String("error", err.Error()))
		transport.WriteInternalError(w, "Error updating contact status", err.Error(), h.dev)
		return
	}

	log.Info("contact status: ok", slog.String("contact_id", id), slog.String("status", updated.Status))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Contact status updated",
		"contact": updated,
	})
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
