package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/nappsng/cms/pkg/cms"
)

// MailHandler handles outbound email requests.
type MailHandler struct {
	service cms.Service
}

// NewMailHandler creates a new mail handler
func NewMailHandler(service cms.Service) *MailHandler {
	return &MailHandler{service: service}
}

// Routes returns the routes for mail
func (h *MailHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/send", h.SendMail)
	r.Post("/newsletter", h.SendNewsletter)
	r.Post("/event-notice", h.SendEventNotice)

	return r
}

// SendMailRequest is the request body for a raw transactional message
type SendMailRequest struct {
	To      []string `json:"to" validate:"required,min=1,dive,email"`
	ReplyTo string   `json:"reply_to" validate:"omitempty,email"`
	Subject string   `json:"subject" validate:"required"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

// NewsletterRequest is the request body for a newsletter broadcast
type NewsletterRequest struct {
	Title         string              `json:"title" validate:"required"`
	HTMLBody      string              `json:"html_body" validate:"required"`
	Recipients    []string            `json:"recipients" validate:"required,min=1,dive,email"`
	FeaturedImage *cms.StoredResource `json:"featured_image"`
}

// EventNoticeRequest is the request body for an event notification broadcast
type EventNoticeRequest struct {
	Name             string   `json:"name" validate:"required"`
	Date             string   `json:"date" validate:"required"`
	Location         string   `json:"location"`
	Description      string   `json:"description"`
	Recipients       []string `json:"recipients" validate:"required,min=1,dive,email"`
	RegistrationLink string   `json:"registration_link" validate:"omitempty,url"`
}

// DeliveryResponse is the response body for accepted outbound mail
type DeliveryResponse struct {
	MessageID  string    `json:"message_id"`
	Recipients int       `json:"recipients"`
	SentAt     time.Time `json:"sent_at"`
}

func deliveryResponse(receipt *cms.DeliveryReceipt) DeliveryResponse {
	return DeliveryResponse{
		MessageID:  receipt.MessageID,
		Recipients: receipt.Recipients,
		SentAt:     receipt.SentAt,
	}
}

// SendMail delivers a raw transactional message
func (h *MailHandler) SendMail(w http.ResponseWriter, r *http.Request) {
	var req SendMailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	receipt, err := h.service.SendMail(r.Context(), cms.Message{
		To:      req.To,
		ReplyTo: req.ReplyTo,
		Subject: req.Subject,
		HTML:    req.HTML,
		Text:    req.Text,
	})
	if err != nil {
		slog.Error("Failed to send mail", "recipients", len(req.To), "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Mail sent", "message_id", receipt.MessageID, "recipients", receipt.Recipients)
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, deliveryResponse(receipt))
}

// SendNewsletter delivers a newsletter broadcast to the recipient list
func (h *MailHandler) SendNewsletter(w http.ResponseWriter, r *http.Request) {
	var req NewsletterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	receipt, err := h.service.SendNewsletter(r.Context(), cms.NewsletterRequest{
		Title:         req.Title,
		HTMLBody:      req.HTMLBody,
		Recipients:    req.Recipients,
		FeaturedImage: req.FeaturedImage,
	})
	if err != nil {
		slog.Error("Failed to send newsletter", "title", req.Title, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Newsletter sent", "message_id", receipt.MessageID, "recipients", receipt.Recipients)
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, deliveryResponse(receipt))
}

// SendEventNotice delivers an event notification broadcast
func (h *MailHandler) SendEventNotice(w http.ResponseWriter, r *http.Request) {
	var req EventNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	receipt, err := h.service.SendEventNotice(r.Context(), cms.EventNoticeRequest{
		Name:             req.Name,
		Date:             req.Date,
		Location:         req.Location,
		Description:      req.Description,
		Recipients:       req.Recipients,
		RegistrationLink: req.RegistrationLink,
	})
	if err != nil {
		slog.Error("Failed to send event notice", "event", req.Name, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Event notice sent", "message_id", receipt.MessageID, "recipients", receipt.Recipients)
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, deliveryResponse(receipt))
}
