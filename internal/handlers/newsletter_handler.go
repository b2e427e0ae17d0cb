package handlers

import (
	"net/http"

	"github.com/cloudnotes/cloudnotes-api/internal/models"
	"github.com/cloudnotes/cloudnotes-api/internal/services"
	apperrors "github.com/cloudnotes/cloudnotes-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	newsletterSuccessMessage       = "Successfully subscribed to newsletter!"
	newsletterInternalErrorMessage = "An error occurred while subscribing. Please try again."
)

type NewsletterHandler struct {
	service services.NewsletterServiceInterface
}

func NewNewsletterHandler(service services.NewsletterServiceInterface) *NewsletterHandler {
	return &NewsletterHandler{service: service}
}

// Subscribe handles POST /api/v1/newsletter/subscribe. Duplicates are 409s,
// validation failures 400s, and an unparseable body is a server-side failure.
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			respondNewsletterError(c, http.StatusBadRequest, ParseValidationErrors(verrs)[0].Message, err)
			return
		}
		respondNewsletterError(c, http.StatusInternalServerError, newsletterInternalErrorMessage, err)
		return
	}

	data, err := h.service.Subscribe(c.Request.Context(), &req)
	if err != nil {
		var verr *apperrors.ValidationError
		switch {
		case apperrors.As(err, &verr):
			respondNewsletterError(c, http.StatusBadRequest, verr.Message, err)
		case apperrors.Is(err, apperrors.ErrConflict):
			respondNewsletterError(c, http.StatusConflict, err.Error(), err)
		default:
			respondNewsletterError(c, http.StatusInternalServerError, newsletterInternalErrorMessage, err)
		}
		return
	}

	c.JSON(http.StatusCreated, models.SubscribeResponse{
		Success: true,
		Message: newsletterSuccessMessage,
		Data:    data,
	})
}
