package handlers

import (
	"net/http"

	"github.com/cloudnotes/cloudnotes-api/internal/models"
	"github.com/cloudnotes/cloudnotes-api/internal/services"
	apperrors "github.com/cloudnotes/cloudnotes-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const contactInternalErrorMessage = "Something went wrong. Please try again later."

type ContactHandler struct {
	service services.ContactServiceInterface
}

func NewContactHandler(service services.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitContact handles POST /api/v1/contact. Validation failures are 400s;
// a body that cannot be parsed at all is treated as a server-side failure,
// matching the website's original behavior.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			respondError(c, http.StatusBadRequest, ParseValidationErrors(verrs)[0].Message, err)
			return
		}
		respondError(c, http.StatusInternalServerError, contactInternalErrorMessage, err)
		return
	}

	resp, err := h.service.SubmitContactForm(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		var verr *apperrors.ValidationError
		if apperrors.As(err, &verr) {
			respondError(c, http.StatusBadRequest, verr.Message, err)
			return
		}
		respondError(c, http.StatusInternalServerError, contactInternalErrorMessage, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
