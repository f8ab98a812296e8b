package list_cabins

import (
	"net/http"

	"github.com/m04kA/SMC-CabinService/internal/api/handlers"
	"github.com/m04kA/SMC-CabinService/internal/service/cabins/models"
)

type Handler struct {
	service CabinsService
	logger  Logger
}

func NewHandler(service CabinsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /cabins
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /cabins - Failed to list cabins: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	// Клиенты ожидают массив, а не null
	if result == nil {
		result = []models.CabinResponse{}
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
