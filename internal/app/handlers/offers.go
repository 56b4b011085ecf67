package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/linemk/travel-insurance/internal/domain/models"
	"github.com/linemk/travel-insurance/internal/service"
)

var validate = validator.New()

// offerID извлекает идентификатор предложения из URL
func offerID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeInput читает и валидирует тело запроса, при ошибке сам пишет ответ
func decodeInput(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (models.OfferInput, bool) {
	var in models.OfferInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		logger.Error("invalid request: decoding error", slog.Any("error", err))
		writeError(w, logger, http.StatusBadRequest, "invalid request")
		return in, false
	}
	if err := validate.Struct(in); err != nil {
		logger.Error("invalid request: validation error", slog.Any("error", err))
		writeError(w, logger, http.StatusUnprocessableEntity, "validation error: "+err.Error())
		return in, false
	}
	return in, true
}

func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrOfferNotFound):
		writeError(w, logger, http.StatusNotFound, MsgNotFound)
	case errors.Is(err, service.ErrInvalidFilter):
		writeError(w, logger, http.StatusBadRequest, err.Error())
	default:
		writeError(w, logger, http.StatusInternalServerError, msgInternal)
	}
}

// ListOffersHandler обрабатывает GET /offers
func ListOffersHandler(log *slog.Logger, offerService service.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOffersHandler"
		logger := log.With(slog.String("op", op))

		offers, err := offerService.ListOffers(r.Context())
		if err != nil {
			logger.Error("failed to list offers", slog.Any("error", err))
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, offers)
	}
}

// GetOfferHandler обрабатывает GET /offers/{id}
func GetOfferHandler(log *slog.Logger, offerService service.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOfferHandler"
		logger := log.With(slog.String("op", op))

		id, ok := offerID(r)
		if !ok {
			writeError(w, logger, http.StatusBadRequest, "invalid offer id")
			return
		}

		offer, err := offerService.GetOffer(r.Context(), id)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, offer)
	}
}

// FilterOffersHandler обрабатывает GET /offers/filter?min_price=&max_price=&type=&currency=&min_coverage=
func FilterOffersHandler(log *slog.Logger, offerService service.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.FilterOffersHandler"
		logger := log.With(slog.String("op", op))

		filter, err := models.ParseOfferFilter(r.URL.Query())
		if err != nil {
			logger.Warn("invalid filter", slog.Any("error", err))
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		offers, err := offerService.FilterOffers(r.Context(), filter)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, offers)
	}
}

// CreateOfferHandler обрабатывает POST /offers
func CreateOfferHandler(log *slog.Logger, offerService service.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOfferHandler"
		logger := log.With(slog.String("op", op))

		in, ok := decodeInput(w, r, logger)
		if !ok {
			return
		}

		offer, err := offerService.CreateOffer(r.Context(), in)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, offer)
	}
}

// UpdateOfferHandler обрабатывает PUT /offers/{id}
func UpdateOfferHandler(log *slog.Logger, offerService service.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateOfferHandler"
		logger := log.With(slog.String("op", op))

		id, ok := offerID(r)
		if !ok {
			writeError(w, logger, http.StatusBadRequest, "invalid offer id")
			return
		}
		in, ok := decodeInput(w, r, logger)
		if !ok {
			return
		}

		offer, err := offerService.UpdateOffer(r.Context(), id, in)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, offer)
	}
}

// DeleteOfferHandler обрабатывает DELETE /offers/{id}
func DeleteOfferHandler(log *slog.Logger, offerService service.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteOfferHandler"
		logger := log.With(slog.String("op", op))

		id, ok := offerID(r)
		if !ok {
			writeError(w, logger, http.StatusBadRequest, "invalid offer id")
			return
		}

		if err := offerService.DeleteOffer(r.Context(), id); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, MessageResponse{Message: MsgDeleted})
	}
}
