package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/travel-insurance/internal/domain/models"
	"github.com/linemk/travel-insurance/internal/storage"
)

var (
	ErrOfferNotFound = errors.New("offer not found")
	ErrInvalidFilter = models.ErrInvalidFilter
)

// OfferService определяет бизнес-операции над страховыми предложениями.
type OfferService interface {
	ListOffers(ctx context.Context) ([]*models.Offer, error)
	GetOffer(ctx context.Context, id int64) (*models.Offer, error)
	CreateOffer(ctx context.Context, in models.OfferInput) (*models.Offer, error)
	FilterOffers(ctx context.Context, f models.OfferFilter) ([]*models.Offer, error)
	UpdateOffer(ctx context.Context, id int64, in models.OfferInput) (*models.Offer, error)
	DeleteOffer(ctx context.Context, id int64) error
}

type offerService struct {
	log       *slog.Logger
	offerRepo storage.OfferStorage
}

func NewOfferService(log *slog.Logger, offerRepo storage.OfferStorage) OfferService {
	return &offerService{
		log:       log,
		offerRepo: offerRepo,
	}
}

// notFound приводит ошибку хранилища к ошибке сервиса
func notFound(op string, err error) error {
	if errors.Is(err, storage.ErrOfferNotFound) {
		return fmt.Errorf("%s: %w", op, ErrOfferNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *offerService) ListOffers(ctx context.Context) ([]*models.Offer, error) {
	const op = "service.OfferService.ListOffers"
	logger := s.log.With(slog.String("op", op))

	offers, err := s.offerRepo.ListOffers(ctx)
	if err != nil {
		logger.Error("failed to list offers", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Debug("offers listed", slog.Int("count", len(offers)))
	return offers, nil
}

func (s *offerService) GetOffer(ctx context.Context, id int64) (*models.Offer, error) {
	const op = "service.OfferService.GetOffer"
	logger := s.log.With(slog.String("op", op), slog.Int64("offerID", id))

	offer, err := s.offerRepo.GetOfferByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrOfferNotFound) {
			logger.Info("offer not found")
		} else {
			logger.Error("failed to get offer", slog.Any("error", err))
		}
		return nil, notFound(op, err)
	}
	return offer, nil
}

// CreateOffer создает предложение, подставляя валюту по умолчанию
func (s *offerService) CreateOffer(ctx context.Context, in models.OfferInput) (*models.Offer, error) {
	const op = "service.OfferService.CreateOffer"
	logger := s.log.With(slog.String("op", op), slog.String("name", in.Name))

	offer, err := s.offerRepo.CreateOffer(ctx, in.WithDefaults())
	if err != nil {
		logger.Error("failed to create offer", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("offer created", slog.Int64("offerID", offer.ID))
	return offer, nil
}

func (s *offerService) FilterOffers(ctx context.Context, f models.OfferFilter) ([]*models.Offer, error) {
	const op = "service.OfferService.FilterOffers"
	logger := s.log.With(slog.String("op", op))

	if err := f.Validate(); err != nil {
		logger.Warn("invalid filter", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	offers, err := s.offerRepo.FilterOffers(ctx, f)
	if err != nil {
		logger.Error("failed to filter offers", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Debug("offers filtered", slog.Int("count", len(offers)), slog.String("query", f.Query().Encode()))
	return offers, nil
}

func (s *offerService) UpdateOffer(ctx context.Context, id int64, in models.OfferInput) (*models.Offer, error) {
	const op = "service.OfferService.UpdateOffer"
	logger := s.log.With(slog.String("op", op), slog.Int64("offerID", id))

	offer, err := s.offerRepo.UpdateOffer(ctx, id, in.WithDefaults())
	if err != nil {
		logger.Error("failed to update offer", slog.Any("error", err))
		return nil, notFound(op, err)
	}
	logger.Info("offer updated")
	return offer, nil
}

func (s *offerService) DeleteOffer(ctx context.Context, id int64) error {
	const op = "service.OfferService.DeleteOffer"
	logger := s.log.With(slog.String("op", op), slog.Int64("offerID", id))

	if err := s.offerRepo.DeleteOffer(ctx, id); err != nil {
		logger.Error("failed to delete offer", slog.Any("error", err))
		return notFound(op, err)
	}
	logger.Info("offer deleted")
	return nil
}
