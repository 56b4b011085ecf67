package service_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/linemk/travel-insurance/internal/domain/models"
	"github.com/linemk/travel-insurance/internal/service"
	"github.com/linemk/travel-insurance/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOfferRepo - фиктивная реализация хранилища в памяти.
type fakeOfferRepo struct {
	offers  map[int64]*models.Offer
	nextID  int64
	lastIn  models.OfferInput
	err     error
	filters []models.OfferFilter
}

var _ storage.OfferStorage = (*fakeOfferRepo)(nil)

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[int64]*models.Offer), nextID: 1}
}

func (f *fakeOfferRepo) ListOffers(ctx context.Context) ([]*models.Offer, error) {
	if f.err != nil {
		return nil, f.err
	}
	offers := make([]*models.Offer, 0, len(f.offers))
	for id := int64(1); id < f.nextID; id++ {
		if o, ok := f.offers[id]; ok {
			offers = append(offers, o)
		}
	}
	return offers, nil
}

func (f *fakeOfferRepo) GetOfferByID(ctx context.Context, id int64) (*models.Offer, error) {
	o, ok := f.offers[id]
	if !ok {
		return nil, storage.ErrOfferNotFound
	}
	return o, nil
}

func (f *fakeOfferRepo) CreateOffer(ctx context.Context, in models.OfferInput) (*models.Offer, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastIn = in
	o := &models.Offer{ID: f.nextID, Name: in.Name, Price: in.Price, Type: in.Type, CoverageAmount: in.CoverageAmount, Currency: in.Currency}
	f.offers[o.ID] = o
	f.nextID++
	return o, nil
}

func (f *fakeOfferRepo) FilterOffers(ctx context.Context, flt models.OfferFilter) ([]*models.Offer, error) {
	f.filters = append(f.filters, flt)
	return f.ListOffers(ctx)
}

func (f *fakeOfferRepo) UpdateOffer(ctx context.Context, id int64, in models.OfferInput) (*models.Offer, error) {
	o, ok := f.offers[id]
	if !ok {
		return nil, storage.ErrOfferNotFound
	}
	f.lastIn = in
	o.Name, o.Type, o.Currency = in.Name, in.Type, in.Currency
	return o, nil
}

func (f *fakeOfferRepo) DeleteOffer(ctx context.Context, id int64) error {
	if _, ok := f.offers[id]; !ok {
		return storage.ErrOfferNotFound
	}
	delete(f.offers, id)
	return nil
}

func newService(repo storage.OfferStorage) service.OfferService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return service.NewOfferService(logger, repo)
}

func TestOfferService_CreateOffer_DefaultCurrency(t *testing.T) {
	repo := newFakeOfferRepo()
	svc := newService(repo)

	offer, err := svc.CreateOffer(context.Background(), models.OfferInput{Name: "Basic", Type: "sport", CoverageAmount: 10000})
	require.NoError(t, err)
	assert.Equal(t, int64(1), offer.ID)
	assert.Equal(t, "EUR", repo.lastIn.Currency, "currency should default to EUR")
}

func TestOfferService_CreateOffer_StorageError(t *testing.T) {
	repo := newFakeOfferRepo()
	repo.err = errors.New("db down")
	svc := newService(repo)

	offer, err := svc.CreateOffer(context.Background(), models.OfferInput{Name: "Basic", Type: "sport"})
	assert.Error(t, err)
	assert.Nil(t, offer)
}

func TestOfferService_ListOffers(t *testing.T) {
	repo := newFakeOfferRepo()
	svc := newService(repo)
	ctx := context.Background()

	_, _ = svc.CreateOffer(ctx, models.OfferInput{Name: "A", Type: "sport"})
	_, _ = svc.CreateOffer(ctx, models.OfferInput{Name: "B", Type: "travel"})

	offers, err := svc.ListOffers(ctx)
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, "A", offers[0].Name)
	assert.Equal(t, "B", offers[1].Name)
}

func TestOfferService_GetOffer_NotFound(t *testing.T) {
	svc := newService(newFakeOfferRepo())

	offer, err := svc.GetOffer(context.Background(), 100)
	assert.ErrorIs(t, err, service.ErrOfferNotFound)
	assert.Nil(t, offer)
}

func TestOfferService_UpdateAndDelete_NotFound(t *testing.T) {
	svc := newService(newFakeOfferRepo())
	ctx := context.Background()

	_, err := svc.UpdateOffer(ctx, 5, models.OfferInput{Name: "X", Type: "sport"})
	assert.ErrorIs(t, err, service.ErrOfferNotFound)

	err = svc.DeleteOffer(ctx, 5)
	assert.ErrorIs(t, err, service.ErrOfferNotFound)
}

func TestOfferService_DeleteOffer(t *testing.T) {
	repo := newFakeOfferRepo()
	svc := newService(repo)
	ctx := context.Background()

	created, err := svc.CreateOffer(ctx, models.OfferInput{Name: "A", Type: "sport"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOffer(ctx, created.ID))
	_, err = svc.GetOffer(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrOfferNotFound)
}

func TestOfferService_FilterOffers_InvalidRange(t *testing.T) {
	repo := newFakeOfferRepo()
	svc := newService(repo)

	minPrice, maxPrice := 200.0, 100.0
	_, err := svc.FilterOffers(context.Background(), models.OfferFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
	assert.ErrorIs(t, err, service.ErrInvalidFilter)
	assert.Empty(t, repo.filters, "repository should not be called for an invalid filter")
}

func TestOfferService_FilterOffers_PassesFilter(t *testing.T) {
	repo := newFakeOfferRepo()
	svc := newService(repo)

	currency := "USD"
	_, err := svc.FilterOffers(context.Background(), models.OfferFilter{Currency: &currency})
	require.NoError(t, err)
	require.Len(t, repo.filters, 1)
	assert.Equal(t, "USD", *repo.filters[0].Currency)
}
