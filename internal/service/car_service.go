package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Varun5711/bookmarkd/internal/apperror"
	"github.com/Varun5711/bookmarkd/internal/logger"
	"github.com/Varun5711/bookmarkd/internal/models"
	"github.com/Varun5711/bookmarkd/internal/storage"
	"github.com/Varun5711/bookmarkd/internal/validation"
)

// CarCache is the read-through cache used for car lookups by id.
type CarCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
}

type CarService struct {
	cars  storage.CarStore
	cache CarCache
	log   *logger.Logger
}

// NewCarService wires the car component. cache may be nil.
func NewCarService(cars storage.CarStore, cache CarCache, log *logger.Logger) *CarService {
	return &CarService{
		cars:  cars,
		cache: cache,
		log:   log,
	}
}

func (s *CarService) Create(ctx context.Context, attrs map[string]interface{}) (*models.Car, error) {
	if err := validation.ValidateCarAttributes(attrs); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	car, err := s.cars.CreateCar(ctx, models.StripReserved(attrs))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return car, nil
}

func (s *CarService) List(ctx context.Context, p models.Pagination) (*models.CarPage, error) {
	if err := validation.ValidatePagination(p); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	items, total, err := s.cars.ListCars(ctx, p.Skip(), p.PerPage)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &models.CarPage{
		Items:   items,
		Total:   total,
		Page:    p.Page,
		PerPage: p.PerPage,
	}, nil
}

// GetByID reads through the cache. Cars are never modified after creation,
// so cached entries cannot go stale.
func (s *CarService) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	key := strconv.FormatInt(id, 10)

	if s.cache != nil {
		var cached models.Car
		found, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.log.Warn("Discarding unreadable cache entry for car %d: %v", id, err)
		}
		if found {
			return &cached, nil
		}
	}

	car, err := s.cars.GetCar(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperror.NotFound(fmt.Sprintf("Car #%d not found", id))
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, car); err != nil {
			s.log.Warn("Failed to cache car %d: %v", id, err)
		}
	}

	return car, nil
}

// Update and Remove are not implemented yet; both always fail.
func (s *CarService) Update(ctx context.Context, id int64, attrs map[string]interface{}) (*models.Car, error) {
	return nil, apperror.NotImplemented(fmt.Sprintf("Updating car #%d is not supported", id))
}

func (s *CarService) Remove(ctx context.Context, id int64) error {
	return apperror.NotImplemented(fmt.Sprintf("Removing car #%d is not supported", id))
}
