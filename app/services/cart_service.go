package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/app/repositories"
)

// CartService manages a user's open cart lines.
type CartService struct {
	carts    *repositories.CartRepository
	vehicles *repositories.VehicleRepository
}

func NewCartService(carts *repositories.CartRepository, vehicles *repositories.VehicleRepository) *CartService {
	return &CartService{carts: carts, vehicles: vehicles}
}

// GetCart returns all of the user's cart lines. An empty cart is not an
// error.
func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	items, err := s.carts.ForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

// AddItem puts quantity units of a vehicle in the cart. When a line for
// (user, vehicle) already exists its quantity is incremented and the captured
// price refreshed to the vehicle's current price; a new line snapshots the
// current price.
func (s *CartService) AddItem(ctx context.Context, userID, vehicleID uint, quantity int) (models.CartItem, error) {
	vehicle, err := s.vehicles.FindByID(ctx, vehicleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CartItem{}, ErrNotFound
	}
	if err != nil {
		return models.CartItem{}, fmt.Errorf("find vehicle: %w", err)
	}

	existing, err := s.carts.FindByUserAndVehicle(ctx, userID, vehicleID)
	switch {
	case err == nil:
		newQty := existing.Quantity + quantity
		if newQty > vehicle.Stock {
			return models.CartItem{}, ErrInsufficientStock
		}
		existing.Quantity = newQty
		existing.Price = vehicle.Price
		if err := s.carts.Update(ctx, &existing); err != nil {
			return models.CartItem{}, fmt.Errorf("update cart line: %w", err)
		}
		existing.Vehicle = vehicle
		return existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		if quantity > vehicle.Stock {
			return models.CartItem{}, ErrInsufficientStock
		}
		item := models.CartItem{
			UserID:    userID,
			VehicleID: vehicleID,
			Quantity:  quantity,
			Price:     vehicle.Price,
		}
		if err := s.carts.Create(ctx, &item); err != nil {
			return models.CartItem{}, fmt.Errorf("create cart line: %w", err)
		}
		item.Vehicle = vehicle
		return item, nil

	default:
		return models.CartItem{}, fmt.Errorf("find cart line: %w", err)
	}
}

// UpdateQuantity sets the quantity of an owned cart line. The captured price
// is not refreshed here; only adds re-read the price.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (models.CartItem, error) {
	item, err := s.carts.FindOwned(ctx, userID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CartItem{}, ErrNotFound
	}
	if err != nil {
		return models.CartItem{}, fmt.Errorf("find cart line: %w", err)
	}

	vehicle, err := s.vehicles.FindByID(ctx, item.VehicleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// The listing vanished under the cart line.
		return models.CartItem{}, ErrNotFound
	}
	if err != nil {
		return models.CartItem{}, fmt.Errorf("find vehicle: %w", err)
	}
	if quantity > vehicle.Stock {
		return models.CartItem{}, ErrInsufficientStock
	}

	item.Quantity = quantity
	if err := s.carts.Update(ctx, &item); err != nil {
		return models.CartItem{}, fmt.Errorf("update cart line: %w", err)
	}
	item.Vehicle = vehicle
	return item, nil
}

// RemoveItem deletes an owned cart line.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.carts.FindOwned(ctx, userID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find cart line: %w", err)
	}
	if err := s.carts.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}
