package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/showroom/app/services"
	"github.com/shashiranjanraj/showroom/pkg/bind"
	"github.com/shashiranjanraj/showroom/pkg/middleware"
	"github.com/shashiranjanraj/showroom/pkg/response"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

func (c *CartController) Index(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	items, err := c.cart.GetCart(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, items)
}

type addItemInput struct {
	VehicleID uint `json:"vehicle_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

func (c *CartController) Store(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)

	var in addItemInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.cart.AddItem(r.Context(), userID, in.VehicleID, in.Quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Created(w, item)
}

type updateQuantityInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

func (c *CartController) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	itemID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var in updateQuantityInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.cart.UpdateQuantity(r.Context(), userID, itemID, in.Quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, item)
}

func (c *CartController) Destroy(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	itemID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	if err := c.cart.RemoveItem(r.Context(), userID, itemID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.NoContent(w)
}
