package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/showroom/app/services"
	"github.com/shashiranjanraj/showroom/pkg/bind"
	"github.com/shashiranjanraj/showroom/pkg/middleware"
	"github.com/shashiranjanraj/showroom/pkg/response"
)

type OrderController struct {
	orders   *services.OrderService
	pageSize int
}

func NewOrderController(orders *services.OrderService, pageSize int) *OrderController {
	return &OrderController{orders: orders, pageSize: pageSize}
}

type placeOrderInput struct {
	ShippingName    string `json:"shipping_name" validate:"required,max=255"`
	ShippingPhone   string `json:"shipping_phone" validate:"required,max=50"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
	Note            string `json:"note"`
	PaymentMethod   string `json:"payment_method" validate:"required,in=CARD,BANK_TRANSFER,CASH_ON_DELIVERY"`
}

// Store places an order from the caller's cart.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)

	var in placeOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.PlaceOrder(r.Context(), userID, services.ShippingInfo{
		Name:    in.ShippingName,
		Phone:   in.ShippingPhone,
		Address: in.ShippingAddress,
		Note:    in.Note,
	}, in.PaymentMethod)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Created(w, order)
}

// Index lists the caller's orders, newest first.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	orders, p, err := c.orders.ListMine(r.Context(), userID, queryInt(r, "page", 1), c.pageSize)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Paginated(w, orders, p)
}

// Show returns one order. Non-owners get a 404, admins see everything.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	role, _ := middleware.RoleFromCtx(r)
	orderID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	order, err := c.orders.GetOwned(r.Context(), userID, role, orderID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, order)
}

// Cancel cancels a PENDING or CONFIRMED order and restores stock.
func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	role, _ := middleware.RoleFromCtx(r)
	orderID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	order, err := c.orders.Cancel(r.Context(), userID, role, orderID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, order)
}

// AdminIndex lists every order. Admin route.
func (c *OrderController) AdminIndex(w http.ResponseWriter, r *http.Request) {
	orders, p, err := c.orders.ListAll(r.Context(), queryInt(r, "page", 1), c.pageSize)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Paginated(w, orders, p)
}

type setStatusInput struct {
	Status        string `json:"status" validate:"required,in=PENDING,CONFIRMED,SHIPPED,DELIVERED"`
	PaymentStatus string `json:"payment_status" validate:"required,in=PENDING,PAID,FAILED,REFUNDED"`
}

// AdminSetStatus advances an order along the legal transition edges. Admin
// route; cancellation goes through Cancel so stock is restored.
func (c *OrderController) AdminSetStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var in setStatusInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.AdminSetStatus(r.Context(), orderID, in.Status, in.PaymentStatus)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, order)
}
