package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/app/repositories"
	"github.com/shashiranjanraj/showroom/app/services"
	"github.com/shashiranjanraj/showroom/pkg/bind"
	"github.com/shashiranjanraj/showroom/pkg/response"
)

type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// Index lists vehicles. Malformed filter values are treated as "no filter"
// rather than rejected.
func (c *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repositories.CatalogFilter{
		Brand:    q.Get("brand"),
		BodyType: q.Get("type"),
		Year:     queryInt(r, "year", 0),
		Search:   q.Get("q"),
		Sort:     q.Get("sort"),
		Page:     queryInt(r, "page", 1),
	}
	if min, err := decimal.NewFromString(q.Get("min_price")); err == nil {
		filter.MinPrice = min
	}
	if max, err := decimal.NewFromString(q.Get("max_price")); err == nil {
		filter.MaxPrice = max
	}

	page, err := c.catalog.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Paginated(w, page.Items, page.Pagination)
}

// Show returns one vehicle and counts the view.
func (c *CatalogController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	vehicle, err := c.catalog.GetVehicle(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, vehicle)
}

type vehicleInput struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Brand       string   `json:"brand" validate:"required,max=100"`
	Model       string   `json:"model" validate:"required,max=100"`
	Year        int      `json:"year" validate:"required,gte=1950,lte=2100"`
	Price       string   `json:"price" validate:"required,numeric"`
	Color       string   `json:"color" validate:"nullable,max=50"`
	BodyType    string   `json:"body_type" validate:"required,in=SUV,SEDAN,COUPE,TRUCK,VAN"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Available   bool     `json:"available"`
}

func (in vehicleInput) toModel() (models.Vehicle, error) {
	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		return models.Vehicle{}, err
	}
	return models.Vehicle{
		Name:        in.Name,
		Brand:       in.Brand,
		ModelName:   in.Model,
		Year:        in.Year,
		Price:       price,
		Color:       in.Color,
		BodyType:    in.BodyType,
		Images:      in.Images,
		Description: in.Description,
		Features:    in.Features,
		Stock:       in.Stock,
		Available:   in.Available,
	}, nil
}

// Store creates a vehicle. Admin route.
func (c *CatalogController) Store(w http.ResponseWriter, r *http.Request) {
	var in vehicleInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	vehicle, err := in.toModel()
	if err != nil {
		response.ValidationError(w, map[string]string{"price": "The price must be a number."})
		return
	}
	if err := c.catalog.CreateVehicle(r.Context(), &vehicle); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Created(w, vehicle)
}

// Update replaces a vehicle's fields. Admin route.
func (c *CatalogController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var in vehicleInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	vehicle, err := in.toModel()
	if err != nil {
		response.ValidationError(w, map[string]string{"price": "The price must be a number."})
		return
	}
	vehicle.ID = id
	if err := c.catalog.UpdateVehicle(r.Context(), &vehicle); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, vehicle)
}

// Destroy removes a vehicle unless orders reference it. Admin route.
func (c *CatalogController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	if err := c.catalog.DeleteVehicle(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.NoContent(w)
}
