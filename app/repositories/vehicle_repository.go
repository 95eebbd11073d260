package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/pkg/paginate"
)

// CatalogFilter is the listing filter specification. Zero values mean
// "no filter" for the optional fields.
type CatalogFilter struct {
	Brand    string
	BodyType string
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal // zero means unbounded
	Year     int
	Search   string // case-insensitive substring across name/brand/model
	Sort     string // validated against sortColumns
	Page     int
	PerPage  int
}

// sortColumns maps the public sort keys to ORDER BY clauses.
var sortColumns = map[string]string{
	"price_asc":  "price asc",
	"price_desc": "price desc",
	"year_desc":  "year desc",
	"rating":     "avg_rating desc",
	"popular":    "view_count desc",
	"newest":     "created_at desc",
}

// VehicleRepository handles database operations for Vehicle.
type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *VehicleRepository) WithTx(tx *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: tx}
}

// List returns one page of vehicles matching the filter plus pagination
// metadata. Unknown body types and sort keys are ignored rather than
// rejected.
func (r *VehicleRepository) List(ctx context.Context, f CatalogFilter) ([]models.Vehicle, paginate.Pagination, error) {
	q := r.db.WithContext(ctx).Model(&models.Vehicle{})

	if f.Brand != "" {
		q = q.Where("brand = ?", f.Brand)
	}
	if models.ValidBodyType(f.BodyType) {
		q = q.Where("body_type = ?", f.BodyType)
	}
	if f.MinPrice.IsPositive() {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice.IsPositive() {
		q = q.Where("price <= ?", f.MaxPrice)
	}
	if f.Year > 0 {
		q = q.Where("year = ?", f.Year)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR brand LIKE ? OR model LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, paginate.Pagination{}, err
	}

	order, ok := sortColumns[f.Sort]
	if !ok {
		order = sortColumns["newest"]
	}

	p := paginate.New(f.Page, f.PerPage, total)
	var vehicles []models.Vehicle
	err := q.Order(order).
		Scopes(paginate.Scope(p.Page, p.PerPage)).
		Find(&vehicles).Error
	return vehicles, p, err
}

// FindByID looks up a vehicle by primary key.
func (r *VehicleRepository) FindByID(ctx context.Context, id uint) (models.Vehicle, error) {
	var v models.Vehicle
	err := r.db.WithContext(ctx).First(&v, id).Error
	return v, err
}

// IncrementViews bumps the view counter by 1 without reading the row first.
// The counter is at-least-once, not exact.
func (r *VehicleRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// editableColumns are the listing fields admins may change. Derived columns
// (avg_rating, view_count) and timestamps stay untouched on update.
var editableColumns = []string{
	"name", "brand", "model", "year", "price", "color",
	"body_type", "images", "description", "features", "stock", "available",
}

// Update writes the admin-editable columns of an existing vehicle. Selecting
// the columns explicitly means zero values (stock 0, available false) are
// written too, while avg_rating and view_count keep their stored values.
func (r *VehicleRepository) Update(ctx context.Context, v *models.Vehicle) error {
	return r.db.WithContext(ctx).Model(v).
		Select(editableColumns).
		Updates(v).Error
}

// Delete removes a vehicle together with any open cart lines that reference
// it, so no cart is left holding a ghost line. Cart lines are hard deleted
// for the same unique-index reason as CartRepository. Order lines are the
// caller's concern; deletion is refused upstream while any exist.
func (r *VehicleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("vehicle_id = ?", id).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Vehicle{}, id).Error
	})
}

// HasOrderItems reports whether any order line references the vehicle.
func (r *VehicleRepository) HasOrderItems(ctx context.Context, vehicleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&count).Error
	return count > 0, err
}

// DecrementStock conditionally takes qty units of stock. Returns false when
// the vehicle has fewer than qty units left, in which case nothing changes.
// The single conditional UPDATE makes concurrent checkouts safe without
// relying on the isolation level.
func (r *VehicleRepository) DecrementStock(ctx context.Context, vehicleID uint, qty int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ? AND stock >= ?", vehicleID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// RestoreStock returns qty units of stock to the vehicle.
func (r *VehicleRepository) RestoreStock(ctx context.Context, vehicleID uint, qty int) error {
	return r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ?", vehicleID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
}

// SetAvgRating writes the recomputed average rating.
func (r *VehicleRepository) SetAvgRating(ctx context.Context, vehicleID uint, avg float64) error {
	return r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ?", vehicleID).
		UpdateColumn("avg_rating", avg).Error
}
