package api

import (
	"strconv"
	"time"
)

// --- Auth ---

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token and the flattened permission codes.
type LoginResponse struct {
	Token       string   `json:"token"`
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
}

// --- Users ---

// User is a backoffice staff account.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	RoleID   string `json:"roleId,omitempty"`
	RoleName string `json:"roleName,omitempty"`
	IsActive bool   `json:"isActive"`
}

func (u User) EntityID() string { return u.ID }

// UserInput is the create/update payload for users.
type UserInput struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
	RoleID   string `json:"roleId" validate:"required"`
}

// --- Couriers ---

// Courier delivers orders.
type Courier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	VehicleID   string `json:"vehicleId,omitempty"`
	VehicleName string `json:"vehicleName,omitempty"`
	IsAvailable bool   `json:"isAvailable"`
	IsActive    bool   `json:"isActive"`
}

func (c Courier) EntityID() string { return c.ID }

// CourierInput is the create/update payload for couriers.
type CourierInput struct {
	Name      string `json:"name" validate:"required,min=2,max=80"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=7,max=20"`
	VehicleID string `json:"vehicleId,omitempty"`
	Password  string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// --- Businesses ---

// Business is a merchant selling through the platform.
type Business struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	LogoURL  string `json:"logoUrl,omitempty"`
	IsActive bool   `json:"isActive"`
}

func (b Business) EntityID() string { return b.ID }

// BusinessInput is the create/update payload for businesses.
type BusinessInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Address  string `json:"address" validate:"required"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	LogoPath string `json:"-" validate:"omitempty,file"`
}

func (in BusinessInput) HasFiles() bool { return in.LogoPath != "" }

func (in BusinessInput) FormFields() map[string]string {
	return map[string]string{
		"name":    in.Name,
		"address": in.Address,
		"phone":   in.Phone,
		"email":   in.Email,
	}
}

func (in BusinessInput) FormFiles() []FormFile {
	return []FormFile{{Field: "logo", Path: in.LogoPath}}
}

// --- Categories ---

// Category groups products.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

func (c Category) EntityID() string { return c.ID }

// CategoryInput is the create/update payload for categories.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=60"`
	Description string `json:"description,omitempty" validate:"max=250"`
}

// --- Products ---

// Product is an item a business sells.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName,omitempty"`
	BusinessID   string  `json:"businessId"`
	BusinessName string  `json:"businessName,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	IsActive     bool    `json:"isActive"`
}

func (p Product) EntityID() string { return p.ID }

// ProductInput is the create/update payload for products.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description,omitempty" validate:"max=500"`
	Price       float64 `json:"price" validate:"gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	CategoryID  string  `json:"categoryId" validate:"required"`
	BusinessID  string  `json:"businessId" validate:"required"`
	ImagePath   string  `json:"-" validate:"omitempty,file"`
}

func (in ProductInput) HasFiles() bool { return in.ImagePath != "" }

func (in ProductInput) FormFields() map[string]string {
	return map[string]string{
		"name":        in.Name,
		"description": in.Description,
		"price":       strconv.FormatFloat(in.Price, 'f', 2, 64),
		"stock":       strconv.Itoa(in.Stock),
		"categoryId":  in.CategoryID,
		"businessId":  in.BusinessID,
	}
}

func (in ProductInput) FormFiles() []FormFile {
	return []FormFile{{Field: "image", Path: in.ImagePath}}
}

// --- Roles ---

// Role bundles permission codes.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
}

func (r Role) EntityID() string { return r.ID }

// RoleInput is the create/update payload for roles.
type RoleInput struct {
	Name        string   `json:"name" validate:"required,min=2,max=50"`
	Description string   `json:"description,omitempty" validate:"max=250"`
	Permissions []string `json:"permissions" validate:"dive,required"`
}

// --- Orders ---

// OrderStatus mirrors the backend enum values.
type OrderStatus int

const (
	OrderInProcess OrderStatus = iota
	OrderAssigned
	OrderDelivered
	OrderCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderInProcess:
		return "En proceso"
	case OrderAssigned:
		return "Asignado"
	case OrderDelivered:
		return "Entregado"
	case OrderCancelled:
		return "Cancelado"
	}
	return "Desconocido"
}

// Order is a customer order.
type Order struct {
	ID           string      `json:"id"`
	Code         string      `json:"code"`
	CustomerName string      `json:"customerName"`
	Address      string      `json:"address,omitempty"`
	BusinessID   string      `json:"businessId,omitempty"`
	BusinessName string      `json:"businessName,omitempty"`
	CourierID    string      `json:"courierId,omitempty"`
	CourierName  string      `json:"courierName,omitempty"`
	Status       OrderStatus `json:"status"`
	Total        float64     `json:"total"`
	CreatedAt    time.Time   `json:"createdAt"`
}

func (o Order) EntityID() string { return o.ID }

// AssignCourierInput is the body of PUT /orders/{id}/assign.
type AssignCourierInput struct {
	CourierID string `json:"courierId" validate:"required"`
}

// --- Vehicles ---

// VehicleType classifies vehicles (motorbike, van, ...).
type VehicleType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (v VehicleType) EntityID() string { return v.ID }

// VehicleTypeInput is the create/update payload for vehicle types.
type VehicleTypeInput struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description,omitempty" validate:"max=250"`
}

// Vehicle is a courier vehicle.
type Vehicle struct {
	ID              string `json:"id"`
	Plate           string `json:"plate"`
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	Year            int    `json:"year"`
	VehicleTypeID   string `json:"vehicleTypeId"`
	VehicleTypeName string `json:"vehicleTypeName,omitempty"`
	IsActive        bool   `json:"isActive"`
}

func (v Vehicle) EntityID() string { return v.ID }

// VehicleInput is the create/update payload for vehicles.
type VehicleInput struct {
	Plate         string `json:"plate" validate:"required,min=5,max=10"`
	Brand         string `json:"brand" validate:"required"`
	Model         string `json:"model" validate:"required"`
	Year          int    `json:"year" validate:"gte=1990,lte=2100"`
	VehicleTypeID string `json:"vehicleTypeId" validate:"required"`
}

// --- Shipping Costs ---

// ShippingCost is a distance band price.
type ShippingCost struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MinDistanceKm float64 `json:"minDistanceKm"`
	MaxDistanceKm float64 `json:"maxDistanceKm"`
	Cost          float64 `json:"cost"`
	IsActive      bool    `json:"isActive"`
}

func (s ShippingCost) EntityID() string { return s.ID }

// ShippingCostInput is the create/update payload for shipping costs.
type ShippingCostInput struct {
	Name          string  `json:"name" validate:"required,min=2,max=60"`
	MinDistanceKm float64 `json:"minDistanceKm" validate:"gte=0"`
	MaxDistanceKm float64 `json:"maxDistanceKm" validate:"gtfield=MinDistanceKm"`
	Cost          float64 `json:"cost" validate:"gte=0"`
}

// --- Lookups ---

// Option is an id/label pair for select fields.
type Option struct {
	ID    string
	Label string
}
