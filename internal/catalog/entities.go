package catalog

import (
	"strconv"
	"strings"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/listctl"
)

// Shared conflict texts.
const (
	MsgEmailTaken           = "Ya existe un usuario con ese correo"
	MsgBusinessNameTaken    = "Ya existe un negocio con ese nombre"
	MsgVehicleTypeInUse     = "No se puede eliminar el tipo de vehículo porque está en uso por uno o más vehículos."
	MsgProductInActiveCarts = "No se puede eliminar el producto porque está en carritos activos."
)

// PermAssignCourier guards the order assignment action.
const PermAssignCourier = "Asignar_Repartidor"

func statusFilter() FilterDef {
	return FilterDef{Param: "IsActive", Label: "Estado (activo/inactivo)", Kind: listctl.FilterBool}
}

// --- Users ---

func Users() *Resource[api.User] {
	return &Resource[api.User]{
		Key:   "users",
		Title: "Usuarios",
		Path:  "users",
		Perms: PermissionsFor("Usuarios"),
		Columns: []Column[api.User]{
			{Key: "name", Header: "Nombre", Width: 22, Render: func(u api.User) string { return u.Name }},
			{Key: "email", Header: "Correo", Width: 28, Render: func(u api.User) string { return u.Email }},
			{Key: "role", Header: "Rol", Width: 14, Render: func(u api.User) string { return dash(u.RoleName) }},
			{Key: "phone", Header: "Teléfono", Width: 14, Render: func(u api.User) string { return dash(u.Phone) }},
			{Key: "status", Header: "Estado", Width: 9, Render: func(u api.User) string { return activeLabel(u.IsActive) }},
		},
		SortMap:     listctl.SortMap{"name": "Name", "email": "Email", "role": "RoleName", "status": "IsActive"},
		DefaultSort: "name",
		Filters: []FilterDef{
			{Param: "RoleId", Label: "Rol", Kind: listctl.FilterText, Lookup: "roles"},
			statusFilter(),
		},
		Fields: []Field{
			{Key: "name", Label: "Nombre", Required: true},
			{Key: "email", Label: "Correo", Required: true},
			{Key: "phone", Label: "Teléfono"},
			{Key: "roleId", Label: "Rol", Kind: FieldSelect, Lookup: "roles", Required: true},
			{Key: "password", Label: "Contraseña", Kind: FieldPassword, CreateOnly: true},
		},
		Build: func(v Values) (any, error) {
			r := newFormReader(v)
			in := api.UserInput{
				Name:     r.str("name"),
				Email:    r.str("email"),
				Phone:    r.str("phone"),
				RoleID:   r.str("roleId"),
				Password: r.raw("password"),
			}
			return in, r.err()
		},
		Values: func(u api.User) Values {
			return Values{"name": u.Name, "email": u.Email, "phone": u.Phone, "roleId": u.RoleID}
		},
		Label:     func(u api.User) string { return u.Name },
		StatusOf:  func(u api.User) bool { return u.IsActive },
		SetStatus: func(u api.User, v bool) api.User { u.IsActive = v; return u },
		Messages: listctl.Messages{
			NotFound:        "Usuario no encontrado",
			Generic:         "Error al procesar el usuario",
			ConflictField:   "email",
			ConflictMessage: MsgEmailTaken,
			Created:         "Usuario creado correctamente",
			Updated:         "Usuario actualizado correctamente",
			Deleted:         "Usuario eliminado correctamente",
			StatusChanged:   "Estado del usuario actualizado",
		},
	}
}

// --- Couriers ---

func Couriers() *Resource[api.Courier] {
	return &Resource[api.Courier]{
		Key:   "couriers",
		Title: "Repartidores",
		Path:  "couriers",
		Perms: PermissionsFor("Repartidores"),
		Columns: []Column[api.Courier]{
			{Key: "name", Header: "Nombre", Width: 22, Render: func(c api.Courier) string { return c.Name }},
			{Key: "email", Header: "Correo", Width: 26, Render: func(c api.Courier) string { return c.Email }},
			{Key: "phone", Header: "Teléfono", Width: 14, Render: func(c api.Courier) string { return dash(c.Phone) }},
			{Key: "vehicle", Header: "Vehículo", Width: 12, Render: func(c api.Courier) string { return dash(c.VehicleName) }},
			{Key: "available", Header: "Disponible", Width: 10, Render: func(c api.Courier) string { return yesNo(c.IsAvailable) }},
			{Key: "status", Header: "Estado", Width: 9, Render: func(c api.Courier) string { return activeLabel(c.IsActive) }},
		},
		SortMap:     listctl.SortMap{"name": "Name", "email": "Email", "available": "IsAvailable", "status": "IsActive"},
		DefaultSort: "name",
		Filters: []FilterDef{
			{Param: "IsAvailable", Label: "Disponible (sí/no)", Kind: listctl.FilterBool},
			statusFilter(),
		},
		Fields: []Field{
			{Key: "name", Label: "Nombre", Required: true},
			{Key: "email", Label: "Correo", Required: true},
			{Key: "phone", Label: "Teléfono", Required: true},
			{Key: "vehicleId", Label: "Vehículo", Kind: FieldSelect, Lookup: "vehicles"},
			{Key: "password", Label: "Contraseña", Kind: FieldPassword, CreateOnly: true},
		},
		Build: func(v Values) (any, error) {
			r := newFormReader(v)
			in := api.CourierInput{
				Name:      r.str("name"),
				Email:     r.str("email"),
				Phone:     r.str("phone"),
				VehicleID: r.str("vehicleId"),
				Password:  r.raw("password"),
			}
			return in, r.err()
		},
		Values: func(c api.Courier) Values {
			return Values{"name": c.Name, "email": c.Email, "phone": c.Phone, "vehicleId": c.VehicleID}
		},
		Label:     func(c api.Courier) string { return c.Name },
		StatusOf:  func(c api.Courier) bool { return c.IsActive },
		SetStatus: func(c api.Courier, v bool) api.Courier { c.IsActive = v; return c },
		Messages: listctl.Messages{
			NotFound:        "Repartidor no encontrado",
			Generic:         "Error al procesar el repartidor",
			ConflictField:   "email",
			ConflictMessage: MsgEmailTaken,
			Created:         "Repartidor creado correctamente",
			Updated:         "Repartidor actualizado correctamente",
			Deleted:         "Repartidor eliminado correctamente",
			StatusChanged:   "Estado del repartidor actualizado",
		},
	}
}

// --- Businesses ---

func Businesses() *Resource[api.Business] {
	return &Resource[api.Business]{
		Key:   "businesses",
		Title: "Negocios",
		Path:  "businesses",
		Perms: PermissionsFor("Negocios"),
		Columns: []Column[api.Business]{
			{Key: "name", Header: "Nombre", Width: 24, Render: func(b api.Business) string { return b.Name }},
			{Key: "address", Header: "Dirección", Width: 28, Render: func(b api.Business) string { return b.Address }},
			{Key: "phone", Header: "Teléfono", Width: 14, Render: func(b api.Business) string { return dash(b.Phone) }},
			{Key: "logo", Header: "Logo", Width: 6, Render: func(b api.Business) string { return yesNo(b.LogoURL != "") }},
			{Key: "status", Header: "Estado", Width: 9, Render: func(b api.Business) string { return activeLabel(b.IsActive) }},
		},
		SortMap:     listctl.SortMap{"name": "Name", "address": "Address", "status": "IsActive"},
		DefaultSort: "name",
		Filters:     []FilterDef{statusFilter()},
		Fields: []Field{
			{Key: "name", Label: "Nombre", Required: true},
			{Key: "address", Label: "Dirección", Required: true},
			{Key: "phone", Label: "Teléfono"},
			{Key: "email", Label: "Correo"},
			{Key: "logoPath", Label: "Logo (ruta de imagen)", Kind: FieldFile},
		},
		Build: func(v Values) (any, error) {
			r := newFormReader(v)
			in := api.BusinessInput{
				Name:     r.str("name"),
				Address:  r.str("address"),
				Phone:    r.str("phone"),
				Email:    r.str("email"),
				LogoPath: r.str("logoPath"),
			}
			return in, r.err()
		},
		Values: func(b api.Business) Values {
			return Values{"name": b.Name, "address": b.Address, "phone": b.Phone, "email": b.Email}
		},
		Label:     func(b api.Business) string { return b.Name },
		StatusOf:  func(b api.Business) bool { return b.IsActive },
		SetStatus: func(b api.Business, v bool) api.Business { b.IsActive = v; return b },
		Messages: listctl.Messages{
			NotFound:        "Negocio no encontrado",
			Generic:         "Error al procesar el negocio",
			ConflictField:   "name",
			ConflictMessage: MsgBusinessNameTaken,
			Created:         "Negocio creado correctamente",
			Updated:         "Negocio actualizado correctamente",
			Deleted:         "Negocio eliminado correctamente",
			StatusChanged:   "Estado del negocio actualizado",
		},
	}
}

// --- Categories ---

func Categories() *Resource[api.Category] {
	return &Resource[api.Category]{
		Key:   "categories",
		Title: "Categorías",
		Path:  "categories",
		Perms: PermissionsFor("Categorias"),
		Columns: []Column[api.Category]{
			{Key: "name", Header: "Nombre", Width: 24, Render: func(c api.Category) string { return c.Name }},
			{Key: "description", Header: "Descripción", Width: 40, Render: func(c api.Category) string { return dash(c.Description) }},
			{Key: "status", Header: "Estado", Width: 9, Render: func(c api.Category) string { return activeLabel(c.IsActive) }},
		},
		SortMap:     listctl.SortMap{"name": "Name", "status": "IsActive"},
		DefaultSort: "name",
		Filters:     []FilterDef{statusFilter()},
		Fields: []Field{
			{Key: "name", Label: "Nombre", Required: true},
			{Key: "description", Label: "Descripción"},
		},
		Build: func(v Values) (any, error) {
			r := newFormReader(v)
			return api.CategoryInput{Name: r.str("name"), Description: r.str("description")}, r.err()
		},
		Values: func(c api.Category) Values {
			return Values{"name": c.Name, "description": c.Description}
		},
		Label:     func(c api.Category) string { return c.Name },
		StatusOf:  func(c api.Category) bool { return c.IsActive },
		SetStatus: func(c api.Category, v bool) api.Category { c.IsActive = v; return c },
		Messages: listctl.Messages{
			NotFound:        "Categoría no encontrada",
			Generic:         "Error al procesar la categoría",
			ConflictField:   "name",
			ConflictMessage: "Ya existe una categoría con ese nombre",
			DeleteConflict:  "No se puede eliminar la categoría porque tiene productos asociados.",
			Created:         "Categoría creada correctamente",
			Updated:         "Categoría actualizada correctamente",
			Deleted:         "Categoría eliminada correctamente",
			StatusChanged:   "Estado de la categoría actualizado",
		},
	}
}

// --- Products ---

func Products() *Resource[api.Product] {
	return &Resource[api.Product]{
		Key:   "products",
		Title: "Productos",
		Path:  "products",
		Perms: PermissionsFor("Productos"),
		Columns: []Column[api.Product]{
			{Key: "name", Header: "Nombre", Width: 22, Render: func(p api.Product) string { return p.Name }},
			{Key: "category", Header: "Categoría", Width: 14, Render: func(p api.Product) string { return dash(p.CategoryName) }},
			{Key: "business", Header: "Negocio", Width: 16, Render: func(p api.Product) string { return dash(p.BusinessName) }},
			{Key: "price", Header: "Precio", Width: 10, Render: func(p api.Product) string { return money(p.Price) }},
			{Key: "stock", Header: "Stock", Width: 6, Render: func(p api.Product) string { return strconv.Itoa(p.Stock) }},
			{Key: "status", Header: "Estado", Width: 9, Render: func(p api.Product) string { return activeLabel(p.IsActive) }},
		},
		SortMap: listctl.SortMap{
			"name":     "Name",
			"category": "CategoryName",
			"business": "BusinessName",
			"price":    "Price",
			"stock":    "Stock",
			"status":   "IsActive",
		},
		DefaultSort: "name",
		Filters: []FilterDef{
			{Param: "CategoryId", Label: "Categoría", Kind: listctl.FilterText, Lookup: "categories"},
			{Param: "BusinessId", Label: "Negocio", Kind: listctl.FilterText, Lookup: "businesses"},
			statusFilter(),
		},
		Fields: []Field{
			{Key: "name", Label: "Nombre", Required: true},
			{Key: "description", Label: "Descripción"},
			{Key: "price", Label: "Precio", Kind: FieldDecimal, Required: true},
			{Key: "stock", Label: "Stock", Kind: FieldInt},
			{Key: "categoryId", Label: "Categoría", Kind: FieldSelect, Lookup: "categories", Required: true},
			{Key: "businessId", Label: "Negocio", Kind: FieldSelect, Lookup: "businesses", Required: true},
			{Key: "imagePath", Label: "Imagen (ruta)", Kind: FieldFile},
		},
		Build: func(v Values) (any, error) {
			r := newFormReader(v)
			in := api.ProductInput{
				Name:        r.str("name"),
				Description: r.str("description"),
				Price:       r.decimal("price"),
				Stock:       r.integer("stock"),
				CategoryID:  r.str("categoryId"),
				BusinessID:  r.str("businessId"),
				ImagePath:   r.str("imagePath"),
			}
			return in, r.err()
		},
		Values: func(p api.Product) Values {
			return Values{
				"name":        p.Name,
				"description": p.Description,
				"price":       strconv.FormatFloat(p.Price, 'f', 2, 64),
				"stock":       strconv.Itoa(p.Stock),
				"categoryId":  p.CategoryID,
				"businessId":  p.BusinessID,
			}
		},
		Label:     func(p api.Product) string { return p.Name },
		StatusOf:  func(p api.Product) bool { return p.IsActive },
		SetStatus: func(p api.Product, v bool) api.Product { p.IsActive = v; return p },
		Messages: listctl.Messages{
			NotFound:        "Producto no encontrado",
			Generic:         "Error al procesar el producto",
			ConflictField:   "name",
			ConflictMessage: "Ya existe un producto con ese nombre en el negocio",
			DeleteConflict:  MsgProductInActiveCarts,
			Created:         "Producto creado correctamente",
			Updated:         "Producto actualizado correctamente",
			Deleted:         "Producto eliminado correctamente",
			StatusChanged:   "Estado del producto actualizado",
		},
	}
}

// --- Roles ---

func Roles() *Resource[api.Role] {
	return &Resource[api.Role]{
		Key:   "roles",
		Title: "Roles",
		Path:  "roles",
		Perms: PermissionsFor("Roles"),
		Columns: []Column[api.Role]{
			{Key: "name", Header: "Nombre", Width: 18, Render: func(r api.Role) string { return r.Name }},
			{Key: "description", Header: "Descripción", Width: 30, Render: func(r api.Role) string { return dash(r.Description) }},
			{Key: "permissions", Header: "Permisos", Width: 10, Render: func(r api.Role) string { return strconv.Itoa(len(r.Permissions)) }},
		},
		SortMap:     listctl.SortMap{"name": "Name"},
		DefaultSort: "name",
		Fields: []Field{
			{Key: "name", Label: "Nombre", Required: true},
			{Key: "description", Label: "Descripción"},
			{Key: "permissions", Label: "Permisos", Kind: FieldList, Hint: "códigos separados por coma"},
		},
		Build: func(v Values) (any, error) {
			r := newFormReader(v)
			perms := r.list("permissions")
			if perms == nil {
				perms = []string{}
			}
			return api.RoleInput{Name: r.str("name"), Description: r.str("description"), Permissions: perms}, r.err()
		},
		Values: func(role api.Role) Values {
			return Values{
				"name":        role.Name,
				"description": role.Description,
				"permissions": strings.Join(role.Permissions, ", "),
			}
		},
		Label: func(r api.Role) string { return r.Name },
		Messages: listctl.Messages{
			NotFound:        "Rol no encontrado",
			Generic:         "Error al procesar el rol",
			ConflictField:   "name",
			ConflictMessage: "Ya existe un rol con ese nombre",
			DeleteConflict:  "No se puede eliminar el rol porque tiene usuarios asignados.",
			Created:         "Rol creado correctamente",
			Updated:         "Rol actualizado correctamente",
			Deleted:         "Rol eliminado correctamente",
		},
	}
}

// --- Orders ---

// OrderStatusChoices are the filter choices for order status.
var OrderStatusChoices = []api.Option{
	{ID: strconv.Itoa(int(api.OrderInProcess)), Label: api.OrderInProcess.String()},
	{ID: strconv.Itoa(int(api.OrderAssigned)), Label: api.OrderAssigned.String()},
	{ID: strconv.Itoa(int(api.OrderDelivered)), Label: api.OrderDelivered.String()},
	{ID: strconv.Itoa(int(api.OrderCancelled)), Label: api.OrderCancelled.String()},
}

// AssignCourierAction is the order row action, shown only for orders still
// in process.
func AssignCourierAction() listctl.Action[api.Order] {
	return listctl.Action[api.Order]{
		ID:         ActionAssign,
		Label:      "Asignar repartidor",
		Key:        "a",
		Permission: PermAssignCourier,
		Kind:       listctl.MutationUpdate,
		When:       func(o api.Order) bool { return o.Status == api.OrderInProcess },
	}
}

func Orders() *Resource[api.Order] {
	return &Resource[api.Order]{
		Key:   "orders",
		Title: "Pedidos",
		Path:  "orders",
		Perms: PermissionsFor("Pedidos"),
		Columns: []Column[api.Order]{
			{Key: "code", Header: "Código", Width: 10, Render: func(o api.Order) string { return o.Code }},
			{Key: "customer", Header: "Cliente", Width: 18, Render: func(o api.Order) string { return o.CustomerName }},
			{Key: "business", Header: "Negocio", Width: 16, Render: func(o api.Order) string { return dash(o.BusinessName) }},
			{Key: "courier", Header: "Repartidor", Width: 16, Render: func(o api.Order) string { return dash(o.CourierName) }},
			{Key: "status", Header: "Estado", Width: 11, Render: func(o api.Order) string { return o.Status.String() }},
			{Key: "total", Header: "Total", Width: 10, Render: func(o api.Order) string { return money(o.Total) }},
			{Key: "createdAt", Header: "Fecha", Width: 16, Render: func(o api.Order) string { return date(o.CreatedAt) }},
		},
		SortMap: listctl.SortMap{
			"code":      "Code",
			"customer":  "CustomerName",
			"status":    "Status",
			"total":     "Total",
			"createdAt": "CreatedAt",
		},
		DefaultSort: "createdAt",
		Filters: []FilterDef{
			{Param: "Status", Label: "Estado", Kind: listctl.FilterIntList, Choices: OrderStatusChoices},
			{Param: "BusinessId", Label: "Negocio", Kind: listctl.FilterText, Lookup: "businesses"},
		},
		Label:    func(o api.Order) string { return o.Code },
		ReadOnly: true,
		NoDelete: true,
		Extra:    []listctl.Action[api.Order]{AssignCourierAction()},
		Messages: listctl.Messages{
			NotFound:      "Pedido no encontrado",
			Generic:       "Error al procesar el pedido",
			Updated:       "Repartidor asignado correctamente",
			StatusChanged: "Estado del pedido actualizado",
		},
	}
}

// --- Vehicle Types ---

func VehicleTypes() *Resource[api.VehicleType] {
	return &Resource[api.VehicleType]{
		Key:   "vehicle-types",
		Title: "Tipos de vehículo",
		Path:  "vehicle-types",
		Perms: PermissionsFor("TiposVehiculo"),
		Columns: []Column[api.VehicleType]{
			{Key: "name", Header: "Nombre", Width: 20, Render: func(v api.VehicleType) string { return v.Name }},
			{Key: "description", Header: "Descripción", Width: 40, Render: func(v api.VehicleType) string { return dash(v.Description) }},
		},
		SortMap:     listctl.SortMap{"name": "Name"},
		DefaultSort: "name",
		Fields: []Field{
			{Key: "name", Label: "Nombre", Required: true},
			{Key: "description", Label: "Descripción"},
		},
		Build: func(v Values) (any, error) {
			r := newFormReader(v)
			return api.VehicleTypeInput{Name: r.str("name"), Description: r.str("description")}, r.err()
		},
		Values: func(v api.VehicleType) Values {
			return Values{"name": v.Name, "description": v.Description}
		},
		Label: func(v api.VehicleType) string { return v.Name },
		Messages: listctl.Messages{
			NotFound:        "Tipo de vehículo no encontrado",
			Generic:         "Error al procesar el tipo de vehículo",
			ConflictField:   "name",
			ConflictMessage: "Ya existe un tipo de vehículo con ese nombre",
			DeleteConflict:  MsgVehicleTypeInUse,
			Created:         "Tipo de vehículo creado correctamente",
			Updated:         "Tipo de vehículo actualizado correctamente",
			Deleted:         "Tipo de vehículo eliminado correctamente",
		},
	}
}

// --- Vehicles ---

func Vehicles() *Resource[api.Vehicle] {
	return &Resource[api.Vehicle]{
		Key:   "vehicles",
		Title: "Vehículos",
		Path:  "vehicles",
		Perms: PermissionsFor("Vehiculos"),
		Columns: []Column[api.Vehicle]{
			{Key: "plate", Header: "Placa", Width: 10, Render: func(v api.Vehicle) string { return v.Plate }},
			{Key: "brand", Header: "Marca", Width: 14, Render: func(v api.Vehicle) string { return v.Brand }},
			{Key: "model", Header: "Modelo", Width: 14, Render: func(v api.Vehicle) string { return v.Model }},
			{Key: "year", Header: "Año", Width: 6, Render: func(v api.Vehicle) string { return strconv.Itoa(v.Year) }},
			{Key: "type", Header: "Tipo", Width: 14, Render: func(v api.Vehicle) string { return dash(v.VehicleTypeName) }},
			{Key: "status", Header: "Estado", Width: 9, Render: func(v api.Vehicle) string { return activeLabel(v.IsActive) }},
		},
		SortMap: listctl.SortMap{
			"plate":  "Plate",
			"brand":  "Brand",
			"year":   "Year",
			"type":   "VehicleTypeName",
			"status": "IsActive",
		},
		DefaultSort: "plate",
		Filters: []FilterDef{
			{Param: "VehicleTypeId", Label: "Tipo", Kind: listctl.FilterText, Lookup: "vehicle-types"},
			statusFilter(),
		},
		Fields: []Field{
			{Key: "plate", Label: "Placa", Required: true},
			{Key: "brand", Label: "Marca", Required: true},
			{Key: "model", Label: "Modelo", Required: true},
			{Key: "year", Label: "Año", Kind: FieldInt, Required: true},
			{Key: "vehicleTypeId", Label: "Tipo", Kind: FieldSelect, Lookup: "vehicle-types", Required: true},
		},
		Build: func(v Values) (any, error) {
			r := newFormReader(v)
			in := api.VehicleInput{
				Plate:         strings.ToUpper(r.str("plate")),
				Brand:         r.str("brand"),
				Model:         r.str("model"),
				Year:          r.integer("year"),
				VehicleTypeID: r.str("vehicleTypeId"),
			}
			return in, r.err()
		},
		Values: func(v api.Vehicle) Values {
			return Values{
				"plate":         v.Plate,
				"brand":         v.Brand,
				"model":         v.Model,
				"year":          strconv.Itoa(v.Year),
				"vehicleTypeId": v.VehicleTypeID,
			}
		},
		Label:     func(v api.Vehicle) string { return v.Plate },
		StatusOf:  func(v api.Vehicle) bool { return v.IsActive },
		SetStatus: func(v api.Vehicle, active bool) api.Vehicle { v.IsActive = active; return v },
		Messages: listctl.Messages{
			NotFound:        "Vehículo no encontrado",
			Generic:         "Error al procesar el vehículo",
			ConflictField:   "plate",
			ConflictMessage: "Ya existe un vehículo con esa placa",
			DeleteConflict:  "No se puede eliminar el vehículo porque está asignado a un repartidor.",
			Created:         "Vehículo creado correctamente",
			Updated:         "Vehículo actualizado correctamente",
			Deleted:         "Vehículo eliminado correctamente",
			StatusChanged:   "Estado del vehículo actualizado",
		},
	}
}

// --- Shipping Costs ---

func ShippingCosts() *Resource[api.ShippingCost] {
	return &Resource[api.ShippingCost]{
		Key:   "shipping-costs",
		Title: "Costos de envío",
		Path:  "shipping-costs",
		Perms: PermissionsFor("CostosEnvio"),
		Columns: []Column[api.ShippingCost]{
			{Key: "name", Header: "Nombre", Width: 18, Render: func(s api.ShippingCost) string { return s.Name }},
			{Key: "min", Header: "Desde", Width: 10, Render: func(s api.ShippingCost) string { return km(s.MinDistanceKm) }},
			{Key: "max", Header: "Hasta", Width: 10, Render: func(s api.ShippingCost) string { return km(s.MaxDistanceKm) }},
			{Key: "cost", Header: "Costo", Width: 10, Render: func(s api.ShippingCost) string { return money(s.Cost) }},
			{Key: "status", Header: "Estado", Width: 9, Render: func(s api.ShippingCost) string { return activeLabel(s.IsActive) }},
		},
		SortMap: listctl.SortMap{
			"name":   "Name",
			"min":    "MinDistanceKm",
			"max":    "MaxDistanceKm",
			"cost":   "Cost",
			"status": "IsActive",
		},
		DefaultSort: "min",
		Filters:     []FilterDef{statusFilter()},
		Fields: []Field{
			{Key: "name", Label: "Nombre", Required: true},
			{Key: "minDistanceKm", Label: "Distancia mínima (km)", Kind: FieldDecimal, Required: true},
			{Key: "maxDistanceKm", Label: "Distancia máxima (km)", Kind: FieldDecimal, Required: true},
			{Key: "cost", Label: "Costo", Kind: FieldDecimal, Required: true},
		},
		Build: func(v Values) (any, error) {
			r := newFormReader(v)
			in := api.ShippingCostInput{
				Name:          r.str("name"),
				MinDistanceKm: r.decimal("minDistanceKm"),
				MaxDistanceKm: r.decimal("maxDistanceKm"),
				Cost:          r.decimal("cost"),
			}
			return in, r.err()
		},
		Values: func(s api.ShippingCost) Values {
			return Values{
				"name":          s.Name,
				"minDistanceKm": strconv.FormatFloat(s.MinDistanceKm, 'f', -1, 64),
				"maxDistanceKm": strconv.FormatFloat(s.MaxDistanceKm, 'f', -1, 64),
				"cost":          strconv.FormatFloat(s.Cost, 'f', -1, 64),
			}
		},
		Label:     func(s api.ShippingCost) string { return s.Name },
		StatusOf:  func(s api.ShippingCost) bool { return s.IsActive },
		SetStatus: func(s api.ShippingCost, v bool) api.ShippingCost { s.IsActive = v; return s },
		Messages: listctl.Messages{
			NotFound:        "Costo de envío no encontrado",
			Generic:         "Error al procesar el costo de envío",
			ConflictField:   "minDistanceKm",
			ConflictMessage: "El rango de distancia se superpone con otro costo",
			Created:         "Costo de envío creado correctamente",
			Updated:         "Costo de envío actualizado correctamente",
			Deleted:         "Costo de envío eliminado correctamente",
			StatusChanged:   "Estado del costo de envío actualizado",
		},
	}
}
