package mockapi

// resourceRule describes how the mock backend treats one collection.
type resourceRule struct {
	// noun is the permission suffix (Ver_<noun>, Crear_<noun>, ...).
	noun string
	// unique is the field that must not repeat (case-insensitive).
	unique string
	// status enables PUT /{resource}/{id}/status.
	status bool
	// fileField maps a multipart file part to the stored URL field.
	fileField map[string]string
	// numeric lists fields parsed as numbers from multipart forms.
	numeric map[string]bool
	// readOnly collections have no create, update, or delete.
	readOnly bool
}

var rules = map[string]resourceRule{
	"users":      {noun: "Usuarios", unique: "email", status: true},
	"couriers":   {noun: "Repartidores", unique: "email", status: true},
	"businesses": {noun: "Negocios", unique: "name", status: true, fileField: map[string]string{"logo": "logoUrl"}},
	"categories": {noun: "Categorias", unique: "name", status: true},
	"products": {
		noun:      "Productos",
		unique:    "name",
		status:    true,
		fileField: map[string]string{"image": "imageUrl"},
		numeric:   map[string]bool{"price": true, "stock": true},
	},
	"roles":          {noun: "Roles", unique: "name"},
	"orders":         {noun: "Pedidos", readOnly: true},
	"vehicle-types":  {noun: "TiposVehiculo", unique: "name"},
	"vehicles":       {noun: "Vehiculos", unique: "plate", status: true},
	"shipping-costs": {noun: "CostosEnvio", unique: "name", status: true},
}

// reference is a foreign key that blocks deletion of its target.
type reference struct {
	from  string
	field string
}

// deleteGuards lists, per collection, the references that make a delete 409.
var deleteGuards = map[string][]reference{
	"vehicle-types": {{from: "vehicles", field: "vehicleTypeId"}},
	"categories":    {{from: "products", field: "categoryId"}},
	"roles":         {{from: "users", field: "roleId"}},
	"vehicles":      {{from: "couriers", field: "vehicleId"}},
	"businesses":    {{from: "products", field: "businessId"}},
}

// nameSources resolves <x>Id fields into display names.
var nameSources = map[string]struct {
	collection string
	label      string
	target     string
}{
	"roleId":        {"roles", "name", "roleName"},
	"vehicleId":     {"vehicles", "plate", "vehicleName"},
	"categoryId":    {"categories", "name", "categoryName"},
	"businessId":    {"businesses", "name", "businessName"},
	"vehicleTypeId": {"vehicle-types", "name", "vehicleTypeName"},
	"courierId":     {"couriers", "name", "courierName"},
}

// AllPermissions returns every permission code the mock understands.
func AllPermissions() []string {
	var out []string
	for _, r := range rules {
		for _, verb := range []string{"Ver_", "Crear_", "Editar_", "Eliminar_", "Estado_"} {
			out = append(out, verb+r.noun)
		}
	}
	return append(out, "Asignar_Repartidor")
}
