package mockapi

import (
	"fmt"
	"time"
)

func (s *Server) seedAdmin() {
	if err := s.AddAccount("Administrador", AdminEmail, AdminPassword, AllPermissions()); err != nil {
		panic(fmt.Sprintf("mockapi: seed admin: %v", err))
	}
}

// seedCatalog loads a small, consistent data set. Runs before the server
// is shared, so it does not lock.
func (s *Server) seedCatalog() {
	put := func(name string, r record) string {
		id := newID()
		s.resolveNames(r)
		s.data[name].put(id, r)
		return id
	}

	moto := put("vehicle-types", record{"name": "Motocicleta", "description": "Entregas urbanas"})
	van := put("vehicle-types", record{"name": "Furgoneta", "description": "Pedidos grandes"})
	put("vehicle-types", record{"name": "Bicicleta", "description": "Zona centro"})

	v1 := put("vehicles", record{"plate": "ABC123", "brand": "Honda", "model": "Wave", "year": 2021, "vehicleTypeId": moto, "isActive": true})
	put("vehicles", record{"plate": "XYZ789", "brand": "Renault", "model": "Kangoo", "year": 2019, "vehicleTypeId": van, "isActive": true})

	c1 := put("couriers", record{"name": "Carlos Ruiz", "email": "carlos@reparto.test", "phone": "5551234567", "vehicleId": v1, "isAvailable": true, "isActive": true})
	put("couriers", record{"name": "Lucía Gómez", "email": "lucia@reparto.test", "phone": "5559876543", "isAvailable": false, "isActive": true})

	food := put("categories", record{"name": "Comida rápida", "description": "Hamburguesas y más", "isActive": true})
	drinks := put("categories", record{"name": "Bebidas", "description": "Frías y calientes", "isActive": true})
	put("categories", record{"name": "Postres", "isActive": false})

	burger := put("businesses", record{"name": "Burger Palace", "address": "Av. Central 100", "phone": "5550001111", "email": "hola@burger.test", "isActive": true})
	cafe := put("businesses", record{"name": "Café Aroma", "address": "Calle 5 #23", "phone": "5550002222", "isActive": true})

	classic := put("products", record{"name": "Hamburguesa clásica", "price": 8.5, "stock": 40, "categoryId": food, "businessId": burger, "isActive": true})
	put("products", record{"name": "Papas fritas", "price": 3.25, "stock": 100, "categoryId": food, "businessId": burger, "isActive": true})
	put("products", record{"name": "Capuchino", "price": 2.75, "stock": 60, "categoryId": drinks, "businessId": cafe, "isActive": true})
	s.carts[classic] = true

	put("shipping-costs", record{"name": "Zona 1", "minDistanceKm": 0, "maxDistanceKm": 3, "cost": 1.5, "isActive": true})
	put("shipping-costs", record{"name": "Zona 2", "minDistanceKm": 3, "maxDistanceKm": 8, "cost": 3, "isActive": true})

	support := put("roles", record{"name": "Soporte", "description": "Solo lectura", "permissions": []any{"Ver_Pedidos", "Ver_Usuarios"}})
	put("users", record{"name": "Sofía Herrera", "email": "sofia@backoffice.test", "phone": "5553334444", "roleId": support, "isActive": true})

	created := nowUTC()
	for i, o := range []record{
		{"customerName": "Ana Torres", "address": "Calle 8 #10", "businessId": burger, "status": 0, "total": 15.25},
		{"customerName": "Luis Pérez", "address": "Av. Norte 45", "businessId": cafe, "status": 0, "total": 5.5},
		{"customerName": "Marta Díaz", "address": "Calle 3 #7", "businessId": burger, "status": 1, "courierId": c1, "total": 22},
		{"customerName": "Jorge León", "address": "Av. Sur 12", "businessId": cafe, "status": 2, "courierId": c1, "total": 8.25},
		{"customerName": "Elena Ríos", "address": "Calle 1 #2", "businessId": burger, "status": 3, "total": 11},
	} {
		o["code"] = fmt.Sprintf("PED-%04d", i+1)
		o["createdAt"] = created.Add(-time.Duration(i) * time.Hour)
		put("orders", o)
	}
}
