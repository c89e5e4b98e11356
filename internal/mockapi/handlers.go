package mockapi

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func newID() string {
	return uuid.NewString()
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "datos de acceso inválidos")
		return
	}

	s.mu.Lock()
	hash, hasAccount := s.passwords[strings.ToLower(req.Email)]
	user, hasUser := s.data["users"].findBy("email", req.Email)
	var perms []string
	if hasUser {
		perms = s.permissionsOf(user)
	}
	s.mu.Unlock()

	if !hasAccount || !hasUser {
		abort(c, http.StatusUnauthorized, "Correo o contraseña incorrectos")
		return
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(req.Password)); err != nil {
		abort(c, http.StatusUnauthorized, "Correo o contraseña incorrectos")
		return
	}
	if active, _ := user["isActive"].(bool); !active {
		abort(c, http.StatusUnauthorized, "Usuario inactivo")
		return
	}

	token, err := s.issueToken(user.str("id"), req.Email, perms)
	if err != nil {
		abort(c, http.StatusInternalServerError, "no se pudo generar el token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"username":    user.str("name"),
		"permissions": perms,
	})
}

// permissionsOf flattens the user's role permissions. Caller holds s.mu.
func (s *Server) permissionsOf(user record) []string {
	role, ok := s.data["roles"].get(user.str("roleId"))
	if !ok {
		return []string{}
	}
	list, _ := role["permissions"].([]any)
	out := make([]string, 0, len(list))
	for _, p := range list {
		if code, ok := p.(string); ok {
			out = append(out, code)
		}
	}
	return out
}

// GET /api/{resource}/search
func (s *Server) search(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := searchQuery{
			term:     c.Query("Search"),
			sortBy:   c.Query("SortBy"),
			page:     atoiDefault(c.Query("Page"), 1),
			pageSize: atoiDefault(c.Query("PageSize"), 10),
			filters:  map[string][]string{},
		}
		q.descending, _ = strconv.ParseBool(c.Query("IsDescending"))
		if q.page < 1 {
			q.page = 1
		}
		if q.pageSize < 1 || q.pageSize > 500 {
			q.pageSize = 10
		}
		for key, values := range c.Request.URL.Query() {
			if !reservedParams[key] && len(values) > 0 {
				q.filters[key] = values
			}
		}

		s.mu.Lock()
		rows, total := s.data[name].search(q)
		data := make([]record, 0, len(rows))
		for _, r := range rows {
			data = append(data, r.clone())
		}
		s.mu.Unlock()

		c.JSON(http.StatusOK, gin.H{
			"data":        data,
			"totalCount":  total,
			"page":        q.page,
			"pageSize":    q.pageSize,
			"hasNext":     q.page*q.pageSize < total,
			"hasPrevious": q.page > 1,
		})
	}
}

// GET /api/{resource}/{id}
func (s *Server) get(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		r, ok := s.data[name].get(c.Param("id"))
		if ok {
			r = r.clone()
		}
		s.mu.Unlock()
		if !ok {
			abort(c, http.StatusNotFound, "registro no encontrado")
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

// POST /api/{resource}
func (s *Server) create(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := s.readBody(c, name)
		if err != nil {
			abort(c, http.StatusBadRequest, err.Error())
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		col := s.data[name]
		if conflict := s.uniqueConflict(name, body, ""); conflict != "" {
			abort(c, http.StatusConflict, conflict)
			return
		}
		if rules[name].status {
			body["isActive"] = true
		}
		if err := s.absorbPassword(name, body); err != nil {
			abort(c, http.StatusInternalServerError, err.Error())
			return
		}
		s.resolveNames(body)
		id := newID()
		col.put(id, body)
		c.JSON(http.StatusCreated, body.clone())
	}
}

// PUT /api/{resource}/{id}
func (s *Server) update(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := s.readBody(c, name)
		if err != nil {
			abort(c, http.StatusBadRequest, err.Error())
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		id := c.Param("id")
		existing, ok := s.data[name].get(id)
		if !ok {
			abort(c, http.StatusNotFound, "registro no encontrado")
			return
		}
		if conflict := s.uniqueConflict(name, body, id); conflict != "" {
			abort(c, http.StatusConflict, conflict)
			return
		}
		if err := s.absorbPassword(name, body); err != nil {
			abort(c, http.StatusInternalServerError, err.Error())
			return
		}
		merged := existing.clone()
		for k, v := range body {
			merged[k] = v
		}
		s.resolveNames(merged)
		s.data[name].put(id, merged)
		c.JSON(http.StatusOK, merged.clone())
	}
}

// DELETE /api/{resource}/{id}
func (s *Server) remove(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		id := c.Param("id")
		if _, ok := s.data[name].get(id); !ok {
			abort(c, http.StatusNotFound, "registro no encontrado")
			return
		}
		if name == "products" && s.carts[id] {
			abort(c, http.StatusConflict, "producto en carritos activos")
			return
		}
		for _, ref := range deleteGuards[name] {
			if _, used := s.data[ref.from].findBy(ref.field, id); used {
				abort(c, http.StatusConflict, "registro en uso por "+ref.from)
				return
			}
		}
		s.data[name].remove(id)
		c.Status(http.StatusNoContent)
	}
}

type statusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// PUT /api/{resource}/{id}/status
func (s *Server) changeStatus(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abort(c, http.StatusBadRequest, "isActive requerido")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		r, ok := s.data[name].get(c.Param("id"))
		if !ok {
			abort(c, http.StatusNotFound, "registro no encontrado")
			return
		}
		r["isActive"] = *req.IsActive
		c.JSON(http.StatusOK, r.clone())
	}
}

type assignRequest struct {
	CourierID string `json:"courierId" binding:"required"`
}

// PUT /api/orders/{id}/assign
func (s *Server) assignCourier(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "courierId requerido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.data["orders"].get(c.Param("id"))
	if !ok {
		abort(c, http.StatusNotFound, "pedido no encontrado")
		return
	}
	if _, ok := s.data["couriers"].get(req.CourierID); !ok {
		abort(c, http.StatusNotFound, "repartidor no encontrado")
		return
	}
	if status, _ := toFloat(order["status"]); status != 0 {
		abort(c, http.StatusConflict, "el pedido ya no está en proceso")
		return
	}
	order["courierId"] = req.CourierID
	order["status"] = 1
	s.resolveNames(order)
	c.JSON(http.StatusOK, order.clone())
}

// --- Helpers ---

// readBody decodes JSON or multipart input into a record.
func (s *Server) readBody(c *gin.Context, name string) (record, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return s.readMultipart(c, name)
	}
	var body record
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		return nil, errInvalidBody
	}
	if body == nil {
		return nil, errInvalidBody
	}
	delete(body, "id")
	return body, nil
}

func (s *Server) readMultipart(c *gin.Context, name string) (record, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errInvalidBody
	}
	rule := rules[name]
	body := record{}
	for key, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		v := values[0]
		if rule.numeric[key] {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errInvalidBody
			}
			body[key] = f
			continue
		}
		body[key] = v
	}
	for part, target := range rule.fileField {
		files := form.File[part]
		if len(files) == 0 {
			continue
		}
		body[target] = "/uploads/" + newID() + filepath.Ext(files[0].Filename)
	}
	delete(body, "id")
	return body, nil
}

// uniqueConflict returns a message when body repeats the unique field of
// another row. Caller holds s.mu.
func (s *Server) uniqueConflict(name string, body record, selfID string) string {
	field := rules[name].unique
	if field == "" {
		return ""
	}
	value := strings.TrimSpace(body.str(field))
	if value == "" {
		return ""
	}
	if other, ok := s.data[name].findBy(field, value); ok && other.str("id") != selfID {
		return field + " duplicado"
	}
	return ""
}

// absorbPassword moves a password out of the record into the login table.
// Caller holds s.mu.
func (s *Server) absorbPassword(name string, body record) error {
	pw, _ := body["password"].(string)
	delete(body, "password")
	if pw == "" || name != "users" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.passwords[strings.ToLower(body.str("email"))] = hash
	return nil
}

// resolveNames fills display names for every known <x>Id field. Caller
// holds s.mu.
func (s *Server) resolveNames(r record) {
	for field, src := range nameSources {
		id := r.str(field)
		if id == "" {
			continue
		}
		if ref, ok := s.data[src.collection].get(id); ok {
			r[src.target] = ref.str(src.label)
		}
	}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

type bodyError string

func (e bodyError) Error() string { return string(e) }

const errInvalidBody = bodyError("cuerpo de la solicitud inválido")

func nowUTC() time.Time {
	return time.Now().UTC()
}
