package rbac

import (
	"slices"
	"strings"
	"workshift-backend/models"

	"github.com/pkg/errors"
)

type Provider interface {
	// GetRuleFunc regla de la ruta; sin regla la ruta queda abierta a cualquier usuario autenticado
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

func NewHandler() Provider {
	i := &impl{
		exact:       map[string]models.RbacFunc{},
		routes:      map[string][]route{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	i.initRules()
	return i
}

// route ruta con parametros: cada {param} acepta un unico segmento
type route struct {
	segments []string
	allow    models.RbacFunc
}

type impl struct {
	// clave "METODO /ruta"; se consultan antes que las rutas con parametros
	exact       map[string]models.RbacFunc
	routes      map[string][]route
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	method = strings.ToUpper(method)
	path = normalizePath(path)
	if allow, ok := i.exact[method+" "+path]; ok {
		return allow, true
	}
	segments := splitPath(path)
	for _, r := range i.routes[method] {
		if r.match(segments) {
			return r.allow, true
		}
	}
	return nil, false
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

// addRule allow nil: alcanza con el rol
func (i *impl) addRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, allow models.RbacFunc) error {
	method, path, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	for _, role := range roles {
		if i.permissions[role] == nil {
			i.permissions[role] = map[models.Module][]models.Permission{}
		}
		if !slices.Contains(i.permissions[role][module], permission) {
			i.permissions[role][module] = append(i.permissions[role][module], permission)
		}
	}

	if allow == nil {
		allow = AllowByRoleFunc(roles)
	}
	if !strings.Contains(path, "{") {
		i.exact[method+" "+path] = allow
		return nil
	}
	i.routes[method] = append(i.routes[method], route{segments: splitPath(path), allow: allow})
	return nil
}

func (r route) match(segments []string) bool {
	if len(segments) != len(r.segments) {
		return false
	}
	for n, want := range r.segments {
		if strings.HasPrefix(want, "{") && strings.HasSuffix(want, "}") {
			if segments[n] == "" {
				return false
			}
			continue
		}
		if segments[n] != want {
			return false
		}
	}
	return true
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	return func(userID string, role models.UserRole, uri string) bool {
		return slices.Contains(accessRoles, role)
	}
}

// SelfOrRolesFunc permite a los roles indicados o al propio empleado cuyo id sigue al prefijo
func SelfOrRolesFunc(prefix string, accessRoles []models.UserRole) models.RbacFunc {
	byRole := AllowByRoleFunc(accessRoles)
	prefix = normalizePath(prefix) + "/"
	return func(userID string, role models.UserRole, uri string) bool {
		if byRole(userID, role, uri) {
			return true
		}
		rest, found := strings.CutPrefix(normalizePath(uri), prefix)
		if !found {
			return false
		}
		id, _, _ := strings.Cut(rest, "/")
		return id != "" && id == userID
	}
}

// parseSwaggerPattern formato de las anotaciones @Router: "/api/v1/employees [post]"
func parseSwaggerPattern(pattern string) (method, path string, err error) {
	path, rest, found := strings.Cut(strings.TrimSpace(pattern), "[")
	method, closed := strings.CutSuffix(strings.TrimSpace(rest), "]")
	method = strings.ToUpper(strings.TrimSpace(method))
	if !found || !closed || method == "" {
		return "", "", errors.Errorf("falta el metodo en el patron (%v)", pattern)
	}
	return method, normalizePath(strings.TrimSpace(path)), nil
}

func splitPath(path string) []string {
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}

func normalizePath(path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	return "/" + strings.Join(parts, "/")
}
