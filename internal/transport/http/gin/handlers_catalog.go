package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suyay-events/suyay-go/internal/service"
)

// The catalog endpoints are world readable and nearly static, so they
// get long ETag/Cache-Control windows.

// @Summary  List roles
// @Success  200 {array} domain.RoleEntry
// @Router   /roles [get]
func handleListRoles(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Catalog.Roles(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=3600", true)
	}
}

// @Summary  List categories
// @Success  200 {array} domain.Category
// @Router   /categories [get]
func handleListCategories(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Catalog.Categories(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=3600", true)
	}
}

// @Summary  List departments
// @Success  200 {array} domain.Department
// @Router   /departments [get]
func handleListDepartments(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Catalog.Departments(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=3600", true)
	}
}

// @Summary  List provinces
// @Param    department_id query int false "filter by department"
// @Success  200 {array} domain.Province
// @Router   /provinces [get]
func handleListProvinces(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		departmentID, ok := queryInt64(c, "department_id")
		if !ok {
			return
		}
		out, err := svcs.Catalog.Provinces(c.Request.Context(), departmentID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=3600", true)
	}
}

// @Summary  List districts
// @Param    province_id query int false "filter by province"
// @Success  200 {array} domain.District
// @Router   /districts [get]
func handleListDistricts(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		provinceID, ok := queryInt64(c, "province_id")
		if !ok {
			return
		}
		out, err := svcs.Catalog.Districts(c.Request.Context(), provinceID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=3600", true)
	}
}
