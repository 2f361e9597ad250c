package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// DepartmentHandler handles department directory requests.
type DepartmentHandler struct {
	DB *gorm.DB
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(db *gorm.DB) *DepartmentHandler {
	return &DepartmentHandler{DB: db}
}

// ListDepartments returns every department ordered by name.
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	var departments []models.Department
	if err := h.DB.Order("name asc").Find(&departments).Error; err != nil {
		utils.StoreError(c, "Failed to fetch departments: "+err.Error())
		return
	}

	utils.Success(c, "Departments fetched successfully", departments)
}
