package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hospital-management-server/internal/apperrors"
)

// ResponseData represents the structure of a standard API response.
type ResponseData struct {
	Status  int            `json:"status"`
	Message string         `json:"message"`
	Code    apperrors.Kind `json:"code,omitempty"`
	Data    interface{}    `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Success sends a standard success response.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, ResponseData{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Created sends a standard resource created response.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, ResponseData{
		Status:  http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

// Fail sends a standard error response tagged with a stable error kind.
func Fail(c *gin.Context, statusCode int, code apperrors.Kind, errorMessage string) {
	c.JSON(statusCode, ResponseData{
		Status:  statusCode,
		Message: "An error occurred",
		Code:    code,
		Error:   errorMessage,
	})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, code apperrors.Kind, errorMessage string) {
	Fail(c, http.StatusBadRequest, code, errorMessage)
}

// Unauthorized sends a 401 response for unauthenticated or badly
// authenticated callers.
func Unauthorized(c *gin.Context, code apperrors.Kind, errorMessage string) {
	Fail(c, http.StatusUnauthorized, code, errorMessage)
}

// Forbidden sends a 403 response for callers whose role or ownership does not
// permit the operation.
func Forbidden(c *gin.Context, code apperrors.Kind, errorMessage string) {
	Fail(c, http.StatusForbidden, code, errorMessage)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, errorMessage string) {
	Fail(c, http.StatusNotFound, apperrors.NotFound, errorMessage)
}

// Conflict sends a 409 response for slot conflicts, duplicate usernames and
// rejected state transitions.
func Conflict(c *gin.Context, code apperrors.Kind, errorMessage string) {
	Fail(c, http.StatusConflict, code, errorMessage)
}

// StoreError sends a 500 response for persistence failures. The caller may
// retry or report.
func StoreError(c *gin.Context, errorMessage string) {
	Fail(c, http.StatusInternalServerError, apperrors.StoreUnavailable, errorMessage)
}
