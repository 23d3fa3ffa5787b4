package router

import "github.com/gin-gonic/gin"

// Module is a self-contained feature surface that hangs its routes off the
// shared API group. Handlers and their middleware stay inside the module.
type Module interface {
	Register(rg *gin.RouterGroup)
}
