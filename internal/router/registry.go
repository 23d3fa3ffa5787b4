package router

import "github.com/gin-gonic/gin"

// Registry collects feature modules and mounts them under one base group, so
// main wires the engine once and modules stay ignorant of each other.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine, base string) *Registry {
	return &Registry{Engine: engine, API: engine.Group(base)}
}

// Use adds middleware applied to the whole base group ahead of every module.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll mounts group middleware and then every module, in Add order.
func (r *Registry) RegisterAll() {
	r.API.Use(r.middlewares...)
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
