package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pedidos-service/internal/service"
	"pedidos-service/internal/store"
	"pedidos-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	pedidos  *service.PedidoService
	clientes *service.ClienteService
	catalog  *service.CatalogService
	gate     *store.Gate
}

// NewHandler creates a new HTTP handler
func NewHandler(
	pedidos *service.PedidoService,
	clientes *service.ClienteService,
	catalog *service.CatalogService,
	gate *store.Gate,
) *Handler {
	return &Handler{
		pedidos:  pedidos,
		clientes: clientes,
		catalog:  catalog,
		gate:     gate,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/clientes", h.registerCliente)
		v1.GET("/clientes", h.listClientes)
		v1.GET("/clientes/:cedula", h.getCliente)
		v1.GET("/productos", h.listProductos)
		v1.POST("/productos", h.addProducto)
		v1.POST("/pedidos", h.createPedido)
		v1.GET("/pedidos", h.listPedidos)
		v1.GET("/pedidos/:id", h.getPedido)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck reports the store readiness gate
func (h *Handler) readinessCheck(c *gin.Context) {
	if !h.gate.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"time":   time.Now().Unix(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// registerCliente handles cliente registration
func (h *Handler) registerCliente(c *gin.Context) {
	var req service.RegisterClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	cliente, err := h.clientes.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Cedula already registered"})
		case errors.Is(err, store.ErrNotReady):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store not ready"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to register cliente",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, cliente)
}

// getCliente handles cliente lookup by cedula
func (h *Handler) getCliente(c *gin.Context) {
	cliente := h.clientes.FindPorCedula(c.Request.Context(), c.Param("cedula"))
	if cliente == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cliente not found"})
		return
	}
	c.JSON(http.StatusOK, cliente)
}

// listClientes handles the cliente list
func (h *Handler) listClientes(c *gin.Context) {
	c.JSON(http.StatusOK, h.clientes.List(c.Request.Context()))
}

// listProductos handles the catalog list
func (h *Handler) listProductos(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.List(c.Request.Context()))
}

// addProducto handles catalog growth
func (h *Handler) addProducto(c *gin.Context) {
	var req service.AddProductoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	producto, err := h.catalog.Add(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Producto already exists"})
		case errors.Is(err, store.ErrNotReady):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store not ready"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to add producto",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, producto)
}

// createPedido handles pedido creation
func (h *Handler) createPedido(c *gin.Context) {
	var req service.CreatePedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.pedidos.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTicket):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Numero de tillo has no digits"})
		case errors.Is(err, store.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Numero de tillo already in use"})
		case errors.Is(err, store.ErrNotReady):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store not ready"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to create pedido",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// listPedidos handles the pedido list with derived summaries
func (h *Handler) listPedidos(c *gin.Context) {
	c.JSON(http.StatusOK, h.pedidos.ListConResumen(c.Request.Context()))
}

// getPedido handles pedido detail by id
func (h *Handler) getPedido(c *gin.Context) {
	pedidoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pedido ID"})
		return
	}

	detalle := h.pedidos.Get(c.Request.Context(), pedidoID)
	if detalle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido not found"})
		return
	}
	c.JSON(http.StatusOK, detalle)
}

// requestIDMiddleware tags every request with an id for log correlation
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
