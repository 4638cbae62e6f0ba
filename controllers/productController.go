package controllers

import (
	"net/http"
	"strconv"

	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/services"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// GetProducts handles GET /api/products?keyword=&pageNumber=
func (c *ProductController) GetProducts(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.Query("pageNumber"))
	if err != nil {
		page = 1
	}

	result, err := c.products.List(ctx.Request.Context(), ctx.Query("keyword"), page)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, result)
}

func (c *ProductController) GetTopProducts(ctx *gin.Context) {
	products, err := c.products.Top(ctx.Request.Context())
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, products)
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	product, err := c.products.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

// CreateProduct stores a sample product for the admin to fill in.
func (c *ProductController) CreateProduct(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	product, err := c.products.CreateSample(ctx.Request.Context(), user.ID)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, product)
}

func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	var update models.ProductUpdate
	if !bindJSON(ctx, &update) {
		return
	}

	product, err := c.products.Update(ctx.Request.Context(), ctx.Param("id"), update)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	if err := c.products.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		sendError(ctx, err)
		return
	}
	sendMessage(ctx, http.StatusOK, "Product deleted")
}

func (c *ProductController) CreateReview(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	var input models.ReviewInput
	if !bindJSON(ctx, &input) {
		return
	}

	if err := c.products.AddReview(ctx.Request.Context(), ctx.Param("id"), user, input); err != nil {
		sendError(ctx, err)
		return
	}
	sendMessage(ctx, http.StatusCreated, "Review added")
}
