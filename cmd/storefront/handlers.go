package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/cardsearch"
	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/catalog"
)

func jsonError(c *gin.Context, code int, msg string) {
	c.JSON(code, catalog.HTTPError{Error: msg})
}

// GET /api/products?category=...  (customer-facing: hidden products excluded)
func listProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.ListVisible(c.Request.Context())
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "could not load products")
			return
		}
		products = catalog.FilterByCategory(products, c.Query("category"))
		if products == nil {
			products = []catalog.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"items": products})
	}
}

// GET /api/products/:id
func getProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				jsonError(c, http.StatusNotFound, "not found")
				return
			}
			jsonError(c, http.StatusInternalServerError, "could not load product")
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// GET /api/pages/landing — featured products plus the TCG source list.
func landingPageHandler(repo catalog.Repository) gin.HandlerFunc {
	const featured = 4
	return func(c *gin.Context) {
		products, err := repo.ListVisible(c.Request.Context())
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "could not load products")
			return
		}
		if len(products) > featured {
			products = products[:featured]
		}
		if products == nil {
			products = []catalog.Product{}
		}
		c.JSON(http.StatusOK, gin.H{
			"featured": products,
			"sources":  cardsearch.Sources,
		})
	}
}

// GET /api/pages/products — catalog page payload: products (optionally
// filtered) plus the category list for the filter bar.
func productsPageHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.ListVisible(c.Request.Context())
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "could not load products")
			return
		}
		selected := c.Query("category")
		filtered := catalog.FilterByCategory(products, selected)
		if filtered == nil {
			filtered = []catalog.Product{}
		}
		c.JSON(http.StatusOK, gin.H{
			"items":      filtered,
			"categories": catalog.Categories,
			"selected":   selected,
		})
	}
}

// GET /api/pages/about
func aboutPageHandler() gin.HandlerFunc {
	payload := gin.H{
		"name":        "CC Gaming",
		"description": "Tienda de TCG, juegos de mesa, miniaturas y accesorios.",
		"categories":  catalog.Categories,
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, payload)
	}
}

// GET /api/pages/contact
func contactPageHandler() gin.HandlerFunc {
	payload := gin.H{
		"email":     "ccgaming@example.com",
		"instagram": "@ccgaming",
		"hours":     "Lun-Sab 10:00-20:00",
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, payload)
	}
}
