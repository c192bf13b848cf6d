package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/cardsearch"
	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/catalog"
	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/media"
	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/owner"
)

// POST /api/owner/login
func loginHandler(auth *owner.Service) gin.HandlerFunc {
	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid payload")
			return
		}
		token, err := auth.Login(req.Username, req.Password)
		if err != nil {
			jsonError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// ownerRequired gates every admin route behind a bearer token.
func ownerRequired(auth *owner.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			jsonError(c, http.StatusUnauthorized, "owner token required")
			c.Abort()
			return
		}
		user, err := auth.Verify(token)
		if err != nil {
			jsonError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set("owner", user)
		c.Next()
	}
}

// GET /api/admin/products — includes hidden products.
func listAllProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.ListAll(c.Request.Context())
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "could not load products")
			return
		}
		if products == nil {
			products = []catalog.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"items": products})
	}
}

// POST /api/admin/products — manual entry. All validation happens before the
// repo is touched so a bad form never produces a network write.
func createProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid payload")
			return
		}
		if err := req.ValidateNew(); err != nil {
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		stock := 1
		if req.StockQuantity != nil {
			stock = *req.StockQuantity
		}
		p := catalog.Product{
			ID:            uuid.NewString(),
			Name:          req.Name,
			Description:   req.Description,
			Price:         req.Price,
			Category:      req.Category,
			ImageURL:      req.ImageURL,
			StockQuantity: stock,
			IsHidden:      false,
		}
		if err := repo.Create(c.Request.Context(), &p); err != nil {
			// the image (if uploaded) is already stored; echo its URL so the
			// client can retry without re-uploading
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "could not save product",
				"image_url": req.ImageURL,
			})
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

type tcgCreateRequest struct {
	Card          cardsearch.Card `json:"card"`
	Price         string          `json:"price"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	StockQuantity *int            `json:"stock_quantity"`
}

// POST /api/admin/products/tcg — API-assisted entry: the selected card
// supplies name and image; the free-text description falls back to the
// card's own text when blank.
func createTCGProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tcgCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid payload")
			return
		}
		if req.Card.Name == "" {
			jsonError(c, http.StatusBadRequest, "select a card first")
			return
		}
		if err := catalog.ValidatePrice(req.Price); err != nil {
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		if !catalog.ValidCategory(req.Category) {
			jsonError(c, http.StatusBadRequest, "store category is required")
			return
		}
		desc := strings.TrimSpace(req.Description)
		if desc == "" {
			desc = req.Card.Description
		}
		stock := 1
		if req.StockQuantity != nil {
			if *req.StockQuantity < 0 {
				jsonError(c, http.StatusBadRequest, "stock_quantity must be >= 0")
				return
			}
			stock = *req.StockQuantity
		}
		p := catalog.Product{
			ID:            uuid.NewString(),
			Name:          req.Card.Name,
			Description:   desc,
			Price:         req.Price,
			Category:      req.Category,
			ImageURL:      req.Card.Image,
			StockQuantity: stock,
			IsHidden:      false,
		}
		if err := repo.Create(c.Request.Context(), &p); err != nil {
			jsonError(c, http.StatusInternalServerError, "could not save product")
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// PUT /api/admin/products/:id — partial update.
func updateProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid payload")
			return
		}
		if req.Price != nil {
			if err := catalog.ValidatePrice(*req.Price); err != nil {
				jsonError(c, http.StatusBadRequest, err.Error())
				return
			}
		}
		if req.Category != nil && !catalog.ValidCategory(*req.Category) {
			jsonError(c, http.StatusBadRequest, "category is not in the store category list")
			return
		}
		if req.StockQuantity != nil && *req.StockQuantity < 0 {
			jsonError(c, http.StatusBadRequest, "stock_quantity must be >= 0")
			return
		}
		p, err := repo.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				jsonError(c, http.StatusNotFound, "not found")
				return
			}
			jsonError(c, http.StatusInternalServerError, "could not update product")
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// DELETE /api/admin/products/:id
func deleteProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "could not delete product")
			return
		}
		if !ok {
			jsonError(c, http.StatusNotFound, "not found")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// POST /api/admin/uploads — multipart product image upload.
func uploadImageHandler(store *media.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("image")
		if err != nil {
			jsonError(c, http.StatusBadRequest, "image file is required")
			return
		}
		f, err := fh.Open()
		if err != nil {
			jsonError(c, http.StatusBadRequest, "could not read upload")
			return
		}
		defer f.Close()

		url, err := store.Save(fh.Filename, fh.Size, fh.Header.Get("Content-Type"), f)
		if err != nil {
			switch {
			case errors.Is(err, media.ErrNotImage), errors.Is(err, media.ErrTooLarge):
				jsonError(c, http.StatusBadRequest, err.Error())
			default:
				jsonError(c, http.StatusInternalServerError, "could not store image")
			}
			return
		}
		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}

// GET /api/admin/cards/search?source=...&q=...&by=id — one-shot search, no
// debounce; the live variant lives on the websocket below.
func searchCardsHandler(client *cardsearch.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		src, ok := cardsearch.SourceByName(c.Query("source"))
		if !ok {
			jsonError(c, http.StatusBadRequest, "unknown source")
			return
		}
		q := strings.TrimSpace(c.Query("q"))
		if q == "" || !src.Searchable() {
			c.JSON(http.StatusOK, gin.H{"cards": []cardsearch.Card{}})
			return
		}
		cards, err := client.Search(c.Request.Context(), src, q, c.Query("by") == "id")
		if err != nil {
			if errors.Is(err, cardsearch.ErrSearchFailed) {
				jsonError(c, http.StatusBadGateway, "failed to search cards")
				return
			}
			jsonError(c, http.StatusBadGateway, "error searching cards, please try again")
			return
		}
		c.JSON(http.StatusOK, gin.H{"cards": cards})
	}
}

type searchMessage struct {
	Source string `json:"source"`
	Query  string `json:"query"`
	ByID   bool   `json:"by_id"`
}

// GET /api/admin/cards/ws — keystroke stream in, debounced results out. The
// Searcher guarantees stale responses never overwrite newer ones.
func searchCardsWSHandler(client *cardsearch.Client, window time.Duration, upgrader websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		ws := newWSWriter(conn)
		searcher := cardsearch.NewSearcher(client, window,
			func(cards []cardsearch.Card) {
				ws.send(gin.H{"type": "results", "cards": cards})
			},
			func(err error) {
				msg := "error searching cards, please try again"
				if errors.Is(err, cardsearch.ErrSearchFailed) {
					msg = "failed to search cards"
				}
				ws.send(gin.H{"type": "error", "message": msg})
			})
		defer searcher.Close()

		for {
			var msg searchMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			src, ok := cardsearch.SourceByName(msg.Source)
			if !ok {
				ws.send(gin.H{"type": "error", "message": "unknown source"})
				continue
			}
			searcher.Query(src, strings.TrimSpace(msg.Query), msg.ByID)
		}
	}
}
