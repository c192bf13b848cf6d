package main

import (
	"errors"
	"net/http"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/cart"
	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/catalog"
)

const cartCookie = "cart_id"

// cartID reads the cart cookie, issuing a fresh id on first touch.
func cartID(c *gin.Context) string {
	if id, err := c.Cookie(cartCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(cartCookie, id, 60*60*24*365, "/", "", false, true)
	return id
}

// GET /api/cart
func getCartHandler(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := carts.Get(cartID(c))
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "could not read cart")
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": lines})
	}
}

// GET /api/cart/count
func cartCountHandler(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := carts.Count(cartID(c))
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "could not read cart")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

// POST /api/cart/items {product_id} — appends a line; duplicates stack.
func addCartItemHandler(carts *cart.Store, repo catalog.Repository) gin.HandlerFunc {
	type addRequest struct {
		ProductID string `json:"product_id"`
	}
	return func(c *gin.Context) {
		var req addRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
			jsonError(c, http.StatusBadRequest, "product_id is required")
			return
		}
		p, err := repo.GetByID(c.Request.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				jsonError(c, http.StatusNotFound, "not found")
				return
			}
			jsonError(c, http.StatusInternalServerError, "could not load product")
			return
		}
		id := cartID(c)
		if err := carts.Add(id, p); err != nil {
			jsonError(c, http.StatusInternalServerError, "could not update cart")
			return
		}
		count, err := carts.Count(id)
		if err != nil {
			// the add committed; only the badge read failed
			jsonError(c, http.StatusInternalServerError, "could not read cart")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"count": count})
	}
}

// DELETE /api/cart
func clearCartHandler(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(cartID(c)); err != nil {
			jsonError(c, http.StatusInternalServerError, "could not clear cart")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// wsWriter serializes writes to one websocket connection; bus callbacks and
// searcher callbacks fire from other goroutines.
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newWSWriter(conn *websocket.Conn) *wsWriter { return &wsWriter{conn: conn} }

func (w *wsWriter) send(v any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.WriteJSON(v)
}

// GET /api/cart/ws — pushes the fresh cart count whenever the cart mutates.
// The badge never receives cart data directly, only the signal to resync.
// Upgrade hijacks the connection and writes the 101 itself, so a first-touch
// cart id must travel in the handshake response headers, not via SetCookie.
func cartWSHandler(carts *cart.Store, bus EventBus.Bus, upgrader websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cartCookie)
		var handshake http.Header
		if err != nil || id == "" {
			id = uuid.NewString()
			fresh := &http.Cookie{
				Name:     cartCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   60 * 60 * 24 * 365,
				HttpOnly: true,
			}
			handshake = http.Header{"Set-Cookie": {fresh.String()}}
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, handshake)
		if err != nil {
			return
		}
		defer conn.Close()

		ws := newWSWriter(conn)
		push := func() {
			count, err := carts.Count(id)
			if err != nil {
				return
			}
			ws.send(gin.H{"count": count})
		}

		onUpdate := func(changedID string) {
			if changedID == id {
				push()
			}
		}
		if err := bus.Subscribe(cart.TopicUpdated, onUpdate); err != nil {
			return
		}
		defer func() { _ = bus.Unsubscribe(cart.TopicUpdated, onUpdate) }()

		push() // initial badge state

		// read loop only detects disconnects
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
