// Package ws difunde los cambios de stock confirmados a los clientes websocket conectados.
package ws

import (
	"context"
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
)

var _ inventory.StockNotifier = (*Hub)(nil)

const (
	broadcastBuffer = 64
	clientBuffer    = 16 // mensajes pendientes por cliente antes de desconectarlo
)

// Client conexión a la que el hub escribe (*websocket.Conn la satisface).
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub registro de clientes y difusión. Solo el loop de Run toca el mapa de clientes;
// cada cliente tiene su propia goroutine de escritura, así un cliente lento no frena al resto.
type Hub struct {
	clients    map[Client]chan []byte
	register   chan Client
	unregister chan Client
	broadcast  chan []byte
	done       chan struct{}
	log        zerolog.Logger
}

// NewHub crea un hub; hay que lanzar Run en una goroutine.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[Client]chan []byte),
		register:   make(chan Client),
		unregister: make(chan Client),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run atiende altas, bajas y difusiones hasta que ctx se cancela; al salir cierra los clientes.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			send := make(chan []byte, clientBuffer)
			h.clients[c] = send
			go h.writeLoop(c, send)
			h.log.Debug().Int("clients", len(h.clients)).Msg("cliente ws conectado")

		case c := <-h.unregister:
			h.drop(c)

		case msg := <-h.broadcast:
			for c, send := range h.clients {
				select {
				case send <- msg:
				default:
					h.log.Warn().Msg("cliente ws sin consumir mensajes, desconectado")
					h.drop(c)
				}
			}
		}
	}
}

// drop quita al cliente; cerrar su canal termina writeLoop, que cierra la conexión.
func (h *Hub) drop(c Client) {
	if send, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(send)
	}
}

// writeLoop escribe los mensajes de un cliente hasta que el hub cierra su canal o falla la escritura.
func (h *Hub) writeLoop(c Client, send <-chan []byte) {
	defer func() { _ = c.Close() }()
	for msg := range send {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.Unregister(c)
			return
		}
	}
}

// Register agrega un cliente. Con el hub detenido el cliente se cierra.
func (h *Hub) Register(c Client) {
	select {
	case h.register <- c:
	case <-h.done:
		_ = c.Close()
	}
}

// Unregister quita y cierra un cliente.
func (h *Hub) Unregister(c Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// NotifyStock encola el evento sin bloquear; con el buffer lleno el evento se descarta.
func (h *Hub) NotifyStock(_ context.Context, ev inventory.StockEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Msg("serializar evento de stock")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn().Str("product_id", ev.ProductID).Msg("buffer ws lleno, evento descartado")
	}
}

// Serve mantiene viva la conexión hasta que el cliente cierra.
func (h *Hub) Serve(c *websocket.Conn) {
	h.Register(c)
	defer h.Unregister(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
