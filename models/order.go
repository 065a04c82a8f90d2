package models

import "time"

// Tipos de pedido
const (
	OrderDineIn   = "mesa"
	OrderDelivery = "domicilio"
)

// Estados del ciclo de vida de un pedido
const (
	OrderPending   = "pendiente"
	OrderCancelled = "cancelado"
	OrderInTransit = "en camino"
	OrderReady     = "listo para recoger"
	OrderDelivered = "entregado"
)

type Order struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OrderedAt   time.Time  `gorm:"not null" json:"fechaHoraPedido"`
	DeliveredAt *time.Time `json:"fechaHoraEntrega"`
	Kind        string     `gorm:"type:varchar(20);not null" json:"tipo"`
	Status      string     `gorm:"type:varchar(30);not null;default:'pendiente'" json:"estado"`
	Total       float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	TableID     *uint      `gorm:"index" json:"mesaId"`
	Table       *Table     `gorm:"foreignKey:TableID" json:"mesa,omitempty"`
	CustomerCI  string     `gorm:"type:varchar(20);not null;index" json:"clienteCi"`
	WaiterID    *uint      `gorm:"index" json:"meseroId"`
	Waiter      *User      `gorm:"foreignKey:WaiterID" json:"mesero,omitempty"`
	PaymentID   *uint      `gorm:"index" json:"pagoId"`
	Payment     *Payment   `gorm:"foreignKey:PaymentID" json:"pago,omitempty"`

	ProductLines []ProductLine `gorm:"foreignKey:OrderID" json:"detallePlatos"`
	ComboLines   []ComboLine   `gorm:"foreignKey:OrderID" json:"detalleCombos"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// Active indica si el pedido todavia retiene recursos (su mesa).
func (o *Order) Active() bool {
	return o.Status != OrderDelivered && o.Status != OrderCancelled
}

// Finalized indica que el pedido ya no admite ediciones ni pagos.
func (o *Order) Finalized() bool {
	return !o.Active()
}

// orderTransitions enumera las transiciones permitidas para pedidos a
// domicilio. Los pedidos de mesa se finalizan unicamente via pago, por lo que
// su unica transicion manual es la cancelacion.
var orderTransitions = map[string][]string{
	OrderPending:   {OrderInTransit, OrderCancelled},
	OrderInTransit: {OrderReady, OrderDelivered, OrderCancelled},
	OrderReady:     {OrderDelivered, OrderCancelled},
	OrderDelivered: {},
	OrderCancelled: {},
}

// CanTransitionOrder responde si el pedido puede pasar de from a to.
func CanTransitionOrder(kind, from, to string) bool {
	if kind == OrderDineIn {
		return from == OrderPending && to == OrderCancelled
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus verifica que el estado pertenezca al conjunto permitido.
func ValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

// ValidOrderKind verifica el tipo de pedido.
func ValidOrderKind(kind string) bool {
	return kind == OrderDineIn || kind == OrderDelivery
}
