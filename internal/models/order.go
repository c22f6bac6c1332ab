package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderCreated    OrderStatus = "created"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Order : possède ses détails, paiements, livraisons et factures (cascade).
// Tous les montants sont en centimes. Les adresses sont des snapshots —
// modifier le profil ne réécrit jamais une commande passée.
type Order struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderNo string `gorm:"size:64;uniqueIndex;not null" json:"order_no"`
	UserID  uint   `gorm:"not null;index" json:"-"`

	Status        OrderStatus   `gorm:"size:32;not null;default:created" json:"status"`
	PaymentStatus PaymentStatus `gorm:"size:32;not null;default:pending" json:"payment_status"`

	Subtotal int64 `gorm:"not null" json:"subtotal"`
	Tax      int64 `gorm:"not null" json:"tax"`
	Shipping int64 `gorm:"not null" json:"shipping"`
	Total    int64 `gorm:"not null" json:"total"`

	ShippingName    string `gorm:"size:128" json:"shipping_name"`
	ShippingStreet  string `gorm:"size:255" json:"shipping_street"`
	ShippingCity    string `gorm:"size:128" json:"shipping_city"`
	ShippingZip     string `gorm:"size:32" json:"shipping_zip"`
	ShippingCountry string `gorm:"size:64" json:"shipping_country"`
	BillingStreet   string `gorm:"size:255" json:"billing_street"`
	BillingCity     string `gorm:"size:128" json:"billing_city"`
	BillingZip      string `gorm:"size:32" json:"billing_zip"`
	BillingCountry  string `gorm:"size:64" json:"billing_country"`

	Details    []OrderDetail `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"details"`
	Payments   []Payment     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	Deliveries []Delivery    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"deliveries,omitempty"`
	Invoices   []Invoice     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"invoices,omitempty"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.PublicID == "" {
		o.PublicID = uuid.NewString()
	}
	return nil
}

// OrderDetail : ligne de commande. Nom et prix unitaire sont des snapshots
// pris au checkout ; LineTotal = Quantity × UnitPrice, recalculé à chaque
// mutation de la quantité.
type OrderDetail struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderID   uint `gorm:"not null;index" json:"-"`
	ListingID uint `gorm:"not null;index" json:"-"`

	FlowerName string `gorm:"size:128;not null" json:"flower_name"`
	Quantity   int    `gorm:"not null" json:"quantity"`
	UnitPrice  int64  `gorm:"not null" json:"unit_price"`
	LineTotal  int64  `gorm:"not null" json:"line_total"`
}

func (OrderDetail) TableName() string { return "order_details" }

func (d *OrderDetail) BeforeCreate(tx *gorm.DB) error {
	if d.PublicID == "" {
		d.PublicID = uuid.NewString()
	}
	return nil
}

// Payment : une tentative de paiement (VNPay ou Stripe)
type Payment struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderID  uint          `gorm:"not null;index" json:"-"`
	Provider string        `gorm:"size:32;not null" json:"provider"` // vnpay | stripe
	TxnRef   string        `gorm:"size:128;index" json:"txn_ref"`
	Amount   int64         `gorm:"not null" json:"amount"`
	Status   PaymentStatus `gorm:"size:32;not null;default:pending" json:"status"`
	BankCode string        `gorm:"size:64" json:"bank_code"`
	PaidAt   *time.Time    `json:"paid_at,omitempty"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.PublicID == "" {
		p.PublicID = uuid.NewString()
	}
	return nil
}

type Delivery struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderID    uint       `gorm:"not null;index" json:"-"`
	Carrier    string     `gorm:"size:64" json:"carrier"`
	TrackingNo string     `gorm:"size:128" json:"tracking_no"`
	Status     string     `gorm:"size:32;not null;default:preparing" json:"status"`
	ShippedAt  *time.Time `json:"shipped_at,omitempty"`
}

func (Delivery) TableName() string { return "deliveries" }

func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.PublicID == "" {
		d.PublicID = uuid.NewString()
	}
	return nil
}

type Invoice struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderID  uint      `gorm:"not null;index" json:"-"`
	Number   string    `gorm:"size:64;uniqueIndex;not null" json:"number"`
	IssuedAt time.Time `json:"issued_at"`
	Total    int64     `gorm:"not null" json:"total"`
}

func (Invoice) TableName() string { return "invoices" }

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.PublicID == "" {
		i.PublicID = uuid.NewString()
	}
	return nil
}
