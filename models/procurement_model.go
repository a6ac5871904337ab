package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RfqStatusDraft     = "DRAFT"
	RfqStatusPoCreated = "PO_CREATED"

	PoStatusOpen     = "OPEN"
	PoStatusReceived = "RECEIVED"
)

type Supplier struct {
	gorm.Model
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

type Rfq struct {
	gorm.Model
	Code        string    `json:"code" gorm:"unique"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Status      string    `json:"status" gorm:"default:'DRAFT'"`
}

type RfqItem struct {
	gorm.Model
	RfqID      uint     `json:"rfq_id"`
	Rfq        Rfq      `json:"rfq,omitempty" gorm:"foreignKey:RfqID;constraint:OnDelete:CASCADE"`
	MaterialID uint     `json:"material_id"`
	Material   Material `json:"material,omitempty" gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
	Name       string   `json:"name"`
	Qty        int      `json:"qty"`
}

type PurchaseOrder struct {
	gorm.Model
	Code        string          `json:"code" gorm:"unique"`
	RfqID       *uint           `json:"rfq_id"`
	Rfq         *Rfq            `json:"rfq,omitempty" gorm:"foreignKey:RfqID;constraint:OnDelete:CASCADE"`
	SupplierID  *uint           `json:"supplier_id"`
	Supplier    *Supplier       `json:"supplier,omitempty" gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	GrandTotal  decimal.Decimal `json:"grand_total" gorm:"type:decimal(15,2)"`
	Status      string          `json:"status" gorm:"default:'OPEN'"`
}

type PoItem struct {
	gorm.Model
	PoID       uint            `json:"po_id"`
	Po         PurchaseOrder   `json:"po,omitempty" gorm:"foreignKey:PoID;constraint:OnDelete:CASCADE"`
	MaterialID uint            `json:"material_id"`
	Material   Material        `json:"material,omitempty" gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
	Name       string          `json:"name"`
	Qty        int             `json:"qty"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(15,2)"`
	Subtotal   decimal.Decimal `json:"subtotal" gorm:"type:decimal(15,2)"`
}

type ReceivingGood struct {
	gorm.Model
	Code          string         `json:"code" gorm:"unique"`
	PoID          *uint          `json:"po_id"`
	PurchaseOrder *PurchaseOrder `json:"purchase_order,omitempty" gorm:"foreignKey:PoID;constraint:OnDelete:CASCADE"`
	SupplierID    *uint          `json:"supplier_id"`
	Supplier      *Supplier      `json:"supplier,omitempty" gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
	Date          time.Time      `json:"date"`
	Description   string         `json:"description"`
}

type ReceivingItem struct {
	gorm.Model
	ReceivingID *uint          `json:"receiving_id"`
	Receiving   *ReceivingGood `json:"receiving,omitempty" gorm:"foreignKey:ReceivingID;constraint:OnDelete:CASCADE"`
	MaterialID  *uint          `json:"material_id"`
	Material    *Material      `json:"material,omitempty" gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
	Name        string         `json:"name"`
	Qty         int            `json:"qty"`
}
