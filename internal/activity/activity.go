package activity

import (
	"errors"
	"time"

	activityDatamodel "github.com/frahmantamala/activity-tracker/internal/core/datamodel/activity"
)

// Type discriminates the activity variants. Each variant populates its own
// payload field group on Activity; the envelope fields are shared.
type Type string

const (
	TypeExpense    Type = "expense"
	TypeSales      Type = "sales"
	TypeCustomer   Type = "customer"
	TypeProduction Type = "production"
	TypeStorage    Type = "storage"
)

// AllTypes lists every variant in presentation order.
var AllTypes = []Type{TypeExpense, TypeSales, TypeCustomer, TypeProduction, TypeStorage}

func ValidType(t Type) bool {
	switch t {
	case TypeExpense, TypeSales, TypeCustomer, TypeProduction, TypeStorage:
		return true
	}
	return false
}

// ImageField names a blankable image slot on an activity.
type ImageField string

const (
	ImageReceipt       ImageField = "receiptImage"
	ImageMachineBefore ImageField = "machineImageBefore"
	ImageMachineAfter  ImageField = "machineImageAfter"
)

type Activity struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// expense
	ReceiptImage string `json:"receiptImage,omitempty"`
	Description  string `json:"description,omitempty"`

	// sales
	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`
	ServingEmployee string `json:"servingEmployee,omitempty"`
	BuyerName       string `json:"buyerName,omitempty"`

	// customer
	CustomerName string `json:"customerName,omitempty"`
	ServiceDate  string `json:"serviceDate,omitempty"`
	ServiceType  string `json:"serviceType,omitempty"`
	Notes        string `json:"notes,omitempty"`

	// production
	RawMaterialWeight  float64 `json:"rawMaterialWeight,omitempty"`
	WeightUnit         string  `json:"weightUnit,omitempty"`
	MachineImageBefore string  `json:"machineImageBefore,omitempty"`
	MachineImageAfter  string  `json:"machineImageAfter,omitempty"`

	// storage
	Location        string  `json:"location,omitempty"`
	ItemDescription string  `json:"itemDescription,omitempty"`
	Quantity        float64 `json:"quantity,omitempty"`
	Condition       string  `json:"condition,omitempty"`
}

var (
	ErrNotFound     = errors.New("activity not found")
	ErrInvalidType  = errors.New("unknown activity type")
	ErrInvalidImage = errors.New("unknown image field")
)

func ToDataModel(a *Activity) activityDatamodel.Activity {
	return activityDatamodel.Activity{
		ID:                 a.ID,
		UserID:             a.UserID,
		Type:               string(a.Type),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
		ReceiptImage:       a.ReceiptImage,
		Description:        a.Description,
		Date:               a.Date,
		Time:               a.Time,
		ServingEmployee:    a.ServingEmployee,
		BuyerName:          a.BuyerName,
		CustomerName:       a.CustomerName,
		ServiceDate:        a.ServiceDate,
		ServiceType:        a.ServiceType,
		Notes:              a.Notes,
		RawMaterialWeight:  a.RawMaterialWeight,
		WeightUnit:         a.WeightUnit,
		MachineImageBefore: a.MachineImageBefore,
		MachineImageAfter:  a.MachineImageAfter,
		Location:           a.Location,
		ItemDescription:    a.ItemDescription,
		Quantity:           a.Quantity,
		Condition:          a.Condition,
	}
}

func FromDataModel(a activityDatamodel.Activity) *Activity {
	return &Activity{
		ID:                 a.ID,
		UserID:             a.UserID,
		Type:               Type(a.Type),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
		ReceiptImage:       a.ReceiptImage,
		Description:        a.Description,
		Date:               a.Date,
		Time:               a.Time,
		ServingEmployee:    a.ServingEmployee,
		BuyerName:          a.BuyerName,
		CustomerName:       a.CustomerName,
		ServiceDate:        a.ServiceDate,
		ServiceType:        a.ServiceType,
		Notes:              a.Notes,
		RawMaterialWeight:  a.RawMaterialWeight,
		WeightUnit:         a.WeightUnit,
		MachineImageBefore: a.MachineImageBefore,
		MachineImageAfter:  a.MachineImageAfter,
		Location:           a.Location,
		ItemDescription:    a.ItemDescription,
		Quantity:           a.Quantity,
		Condition:          a.Condition,
	}
}

func FromDataModelSlice(records []activityDatamodel.Activity) []*Activity {
	result := make([]*Activity, len(records))
	for i := range records {
		result[i] = FromDataModel(records[i])
	}
	return result
}
