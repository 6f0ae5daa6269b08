package activity

import "time"

// Activity is the persisted record shape stored in the activities table.
// The record is a tagged union: Type selects which payload field group is
// populated, everything else stays at its zero value and is omitted from
// the serialized form.
type Activity struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// expense
	ReceiptImage string `json:"receiptImage,omitempty"`
	Description  string `json:"description,omitempty"`

	// sales (shares ReceiptImage with expense)
	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`
	ServingEmployee string `json:"servingEmployee,omitempty"`
	BuyerName       string `json:"buyerName,omitempty"`

	// customer
	CustomerName string `json:"customerName,omitempty"`
	ServiceDate  string `json:"serviceDate,omitempty"`
	ServiceType  string `json:"serviceType,omitempty"`
	Notes        string `json:"notes,omitempty"`

	// production (shares Notes with customer)
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
