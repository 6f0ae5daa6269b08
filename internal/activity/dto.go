package activity

import (
	"errors"
	"regexp"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// CreateActivityDTO carries one variant's payload plus the discriminant.
// Validate checks only the field group the type selects; stray fields from
// other variants are dropped by ToActivity.
type CreateActivityDTO struct {
	Type string `json:"type"`

	ReceiptImage string `json:"receiptImage,omitempty"`
	Description  string `json:"description,omitempty"`

	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`
	ServingEmployee string `json:"servingEmployee,omitempty"`
	BuyerName       string `json:"buyerName,omitempty"`

	CustomerName string `json:"customerName,omitempty"`
	ServiceDate  string `json:"serviceDate,omitempty"`
	ServiceType  string `json:"serviceType,omitempty"`
	Notes        string `json:"notes,omitempty"`

	RawMaterialWeight  float64 `json:"rawMaterialWeight,omitempty"`
	WeightUnit         string  `json:"weightUnit,omitempty"`
	MachineImageBefore string  `json:"machineImageBefore,omitempty"`
	MachineImageAfter  string  `json:"machineImageAfter,omitempty"`

	Location        string   `json:"location,omitempty"`
	ItemDescription string   `json:"itemDescription,omitempty"`
	Quantity        *float64 `json:"quantity,omitempty"`
	Condition       string   `json:"condition,omitempty"`
}

func (dto CreateActivityDTO) Validate() error {
	switch Type(dto.Type) {
	case TypeExpense:
		if dto.ReceiptImage == "" {
			return errors.New("receipt image is required")
		}
	case TypeSales:
		if dto.ReceiptImage == "" {
			return errors.New("receipt image is required")
		}
		if !datePattern.MatchString(dto.Date) {
			return errors.New("date must be in YYYY-MM-DD format")
		}
		if !timePattern.MatchString(dto.Time) {
			return errors.New("time must be in HH:MM format")
		}
		if dto.ServingEmployee == "" {
			return errors.New("serving employee is required")
		}
		if len(dto.BuyerName) < 2 {
			return errors.New("buyer name must be at least 2 characters")
		}
	case TypeCustomer:
		if len(dto.CustomerName) < 2 {
			return errors.New("customer name must be at least 2 characters")
		}
		if !datePattern.MatchString(dto.ServiceDate) {
			return errors.New("service date must be in YYYY-MM-DD format")
		}
		if len(dto.ServiceType) < 2 {
			return errors.New("service type must be at least 2 characters")
		}
	case TypeProduction:
		if dto.RawMaterialWeight <= 0 {
			return errors.New("raw material weight must be greater than zero")
		}
		if dto.WeightUnit == "" {
			return errors.New("weight unit is required")
		}
		if dto.MachineImageBefore == "" || dto.MachineImageAfter == "" {
			return errors.New("both machine images are required")
		}
	case TypeStorage:
		if len(dto.Location) < 2 {
			return errors.New("location must be at least 2 characters")
		}
		if len(dto.ItemDescription) < 5 {
			return errors.New("item description must be at least 5 characters")
		}
		if dto.Quantity == nil || *dto.Quantity < 0 {
			return errors.New("quantity must be zero or greater")
		}
	default:
		return ErrInvalidType
	}
	return nil
}

// ToActivity keeps only the payload fields belonging to the selected type.
func (dto CreateActivityDTO) ToActivity(userID string) *Activity {
	a := &Activity{UserID: userID, Type: Type(dto.Type)}
	switch a.Type {
	case TypeExpense:
		a.ReceiptImage = dto.ReceiptImage
		a.Description = dto.Description
	case TypeSales:
		a.ReceiptImage = dto.ReceiptImage
		a.Date = dto.Date
		a.Time = dto.Time
		a.ServingEmployee = dto.ServingEmployee
		a.BuyerName = dto.BuyerName
	case TypeCustomer:
		a.CustomerName = dto.CustomerName
		a.ServiceDate = dto.ServiceDate
		a.ServiceType = dto.ServiceType
		a.Notes = dto.Notes
	case TypeProduction:
		a.RawMaterialWeight = dto.RawMaterialWeight
		a.WeightUnit = dto.WeightUnit
		a.MachineImageBefore = dto.MachineImageBefore
		a.MachineImageAfter = dto.MachineImageAfter
		a.Notes = dto.Notes
	case TypeStorage:
		a.Location = dto.Location
		a.ItemDescription = dto.ItemDescription
		if dto.Quantity != nil {
			a.Quantity = *dto.Quantity
		}
		a.Condition = dto.Condition
	}
	return a
}

// UpdateActivityDTO carries a partial payload merge. The type and owner of
// a record never change on update; nil means "leave unchanged".
type UpdateActivityDTO struct {
	ReceiptImage *string `json:"receiptImage,omitempty"`
	Description  *string `json:"description,omitempty"`

	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	ServingEmployee *string `json:"servingEmployee,omitempty"`
	BuyerName       *string `json:"buyerName,omitempty"`

	CustomerName *string `json:"customerName,omitempty"`
	ServiceDate  *string `json:"serviceDate,omitempty"`
	ServiceType  *string `json:"serviceType,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	RawMaterialWeight  *float64 `json:"rawMaterialWeight,omitempty"`
	WeightUnit         *string  `json:"weightUnit,omitempty"`
	MachineImageBefore *string  `json:"machineImageBefore,omitempty"`
	MachineImageAfter  *string  `json:"machineImageAfter,omitempty"`

	Location        *string  `json:"location,omitempty"`
	ItemDescription *string  `json:"itemDescription,omitempty"`
	Quantity        *float64 `json:"quantity,omitempty"`
	Condition       *string  `json:"condition,omitempty"`
}

func (dto UpdateActivityDTO) Validate() error {
	if dto.Date != nil && !datePattern.MatchString(*dto.Date) {
		return errors.New("date must be in YYYY-MM-DD format")
	}
	if dto.Time != nil && !timePattern.MatchString(*dto.Time) {
		return errors.New("time must be in HH:MM format")
	}
	if dto.ServiceDate != nil && !datePattern.MatchString(*dto.ServiceDate) {
		return errors.New("service date must be in YYYY-MM-DD format")
	}
	if dto.BuyerName != nil && len(*dto.BuyerName) < 2 {
		return errors.New("buyer name must be at least 2 characters")
	}
	if dto.CustomerName != nil && len(*dto.CustomerName) < 2 {
		return errors.New("customer name must be at least 2 characters")
	}
	if dto.ServiceType != nil && len(*dto.ServiceType) < 2 {
		return errors.New("service type must be at least 2 characters")
	}
	if dto.RawMaterialWeight != nil && *dto.RawMaterialWeight <= 0 {
		return errors.New("raw material weight must be greater than zero")
	}
	if dto.Location != nil && len(*dto.Location) < 2 {
		return errors.New("location must be at least 2 characters")
	}
	if dto.ItemDescription != nil && len(*dto.ItemDescription) < 5 {
		return errors.New("item description must be at least 5 characters")
	}
	if dto.Quantity != nil && *dto.Quantity < 0 {
		return errors.New("quantity must be zero or greater")
	}
	return nil
}
