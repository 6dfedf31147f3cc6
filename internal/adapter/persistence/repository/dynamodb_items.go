package repository

import (
	"errors"
	"strconv"
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type statusHistoryItem struct {
	Status    string `dynamodbav:"status"`
	Timestamp string `dynamodbav:"timestamp"`
	ChangedBy string `dynamodbav:"changed_by,omitempty"`
}

type orderItem struct {
	ID             string              `dynamodbav:"id"`
	OrderNumber    string              `dynamodbav:"order_number"`
	Status         string              `dynamodbav:"status"`
	StatusHistory  []statusHistoryItem `dynamodbav:"status_history"`
	CostEstimate   float64             `dynamodbav:"cost_estimate"`
	AmountPaid     float64             `dynamodbav:"amount_paid"`
	DepositAmount  float64             `dynamodbav:"deposit_amount"`
	BalanceDue     float64             `dynamodbav:"balance_due"`
	CustomerID     string              `dynamodbav:"customer_id,omitempty"`
	CustomerName   string              `dynamodbav:"customer_name"`
	CustomerEmail  string              `dynamodbav:"customer_email,omitempty"`
	CustomerPhone  string              `dynamodbav:"customer_phone,omitempty"`
	CompanyID      string              `dynamodbav:"company_id,omitempty"`
	DeviceType     string              `dynamodbav:"device_type,omitempty"`
	DeviceBrand    string              `dynamodbav:"device_brand,omitempty"`
	DeviceModel    string              `dynamodbav:"device_model,omitempty"`
	DeviceSerial   string              `dynamodbav:"device_serial,omitempty"`
	InitialProblem string              `dynamodbav:"initial_problem"`
	CreatedBy      string              `dynamodbav:"created_by,omitempty"`
	CreatedAt      string              `dynamodbav:"created_at"`
	UpdatedAt      string              `dynamodbav:"updated_at"`
	Version        int64               `dynamodbav:"version"`
}

func toStatusHistoryItem(e entities.StatusHistoryEntry) statusHistoryItem {
	return statusHistoryItem{Status: e.Status, Timestamp: formatTime(e.Timestamp), ChangedBy: e.ChangedBy}
}

func toOrderItem(o entities.Order) orderItem {
	history := make([]statusHistoryItem, 0, len(o.StatusHistory))
	for _, h := range o.StatusHistory {
		history = append(history, toStatusHistoryItem(h))
	}
	return orderItem{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Status:         o.Status,
		StatusHistory:  history,
		CostEstimate:   o.CostEstimate,
		AmountPaid:     o.AmountPaid,
		DepositAmount:  o.DepositAmount,
		BalanceDue:     o.BalanceDue,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		CustomerEmail:  o.CustomerEmail,
		CustomerPhone:  o.CustomerPhone,
		CompanyID:      o.CompanyID,
		DeviceType:     o.DeviceType,
		DeviceBrand:    o.DeviceBrand,
		DeviceModel:    o.DeviceModel,
		DeviceSerial:   o.DeviceSerial,
		InitialProblem: o.InitialProblem,
		CreatedBy:      o.CreatedBy,
		CreatedAt:      formatTime(o.CreatedAt),
		UpdatedAt:      formatTime(o.UpdatedAt),
		Version:        o.Version,
	}
}

func fromOrderItem(it orderItem) entities.Order {
	history := make([]entities.StatusHistoryEntry, 0, len(it.StatusHistory))
	for _, h := range it.StatusHistory {
		history = append(history, entities.StatusHistoryEntry{Status: h.Status, Timestamp: parseTime(h.Timestamp), ChangedBy: h.ChangedBy})
	}
	return entities.Order{
		ID:             it.ID,
		OrderNumber:    it.OrderNumber,
		Status:         it.Status,
		StatusHistory:  history,
		CostEstimate:   it.CostEstimate,
		AmountPaid:     it.AmountPaid,
		DepositAmount:  it.DepositAmount,
		BalanceDue:     it.BalanceDue,
		CustomerID:     it.CustomerID,
		CustomerName:   it.CustomerName,
		CustomerEmail:  it.CustomerEmail,
		CustomerPhone:  it.CustomerPhone,
		CompanyID:      it.CompanyID,
		DeviceType:     it.DeviceType,
		DeviceBrand:    it.DeviceBrand,
		DeviceModel:    it.DeviceModel,
		DeviceSerial:   it.DeviceSerial,
		InitialProblem: it.InitialProblem,
		CreatedBy:      it.CreatedBy,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
		Version:        it.Version,
	}
}

const (
	userKindUser   = "user"
	userKindUnique = "unique"
)

// userItem shares its table with uniqueness guards ("email#..." and
// "code#..." keys), told apart by Kind.
type userItem struct {
	ID           string          `dynamodbav:"id"`
	Kind         string          `dynamodbav:"kind"`
	FullName     string          `dynamodbav:"full_name"`
	Email        string          `dynamodbav:"email"`
	Role         string          `dynamodbav:"role"`
	EmployeeCode string          `dynamodbav:"employee_code,omitempty"`
	PINHash      string          `dynamodbav:"pin_hash"`
	PINIndex     string          `dynamodbav:"pin_index,omitempty"`
	Active       bool            `dynamodbav:"active"`
	Permissions  map[string]bool `dynamodbav:"permissions,omitempty"`
	HourlyRate   float64         `dynamodbav:"hourly_rate"`
	CreatedAt    string          `dynamodbav:"created_at"`
	UpdatedAt    string          `dynamodbav:"updated_at"`
}

type uniqueGuardItem struct {
	ID     string `dynamodbav:"id"`
	Kind   string `dynamodbav:"kind"`
	UserID string `dynamodbav:"user_id"`
}

func toUserItem(u entities.User) userItem {
	return userItem{
		ID:           u.ID,
		Kind:         userKindUser,
		FullName:     u.FullName,
		Email:        u.Email,
		Role:         string(u.Role),
		EmployeeCode: u.EmployeeCode,
		PINHash:      u.PINHash,
		PINIndex:     u.PINIndex,
		Active:       u.Active,
		Permissions:  u.Permissions,
		HourlyRate:   u.HourlyRate,
		CreatedAt:    formatTime(u.CreatedAt),
		UpdatedAt:    formatTime(u.UpdatedAt),
	}
}

func fromUserItem(it userItem) entities.User {
	return entities.User{
		ID:           it.ID,
		FullName:     it.FullName,
		Email:        it.Email,
		Role:         entities.Role(it.Role),
		EmployeeCode: it.EmployeeCode,
		PINHash:      it.PINHash,
		PINIndex:     it.PINIndex,
		Active:       it.Active,
		Permissions:  it.Permissions,
		HourlyRate:   it.HourlyRate,
		CreatedAt:    parseTime(it.CreatedAt),
		UpdatedAt:    parseTime(it.UpdatedAt),
	}
}

type transactionItem struct {
	ID            string  `dynamodbav:"id"`
	OrderID       string  `dynamodbav:"order_id"`
	OrderNumber   string  `dynamodbav:"order_number"`
	Type          string  `dynamodbav:"type"`
	Category      string  `dynamodbav:"category"`
	Amount        float64 `dynamodbav:"amount"`
	PaymentMethod string  `dynamodbav:"payment_method"`
	Description   string  `dynamodbav:"description"`
	Reference     string  `dynamodbav:"reference,omitempty"`
	RecordedBy    string  `dynamodbav:"recorded_by"`
	CreatedAt     string  `dynamodbav:"created_at"`
}

func toTransactionItem(t entities.Transaction) transactionItem {
	return transactionItem{
		ID:            t.ID,
		OrderID:       t.OrderID,
		OrderNumber:   t.OrderNumber,
		Type:          t.Type,
		Category:      t.Category,
		Amount:        t.Amount,
		PaymentMethod: string(t.PaymentMethod),
		Description:   t.Description,
		Reference:     t.Reference,
		RecordedBy:    t.RecordedBy,
		CreatedAt:     formatTime(t.CreatedAt),
	}
}

func fromTransactionItem(it transactionItem) entities.Transaction {
	return entities.Transaction{
		ID:            it.ID,
		OrderID:       it.OrderID,
		OrderNumber:   it.OrderNumber,
		Type:          it.Type,
		Category:      it.Category,
		Amount:        it.Amount,
		PaymentMethod: entities.PaymentMethod(it.PaymentMethod),
		Description:   it.Description,
		Reference:     it.Reference,
		RecordedBy:    it.RecordedBy,
		CreatedAt:     parseTime(it.CreatedAt),
	}
}

type saleItem struct {
	ID            string  `dynamodbav:"id"`
	SaleNumber    string  `dynamodbav:"sale_number"`
	OrderID       string  `dynamodbav:"order_id"`
	OrderNumber   string  `dynamodbav:"order_number"`
	CustomerID    string  `dynamodbav:"customer_id,omitempty"`
	CustomerName  string  `dynamodbav:"customer_name,omitempty"`
	Subtotal      float64 `dynamodbav:"subtotal"`
	TaxRate       float64 `dynamodbav:"tax_rate"`
	TaxAmount     float64 `dynamodbav:"tax_amount"`
	Total         float64 `dynamodbav:"total"`
	DepositCredit float64 `dynamodbav:"deposit_credit"`
	AmountDue     float64 `dynamodbav:"amount_due"`
	PaymentMethod string  `dynamodbav:"payment_method"`
	Notes         string  `dynamodbav:"notes,omitempty"`
	CreatedBy     string  `dynamodbav:"created_by"`
	CreatedAt     string  `dynamodbav:"created_at"`
}

func toSaleItem(s entities.Sale) saleItem {
	return saleItem{
		ID:            s.ID,
		SaleNumber:    s.SaleNumber,
		OrderID:       s.OrderID,
		OrderNumber:   s.OrderNumber,
		CustomerID:    s.CustomerID,
		CustomerName:  s.CustomerName,
		Subtotal:      s.Subtotal,
		TaxRate:       s.TaxRate,
		TaxAmount:     s.TaxAmount,
		Total:         s.Total,
		DepositCredit: s.DepositCredit,
		AmountDue:     s.AmountDue,
		PaymentMethod: string(s.PaymentMethod),
		Notes:         s.Notes,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     formatTime(s.CreatedAt),
	}
}

type eventItem struct {
	ID          string         `dynamodbav:"id"`
	OrderID     string         `dynamodbav:"order_id"`
	OrderNumber string         `dynamodbav:"order_number"`
	EventType   string         `dynamodbav:"event_type"`
	Description string         `dynamodbav:"description"`
	UserName    string         `dynamodbav:"user_name"`
	Metadata    map[string]any `dynamodbav:"metadata,omitempty"`
	CreatedAt   string         `dynamodbav:"created_at"`
}

func toEventItem(e entities.WorkOrderEvent) eventItem {
	return eventItem{
		ID:          e.ID,
		OrderID:     e.OrderID,
		OrderNumber: e.OrderNumber,
		EventType:   string(e.EventType),
		Description: e.Description,
		UserName:    e.UserName,
		Metadata:    e.Metadata,
		CreatedAt:   formatTime(e.CreatedAt),
	}
}

func fromEventItem(it eventItem) entities.WorkOrderEvent {
	return entities.WorkOrderEvent{
		ID:          it.ID,
		OrderID:     it.OrderID,
		OrderNumber: it.OrderNumber,
		EventType:   entities.WorkOrderEventType(it.EventType),
		Description: it.Description,
		UserName:    it.UserName,
		Metadata:    it.Metadata,
		CreatedAt:   parseTime(it.CreatedAt),
	}
}

type emailLogItem struct {
	ID         string `dynamodbav:"id"`
	OrderID    string `dynamodbav:"order_id"`
	To         string `dynamodbav:"to"`
	Subject    string `dynamodbav:"subject"`
	ProviderID string `dynamodbav:"provider_id,omitempty"`
	Status     string `dynamodbav:"status"`
	SentBy     string `dynamodbav:"sent_by"`
	CreatedAt  string `dynamodbav:"created_at"`
}

type auditLogItem struct {
	ID         string         `dynamodbav:"id"`
	Action     string         `dynamodbav:"action"`
	EntityType string         `dynamodbav:"entity_type"`
	EntityID   string         `dynamodbav:"entity_id"`
	UserName   string         `dynamodbav:"user_name"`
	Changes    map[string]any `dynamodbav:"changes,omitempty"`
	CreatedAt  string         `dynamodbav:"created_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func intToString(v int64) string {
	return strconv.FormatInt(v, 10)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// conditionFailure tells a missing record apart from a stale version after a
// conditional write failed. The item is what DynamoDB returned with
// ReturnValuesOnConditionCheckFailure=ALL_OLD.
func conditionFailure(err error) (failed bool, exists bool) {
	var cfe *types.ConditionalCheckFailedException
	if !errors.As(err, &cfe) {
		return false, false
	}
	return true, len(cfe.Item) > 0
}

// versionConflictOr maps a failed conditional write: nil when the record is
// gone, ErrVersionConflict when it is still there.
func versionConflictOr(exists bool) error {
	if exists {
		return interfaces.ErrVersionConflict
	}
	return nil
}
