package models

// Draft is what the sales console submits to create an order.
type Draft struct {
	OrderType     OrderType `json:"order_type"     validate:"required,oneof=normal wooden"`
	CustomerName  string    `json:"customer_name"  validate:"required,max=128"`
	CustomerEmail *string   `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone *string   `json:"customer_phone" validate:"omitempty,max=32"`

	Width    float64 `json:"width"    validate:"gt=0"`
	Height   float64 `json:"height"   validate:"gt=0"`
	Quantity int     `json:"quantity" validate:"gt=0"`

	FabricCode *string `json:"fabric_code" validate:"omitempty,max=64"`
	ImageURL   *string `json:"image_url"   validate:"omitempty,url"`

	BaseSize        *BaseSize      `json:"base_size"         validate:"omitempty,oneof=35mm 50mm"`
	WoodenColorCode *string        `json:"wooden_color_code" validate:"omitempty,max=64"`
	OperatingSide   *OperatingSide `json:"operating_side"    validate:"omitempty,oneof=left right"`

	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

// OrderEdit carries the sales-editable fields. Nil fields are left as they are.
// OrderType and OrderNumber are accepted only so a change attempt can be rejected.
type OrderEdit struct {
	OrderType   *OrderType `json:"order_type,omitempty"`
	OrderNumber *string    `json:"order_number,omitempty"`

	CustomerName  *string `json:"customer_name,omitempty"  validate:"omitempty,min=1,max=128"`
	CustomerEmail *string `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone *string `json:"customer_phone,omitempty" validate:"omitempty,max=32"`

	Width    *float64 `json:"width,omitempty"    validate:"omitempty,gt=0"`
	Height   *float64 `json:"height,omitempty"   validate:"omitempty,gt=0"`
	Quantity *int     `json:"quantity,omitempty" validate:"omitempty,gt=0"`

	FabricCode *string `json:"fabric_code,omitempty" validate:"omitempty,max=64"`
	ImageURL   *string `json:"image_url,omitempty"   validate:"omitempty,url"`

	BaseSize        *BaseSize      `json:"base_size,omitempty"         validate:"omitempty,oneof=35mm 50mm"`
	WoodenColorCode *string        `json:"wooden_color_code,omitempty" validate:"omitempty,max=64"`
	OperatingSide   *OperatingSide `json:"operating_side,omitempty"    validate:"omitempty,oneof=left right"`

	Notes *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// Command actions accepted from automated status updaters.
const (
	ActionAdvance = "advance"
	ActionSet     = "set"
)

// StatusCommand is a status change request delivered over kafka.
// When ExpectedStatus is set the command applies only to an order currently in
// that status, which makes redelivered commands harmless.
type StatusCommand struct {
	OrderID        string `json:"order_id"                  validate:"required"`
	Action         string `json:"action"                    validate:"required,oneof=advance set"`
	Status         Status `json:"status"                    validate:"omitempty,oneof=pending in-progress ready completed"`
	ExpectedStatus Status `json:"expected_status,omitempty" validate:"omitempty,oneof=pending in-progress ready completed"`
	Actor          string `json:"actor"                     validate:"required"`
}

// Change feed event kinds.
const (
	EventCreated   = "created"
	EventUpdated   = "updated"
	EventAdvanced  = "advanced"
	EventStatusSet = "status_set"
)

// ChangeEvent is published after every successful record replace.
type ChangeEvent struct {
	Event string `json:"event"`
	Order Order  `json:"order"`
}
