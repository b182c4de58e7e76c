package models

import (
	"time"
)

// Order is the persisted order record: customer data, dimensions and the
// manufacturing specification derived from them.
type Order struct {
	ID          string    `json:"id"           gorm:"type:varchar(36);primary_key"`
	OrderNumber string    `json:"order_number" gorm:"type:varchar(32);index"`
	OrderType   OrderType `json:"order_type"   gorm:"type:varchar(16);not null"`
	Status      Status    `json:"status"       gorm:"type:varchar(16);not null;index"`

	CustomerName  string  `json:"customer_name"`
	CustomerEmail *string `json:"customer_email,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`

	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Quantity int     `json:"quantity"`

	// normal
	FabricCode *string `json:"fabric_code,omitempty"`
	ImageURL   *string `json:"image_url,omitempty"`

	// wooden
	BaseSize        *BaseSize      `json:"base_size,omitempty"       gorm:"type:varchar(8)"`
	WoodenColorCode *string        `json:"wooden_color_code,omitempty"`
	OperatingSide   *OperatingSide `json:"operating_side,omitempty"  gorm:"type:varchar(8)"`
	NumberOfSlats   *int           `json:"number_of_slats,omitempty"`
	TiltCordLength  *float64       `json:"tilt_cord_length,omitempty"`
	CordLength      *float64       `json:"cord_length,omitempty"`
	LadderTapeSize  *float64       `json:"ladder_tape_size,omitempty"`
	MsRoad          *float64       `json:"ms_road,omitempty"`
	ChannelUching   *float64       `json:"channel_uching,omitempty"`
	ChannelUchingCm *float64       `json:"channel_uching_cm,omitempty"`

	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

func (Order) TableName() string { return "orders" }

// HasWoodenFields reports whether any wooden-only field is set.
func (o Order) HasWoodenFields() bool {
	return o.BaseSize != nil || o.WoodenColorCode != nil || o.OperatingSide != nil ||
		o.NumberOfSlats != nil || o.TiltCordLength != nil || o.CordLength != nil ||
		o.LadderTapeSize != nil || o.MsRoad != nil || o.ChannelUching != nil || o.ChannelUchingCm != nil
}

// HasDerivedFields reports whether all seven derived wooden fields are set.
func (o Order) HasDerivedFields() bool {
	return o.NumberOfSlats != nil && o.TiltCordLength != nil && o.CordLength != nil &&
		o.LadderTapeSize != nil && o.MsRoad != nil && o.ChannelUching != nil && o.ChannelUchingCm != nil
}

// HasNormalFields reports whether any normal-only field is set.
func (o Order) HasNormalFields() bool {
	return o.FabricCode != nil || o.ImageURL != nil
}

// Complete checks the per-type field presence rules of a record.
func (o Order) Complete() bool {
	switch o.OrderType {
	case OrderTypeWooden:
		return o.BaseSize != nil && o.OperatingSide != nil && o.HasDerivedFields() && !o.HasNormalFields()
	case OrderTypeNormal:
		return !o.HasWoodenFields()
	default:
		return false
	}
}

// WoodenSpec returns the derived fields of a wooden record, ok is false if any is missing.
func (o Order) WoodenSpec() (WoodenSpec, bool) {
	if !o.HasDerivedFields() {
		return WoodenSpec{}, false
	}
	return WoodenSpec{
		NumberOfSlats:   *o.NumberOfSlats,
		TiltCordLength:  *o.TiltCordLength,
		CordLength:      *o.CordLength,
		LadderTapeSize:  *o.LadderTapeSize,
		MsRoad:          *o.MsRoad,
		ChannelUching:   *o.ChannelUching,
		ChannelUchingCm: *o.ChannelUchingCm,
	}, true
}

// SetWoodenSpec stores the derived fields on the record.
func (o *Order) SetWoodenSpec(s WoodenSpec) {
	o.NumberOfSlats = &s.NumberOfSlats
	o.TiltCordLength = &s.TiltCordLength
	o.CordLength = &s.CordLength
	o.LadderTapeSize = &s.LadderTapeSize
	o.MsRoad = &s.MsRoad
	o.ChannelUching = &s.ChannelUching
	o.ChannelUchingCm = &s.ChannelUchingCm
}

// Clone returns a deep copy so cached records are never aliased by callers.
func (o Order) Clone() Order {
	c := o
	c.CustomerEmail = cloneStr(o.CustomerEmail)
	c.CustomerPhone = cloneStr(o.CustomerPhone)
	c.FabricCode = cloneStr(o.FabricCode)
	c.ImageURL = cloneStr(o.ImageURL)
	c.WoodenColorCode = cloneStr(o.WoodenColorCode)
	c.Notes = cloneStr(o.Notes)
	if o.BaseSize != nil {
		v := *o.BaseSize
		c.BaseSize = &v
	}
	if o.OperatingSide != nil {
		v := *o.OperatingSide
		c.OperatingSide = &v
	}
	if o.NumberOfSlats != nil {
		v := *o.NumberOfSlats
		c.NumberOfSlats = &v
	}
	c.TiltCordLength = cloneFloat(o.TiltCordLength)
	c.CordLength = cloneFloat(o.CordLength)
	c.LadderTapeSize = cloneFloat(o.LadderTapeSize)
	c.MsRoad = cloneFloat(o.MsRoad)
	c.ChannelUching = cloneFloat(o.ChannelUching)
	c.ChannelUchingCm = cloneFloat(o.ChannelUchingCm)
	return c
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
