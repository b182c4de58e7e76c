package models

type OrderType string

const (
	OrderTypeNormal OrderType = "normal"
	OrderTypeWooden OrderType = "wooden"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeNormal || t == OrderTypeWooden
}

// Status is the fulfillment status. Values are ordered pending < in-progress < ready < completed.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusReady      Status = "ready"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusReady, StatusCompleted:
		return true
	}
	return false
}

type BaseSize string

const (
	BaseSize35mm BaseSize = "35mm"
	BaseSize50mm BaseSize = "50mm"
)

func (b BaseSize) Valid() bool {
	return b == BaseSize35mm || b == BaseSize50mm
}

type OperatingSide string

const (
	OperatingSideLeft  OperatingSide = "left"
	OperatingSideRight OperatingSide = "right"
)

func (s OperatingSide) Valid() bool {
	return s == OperatingSideLeft || s == OperatingSideRight
}

// WoodenSpec holds the manufacturing fields derived for a wooden blind.
// Lengths are in inches unless the name says otherwise.
type WoodenSpec struct {
	NumberOfSlats   int     `json:"number_of_slats"`
	TiltCordLength  float64 `json:"tilt_cord_length"`
	CordLength      float64 `json:"cord_length"`
	LadderTapeSize  float64 `json:"ladder_tape_size"`
	MsRoad          float64 `json:"ms_road"`
	ChannelUching   float64 `json:"channel_uching"`
	ChannelUchingCm float64 `json:"channel_uching_cm"`
}
