// Package calculator derives manufacturing cut-list measurements from the
// customer-supplied dimensions of a blind. Every function here is pure.
package calculator

import (
	"math"

	"blinds-orders/internal/models"
)

const (
	// SlatPitch35mm and SlatPitch50mm are the slat spacing in inches per base size.
	SlatPitch35mm = 1.27
	SlatPitch50mm = 1.81

	// slatMargin is always added to the slat count as a manufacturing margin.
	slatMargin = 1

	inchToCm = 2.54

	// quotients closer than this to an integer are treated as that integer, so
	// height = pitch*k gives k slats before the margin despite float residue.
	integerTolerance = 1e-9
)

// SlatPitch returns the slat pitch for a base size. Anything that is not 35mm uses the 50mm pitch.
func SlatPitch(base models.BaseSize) float64 {
	if base == models.BaseSize35mm {
		return SlatPitch35mm
	}
	return SlatPitch50mm
}

// DeriveWoodenSpec computes the cut list of a wooden blind.
// Width and height must be positive; callers validate before calling.
// ChannelUching goes negative for widths under 12 inches and is returned as is.
func DeriveWoodenSpec(width, height float64, base models.BaseSize) models.WoodenSpec {
	channel := (width - 12) / 4
	return models.WoodenSpec{
		NumberOfSlats:   slatCount(height, SlatPitch(base)),
		TiltCordLength:  height*2 + 10,
		CordLength:      height*4 + (width - 10),
		LadderTapeSize:  height + 5,
		MsRoad:          width - 5,
		ChannelUching:   channel,
		ChannelUchingCm: channel * inchToCm,
	}
}

func slatCount(height, pitch float64) int {
	q := height / pitch
	if r := math.Round(q); math.Abs(q-r) <= integerTolerance*math.Max(1, math.Abs(q)) {
		q = r
	}
	return int(math.Ceil(q)) + slatMargin
}

// Apply recomputes the type-specific fields of a record from its dimensions.
// Wooden records get a fresh cut list and lose any normal-only fields; normal
// records keep fabric/image as given and lose every wooden-only field.
// A wooden record without a base size is left untouched and reported with ok=false.
func Apply(o models.Order) (out models.Order, ok bool) {
	out = o.Clone()
	switch o.OrderType {
	case models.OrderTypeWooden:
		if o.BaseSize == nil {
			return o, false
		}
		out.FabricCode = nil
		out.ImageURL = nil
		out.SetWoodenSpec(DeriveWoodenSpec(o.Width, o.Height, *o.BaseSize))
		return out, true
	case models.OrderTypeNormal:
		out.BaseSize = nil
		out.WoodenColorCode = nil
		out.OperatingSide = nil
		out.NumberOfSlats = nil
		out.TiltCordLength = nil
		out.CordLength = nil
		out.LadderTapeSize = nil
		out.MsRoad = nil
		out.ChannelUching = nil
		out.ChannelUchingCm = nil
		return out, true
	}
	return o, false
}
