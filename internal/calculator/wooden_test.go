package calculator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"blinds-orders/internal/calculator"
	"blinds-orders/internal/models"
)

func TestDeriveWoodenSpec_CordAndTapeFormulas(t *testing.T) {
	s := calculator.DeriveWoodenSpec(40, 60, models.BaseSize50mm)

	require.Equal(t, 130.0, s.TiltCordLength)
	require.Equal(t, 270.0, s.CordLength)
	require.Equal(t, 65.0, s.LadderTapeSize)
	require.Equal(t, 35.0, s.MsRoad)
	require.Equal(t, 7.0, s.ChannelUching)
	require.InDelta(t, 17.78, s.ChannelUchingCm, 1e-9)
}

func TestDeriveWoodenSpec_SlatMarginOnExactMultiple(t *testing.T) {
	s := calculator.DeriveWoodenSpec(30, 12.7, models.BaseSize35mm)
	require.Equal(t, 11, s.NumberOfSlats)
}

func TestDeriveWoodenSpec_SlatBoundaryForEveryMultiple(t *testing.T) {
	for _, base := range []models.BaseSize{models.BaseSize35mm, models.BaseSize50mm} {
		pitch := calculator.SlatPitch(base)
		for k := 1; k <= 200; k++ {
			s := calculator.DeriveWoodenSpec(30, pitch*float64(k), base)
			require.Equalf(t, k+1, s.NumberOfSlats, "base=%s k=%d", base, k)
		}
	}
}

func TestDeriveWoodenSpec_PartialSlatRoundsUp(t *testing.T) {
	s := calculator.DeriveWoodenSpec(36, 72, models.BaseSize35mm)
	require.Equal(t, 58, s.NumberOfSlats)
	require.Equal(t, 31.0, s.MsRoad)

	s = calculator.DeriveWoodenSpec(36, 72, models.BaseSize50mm)
	require.Equal(t, 41, s.NumberOfSlats) // ceil(39.78) + 1
}

func TestDeriveWoodenSpec_NarrowWidthKeepsNegativeChannel(t *testing.T) {
	s := calculator.DeriveWoodenSpec(8, 20, models.BaseSize35mm)
	require.Equal(t, -1.0, s.ChannelUching)
	require.InDelta(t, -2.54, s.ChannelUchingCm, 1e-9)
	require.Equal(t, 3.0, s.MsRoad)
}

func TestDeriveWoodenSpec_Deterministic(t *testing.T) {
	first := calculator.DeriveWoodenSpec(47.25, 63.5, models.BaseSize35mm)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, calculator.DeriveWoodenSpec(47.25, 63.5, models.BaseSize35mm))
	}
}

func TestApply_WoodenFillsAllDerivedFields(t *testing.T) {
	base := models.BaseSize35mm
	fabric := "F-1"
	o := models.Order{OrderType: models.OrderTypeWooden, Width: 36, Height: 72, BaseSize: &base, FabricCode: &fabric}

	out, ok := calculator.Apply(o)
	require.True(t, ok)
	require.True(t, out.HasDerivedFields())
	require.Nil(t, out.FabricCode)
	require.Equal(t, 58, *out.NumberOfSlats)

	// input is not mutated
	require.Nil(t, o.NumberOfSlats)
	require.NotNil(t, o.FabricCode)
}

func TestApply_WoodenWithoutBaseSize(t *testing.T) {
	o := models.Order{OrderType: models.OrderTypeWooden, Width: 36, Height: 72}
	_, ok := calculator.Apply(o)
	require.False(t, ok)
}

func TestApply_NormalIsPassThrough(t *testing.T) {
	fabric, img := "FAB-9", "https://cdn.example.com/a.png"
	slats := 12
	o := models.Order{OrderType: models.OrderTypeNormal, Width: 10, Height: 10, FabricCode: &fabric, ImageURL: &img, NumberOfSlats: &slats}

	out, ok := calculator.Apply(o)
	require.True(t, ok)
	require.Equal(t, fabric, *out.FabricCode)
	require.Equal(t, img, *out.ImageURL)
	require.False(t, out.HasWoodenFields())
	require.True(t, out.Complete())
}
