package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"blinds-orders/internal/calculator"
	"blinds-orders/internal/models"
)

// cutlist prints the wooden blind cut list for a width and height in inches,
// the same numbers the sales console previews before an order is saved.
func main() {
	width := flag.Float64("width", 0, "blind width in inches")
	height := flag.Float64("height", 0, "blind height in inches")
	base := flag.String("base", string(models.BaseSize50mm), "slat base size, 35mm or 50mm")
	qty := flag.Int("qty", 1, "number of identical blinds")
	flag.Parse()

	if *width <= 0 || *height <= 0 {
		logrus.Fatal("width and height must be positive")
	}
	if !models.BaseSize(*base).Valid() {
		logrus.Fatalf("unknown base size %q", *base)
	}
	if *qty < 1 {
		logrus.Fatal("qty must be at least 1")
	}

	spec := calculator.DeriveWoodenSpec(*width, *height, models.BaseSize(*base))
	if err := render(os.Stdout, spec, *qty); err != nil {
		logrus.Fatalf("render: %s", err)
	}
}

func render(w io.Writer, spec models.WoodenSpec, qty int) error {
	table := tablewriter.NewWriter(w)
	table.Header("Part", "Per blind", fmt.Sprintf("x%d", qty))

	q := float64(qty)
	rows := [][]string{
		{"Slats", strconv.Itoa(spec.NumberOfSlats), strconv.Itoa(spec.NumberOfSlats * qty)},
		{"Tilt cord (in)", inches(spec.TiltCordLength), inches(spec.TiltCordLength * q)},
		{"Cord (in)", inches(spec.CordLength), inches(spec.CordLength * q)},
		{"Ladder tape (in)", inches(spec.LadderTapeSize), inches(spec.LadderTapeSize * q)},
		{"MS road (in)", inches(spec.MsRoad), inches(spec.MsRoad * q)},
		{"Channel (in)", inches(spec.ChannelUching), inches(spec.ChannelUching * q)},
		{"Channel (cm)", inches(spec.ChannelUchingCm), inches(spec.ChannelUchingCm * q)},
	}
	for _, r := range rows {
		if err := table.Append(r); err != nil {
			return err
		}
	}
	return table.Render()
}

func inches(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
