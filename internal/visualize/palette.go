package visualize

import (
	"fmt"
	"image/color"
	"strings"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// Colors resolves a colormap name into k distinct cluster colors.
// Names follow the common colormap vocabulary used in params.yaml.
func Colors(name string, k int) ([]color.Color, error) {
	switch strings.ToLower(name) {
	case "rainbow":
		return palette.Rainbow(k, palette.Red, palette.Magenta, 1, 1, 1).Colors(), nil
	case "viridis", "kindlmann":
		return morelandColors(moreland.Kindlmann(), k), nil
	case "extended_kindlmann":
		return morelandColors(moreland.ExtendedKindlmann(), k), nil
	case "coolwarm", "bluered":
		return morelandColors(moreland.SmoothBlueRed(), k), nil
	case "blackbody", "hot":
		return morelandColors(moreland.BlackBody(), k), nil
	default:
		return nil, fmt.Errorf("unknown colormap %q", name)
	}
}

func morelandColors(cm palette.ColorMap, k int) []color.Color {
	cm.SetMin(0)
	cm.SetMax(1)
	return cm.Palette(k).Colors()
}
