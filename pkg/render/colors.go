package render

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/yumyai/synbrowser/pkg/browser"
)

// chrColorScheme colours comparison chromosomes on both tracks.
var chrColorScheme = map[string]string{
	"1":  "#f74600",
	"2":  "#852c00",
	"3":  "#d96c00",
	"4":  "#edae00",
	"5":  "#7f7300",
	"6":  "#fff200",
	"7":  "#8bb500",
	"8":  "#00cf07",
	"9":  "#006b07",
	"10": "#00d498",
	"11": "#007354",
	"12": "#00ecf0",
	"13": "#008f99",
	"14": "#00ccff",
	"15": "#007aa3",
	"16": "#0089fa",
	"17": "#00457d",
	"18": "#004bed",
	"19": "#00217d",
	"20": "#9f00d4",
	"21": "#5b0069",
	"22": "#b80087",
	"X":  "#ce4676",
	"Y":  "#ea9399",
}

// ChromosomeColors returns a copy of the chromosome colour scheme.
func ChromosomeColors() map[string]string {
	return maps.Clone(chrColorScheme)
}

// FadeColor turns a #rrggbb colour into rgba with the given opacity.
// Anything that is not a six digit hex colour comes back unchanged.
func FadeColor(hex string, opacity float64) string {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return hex
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return hex
	}
	r, g, b := v>>16&0xff, v>>8&0xff, v&0xff
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, strconv.FormatFloat(opacity, 'f', -1, 64))
}

// StatusColor is the colour of the status indicator.
func StatusColor(k browser.StatusKind) string {
	switch k {
	case browser.StatusError:
		return "rgb(201,48,44)"
	case browser.StatusProcessing:
		return "rgb(252,177,5)"
	}
	return "rgb(39,175,24)"
}
