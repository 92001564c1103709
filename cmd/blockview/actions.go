package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yumyai/synbrowser/internal/util"
	"github.com/yumyai/synbrowser/pkg/browser"
	"github.com/yumyai/synbrowser/pkg/synteny"
	"github.com/yumyai/synbrowser/pkg/viewport"
)

// splitActions splits a ';' separated action list. Commas are left alone
// since intervals use them as thousands separators.
func splitActions(raw string) []string {
	var out []string
	for _, a := range strings.Split(raw, ";") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// applyAction runs one interaction against b. Actions are pan+, pan-,
// zoom+, zoom-, reset, match, true, a key name (ArrowLeft, ArrowRight, +,
// -) or an interval such as Chr1:1000-5000.
func applyAction(b *browser.Browser, action string) error {
	switch a := strings.TrimSpace(action); {
	case a == "":
		return nil
	case a == "reset":
		return b.Reset()
	case strings.HasPrefix(a, "pan") || strings.HasPrefix(a, "zoom"):
		dir, err := viewport.ParseDirection(a[len(a)-1:])
		if err != nil {
			return err
		}
		if a[:len(a)-1] == "pan" {
			return b.Pan(dir)
		}
		if a[:len(a)-1] == "zoom" {
			return b.Zoom(dir)
		}
		return fmt.Errorf("unknown action %q", a)
	case a == "match" || a == "true":
		o, err := synteny.ParseOrientation(a)
		if err != nil {
			return err
		}
		return b.ChangeOrientation(o)
	case strings.Contains(a, ":"):
		return b.ChangeIntervalString(a)
	default:
		ok, err := b.HandleKey(a)
		if !ok {
			return fmt.Errorf("unknown action %q", a)
		}
		return err
	}
}

// layout is what the tool prints after the actions ran.
type layout struct {
	Interval    string                     `json:"interval"`
	Orientation string                     `json:"orientation"`
	Transform   viewport.Transform         `json:"transform"`
	Labels      browser.CoordinateLabels   `json:"labels"`
	Blocks      []browser.BlockView        `json:"blocks"`
	Reference   []browser.GeneView         `json:"reference_genes"`
	Comparison  []browser.GeneView         `json:"comparison_genes"`
	QTLs        []browser.QTLView          `json:"qtls,omitempty"`
	Indicators  []browser.FeatureIndicator `json:"feature_indicators,omitempty"`
}

func currentLayout(b *browser.Browser) layout {
	return layout{
		Interval:    b.Interval().String(),
		Orientation: b.Orientation().String(),
		Transform:   b.Transform(),
		Labels:      b.CoordinateLabels(),
		Blocks:      b.ReferenceBlocks(),
		Reference:   b.VisibleReferenceGenes(),
		Comparison:  b.VisibleComparisonGenes(),
		QTLs:        b.ReferenceQTLs(),
		Indicators:  b.FeatureIndicators(),
	}
}

// preferencesFromEnv overrides the navigation defaults with
// SYNBROWSER_PAN, SYNBROWSER_ZOOM_IN, SYNBROWSER_ZOOM_OUT and
// SYNBROWSER_MIN_WIDTH when they are set.
func preferencesFromEnv() (viewport.Preferences, error) {
	prefs := viewport.DefaultPreferences()
	floats := []struct {
		key string
		dst *float64
	}{
		{"SYNBROWSER_PAN", &prefs.Pan},
		{"SYNBROWSER_ZOOM_IN", &prefs.ZoomIn},
		{"SYNBROWSER_ZOOM_OUT", &prefs.ZoomOut},
	}
	for _, f := range floats {
		raw, ok := util.Getenv(f.key, "")
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return prefs, fmt.Errorf("invalid %s %q", f.key, raw)
		}
		*f.dst = v
	}
	if raw, ok := util.Getenv("SYNBROWSER_MIN_WIDTH", ""); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return prefs, fmt.Errorf("invalid SYNBROWSER_MIN_WIDTH %q", raw)
		}
		prefs.MinWidth = v
	}
	return prefs, nil
}
