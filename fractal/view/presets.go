package view

// Preset is a named starting region.
type Preset struct {
	Name string
	View View[float64]
}

// Home is the whole set, framed for a square window.
var Home = View[float64]{Xmin: -2.25, Ymin: -1.5, Xmax: 0.75, Ymax: 1.5}

// Presets are indexed by the digit key that selects them.
var Presets = [...]Preset{
	{Name: "home", View: Home},
	{Name: "seahorse valley", View: View[float64]{Xmin: -0.8, Ymin: 0.05, Xmax: -0.7, Ymax: 0.15}},
	{Name: "elephant valley", View: View[float64]{Xmin: 0.25, Ymin: -0.05, Xmax: 0.35, Ymax: 0.05}},
	{Name: "triple spiral", View: View[float64]{Xmin: -0.748, Ymin: 0.095, Xmax: -0.745, Ymax: 0.098}},
	{Name: "spiral minibrot", View: View[float64]{Xmin: -0.7435, Ymin: 0.131, Xmax: -0.742, Ymax: 0.1325}},
	{Name: "valley of the dragon", View: View[float64]{Xmin: -0.74, Ymin: 0.18, Xmax: -0.735, Ymax: 0.185}},
	{Name: "mini spiral minibrot", View: View[float64]{Xmin: -1.739, Ymin: -0.0235, Xmax: -1.7375, Ymax: -0.022}},
	{Name: "antenna", View: View[float64]{Xmin: -1.78, Ymin: -0.01, Xmax: -1.76, Ymax: 0.01}},
	{Name: "scepter", View: View[float64]{Xmin: -1.37, Ymin: -0.03, Xmax: -1.31, Ymax: 0.03}},
	{Name: "deep seahorse", View: View[float64]{Xmin: -0.743643135 - 1.2e-7, Ymin: 0.131825963 - 1.2e-7, Xmax: -0.743643135 + 1.2e-7, Ymax: 0.131825963 + 1.2e-7}},
}

// PresetFor returns the preset bound to a digit key.
func PresetFor(r rune) (Preset, bool) {
	if r < '0' || r > '9' {
		return Preset{}, false
	}
	i := int(r - '0')
	if i >= len(Presets) {
		return Preset{}, false
	}
	return Presets[i], true
}
