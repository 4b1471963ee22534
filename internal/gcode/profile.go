// Package gcode turns a computed layout into marking G-code for a pen plotter
// or laser, so the item outlines can be traced onto the physical surface,
// and reads such code back for checking.
package gcode

// Profile defines the dialect of one marking machine.
type Profile struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	StartCode []string `json:"start_code"` // Commands at start of file
	EndCode   []string `json:"end_code"`   // Commands at end of file; [TravelZ] is substituted

	// Tool control. Pen plotters lower and raise Z; lasers switch the beam.
	UsesZ   bool   `json:"uses_z"`
	ToolOn  string `json:"tool_on"`  // e.g. "M3 S%d", formatted with the power
	ToolOff string `json:"tool_off"` // e.g. "M5"

	RapidMove string `json:"rapid_move"` // G0 or equivalent
	FeedMove  string `json:"feed_move"`  // G1 or equivalent

	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"`

	DecimalPlaces int `json:"decimal_places"`
}

// Profiles are the built-in machine dialects.
var Profiles = []Profile{
	{
		Name:          "Pen Plotter",
		Description:   "Grbl-based plotter with a Z-actuated pen",
		StartCode:     []string{"G90", "G21", "G17"},
		EndCode:       []string{"G0 Z[TravelZ]", "G0 X0 Y0", "M2"},
		UsesZ:         true,
		RapidMove:     "G0",
		FeedMove:      "G1",
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Grbl Laser",
		Description:   "Grbl 1.1 laser mode, beam switched with M3/M5",
		StartCode:     []string{"G90", "G21", "G17", "$32=1"},
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		ToolOn:        "M3 S%d",
		ToolOff:       "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC with a pen or scribe on Z",
		StartCode:     []string{"G90", "G21", "G17", "G64 P0.01"},
		EndCode:       []string{"G0 Z[TravelZ]", "M2"},
		UsesZ:         true,
		RapidMove:     "G0",
		FeedMove:      "G1",
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	},
}

// GetProfile returns the profile with the given name, or the first built-in
// profile when none matches.
func GetProfile(name string) Profile {
	for _, p := range Profiles {
		if p.Name == name {
			return p
		}
	}
	return Profiles[0]
}

// ProfileNames returns the names of all built-in profiles.
func ProfileNames() []string {
	names := make([]string, len(Profiles))
	for i, p := range Profiles {
		names[i] = p.Name
	}
	return names
}
