package window

import "strings"

// Capability is the set of platform features a backend actually implements.
// Operations outside the set are still callable and degrade to no-ops.
type Capability uint16

const (
	CapOwnsSurface Capability = 1 << iota
	CapResizable
	CapPositionable
	CapTitleBar
	CapClipboard
	CapCursor
	CapGamepadPoll
	CapIcon
)

// CapAll is the full desktop capability set.
const CapAll = CapOwnsSurface | CapResizable | CapPositionable | CapTitleBar |
	CapClipboard | CapCursor | CapGamepadPoll | CapIcon

var capabilityNames = []struct {
	cap  Capability
	name string
}{
	{CapOwnsSurface, "owns-surface"},
	{CapResizable, "resizable"},
	{CapPositionable, "positionable"},
	{CapTitleBar, "title-bar"},
	{CapClipboard, "clipboard"},
	{CapCursor, "cursor"},
	{CapGamepadPoll, "gamepad-poll"},
	{CapIcon, "icon"},
}

// Has reports whether every capability in want is present.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	var names []string
	for _, entry := range capabilityNames {
		if c&entry.cap != 0 {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, "|")
}
