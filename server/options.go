package server

// skillPreset is a named difficulty profile; caller-supplied fields
// override its values when they are valid positive integers.
type skillPreset struct {
	MovetimeMs int
	Depth      int
	HashMB     int
}

var skillPresets = map[string]skillPreset{
	"blitz":  {MovetimeMs: 100, HashMB: 32},
	"rapid":  {MovetimeMs: 300, HashMB: 64},
	"strong": {MovetimeMs: 1000, Depth: 6, HashMB: 128},
}

// resolveMoveOptions starts from the skill preset (defaulting to rapid) and
// applies valid caller overrides.
func resolveMoveOptions(skill string, movetimeMs, depth, hashMB int) MoveOptions {
	var preset, ok = skillPresets[skill]
	if !ok {
		preset = skillPresets["rapid"]
	}
	var opts = MoveOptions{
		MovetimeMs: preset.MovetimeMs,
		Depth:      preset.Depth,
		HashMB:     preset.HashMB,
	}
	if movetimeMs > 0 {
		opts.MovetimeMs = movetimeMs
	}
	if depth > 0 {
		opts.Depth = depth
	}
	if hashMB > 0 {
		opts.HashMB = hashMB
	}
	return opts
}
