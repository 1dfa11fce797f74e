package config

// UseColor resolves a color mode against whether output goes to a terminal.
func UseColor(mode ColorMode, terminal bool) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal
	}
}
