//go:build !windows

package tray

import _ "embed"

var (
	//go:embed assets/idle.png
	iconIdle []byte
	//go:embed assets/running.png
	iconRunning []byte
)
