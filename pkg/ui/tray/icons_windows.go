package tray

import _ "embed"

var (
	//go:embed assets/idle.ico
	iconIdle []byte
	//go:embed assets/running.ico
	iconRunning []byte
)
