package ui

import "github.com/bsp-cli/bsp/pkg/config"

func testConfig() *config.Config {
	return &config.Config{Timeouts: config.TimeoutsConfig{Package: 300, Git: 30}}
}
