// config.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hfinley/centerline/log"
	"github.com/hfinley/centerline/platform"

	"github.com/AllenDang/cimgui-go/imgui"
)

// Config holds the settings that persist across sessions.  Step
// visibility is deliberately not included; each session starts with
// everything visible.
type Config struct {
	platform.Config

	Version        int
	ImGuiSettings  string
	UIFontSize     int
	SelectedTestId string
}

// CurrentConfigVersion history
// 1: initial release
const CurrentConfigVersion = 1

func configFilePath(lg *log.Logger) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		lg.Errorf("Unable to find user config dir: %v", err)
		dir = "."
	}

	dir = filepath.Join(dir, "Centerline")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		lg.Errorf("%s: unable to make directory for config file: %v", dir, err)
	}

	return filepath.Join(dir, "config.json")
}

func (c *Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

func (c *Config) Save(lg *log.Logger) error {
	lg.Infof("Saving config to: %s", configFilePath(lg))
	f, err := os.Create(configFilePath(lg))
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Encode(f)
}

// SaveIfChanged writes the config file only if the encoded config differs
// from what is already on disk; it returns true if a save happened.
func (c *Config) SaveIfChanged(plat platform.Platform, lg *log.Logger) bool {
	c.ImGuiSettings = imgui.SaveIniSettingsToMemory()
	c.InitialWindowSize = plat.WindowSize()
	c.InitialWindowPosition = plat.WindowPosition()

	var b strings.Builder
	if err := c.Encode(&b); err != nil {
		lg.Errorf("unable to encode config: %v", err)
		return false
	}

	if fc, err := os.ReadFile(configFilePath(lg)); err == nil && string(fc) == b.String() {
		return false
	}

	if err := c.Save(lg); err != nil {
		ShowErrorDialog(plat, lg, "Error saving configuration file: %v", err)
	}
	return true
}

func getDefaultConfig() *Config {
	return &Config{
		Config: platform.Config{
			InitialWindowPosition: [2]int{100, 100},
		},
		Version:    CurrentConfigVersion,
		UIFontSize: 13,
	}
}

// LoadOrMakeDefaultConfig tries to load the config file; any failure
// (missing file, corrupt JSON, panic in decoding) falls back to the
// default configuration.  The error, if any, is returned so the caller
// can tell the user about it once the UI is up.
func LoadOrMakeDefaultConfig(lg *log.Logger) (config *Config, configErr error) {
	fn := configFilePath(lg)
	lg.Infof("Loading config from: %s", fn)

	config = getDefaultConfig()

	if contents, err := os.ReadFile(fn); err == nil {
		defer func() {
			if err := recover(); err != nil {
				lg.Warnf("Unable to parse config file: %v", err)
				configErr = fmt.Errorf("%v", err)
				config = getDefaultConfig()
			}
		}()

		loaded := &Config{}
		d := json.NewDecoder(bytes.NewReader(contents))
		if err := d.Decode(loaded); err != nil {
			configErr = err
		} else if loaded.Version > CurrentConfigVersion {
			configErr = fmt.Errorf("config file written by a newer version")
		} else {
			config = loaded
			config.Version = CurrentConfigVersion
		}
	}

	if config.UIFontSize == 0 {
		config.UIFontSize = 13
	}
	if config.ImGuiSettings != "" {
		imgui.LoadIniSettingsFromMemory(config.ImGuiSettings)
	}

	return
}
