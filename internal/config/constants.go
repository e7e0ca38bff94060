package config

import "time"

// Base application details
const AppName = "mementor"
const DefaultConfigFileName = "config.toml" // Main config file

// Board defaults
const DefaultInitialRadius = 0
const DefaultRadiusStep = 1
const DefaultHistoryRows = 10
const SystemClipboard = false

// Status Bar
const MessageTimeout = 4 * time.Second
