//go:build touchdebug

package platform

// Probe pins are wired by NewBoard only when built with -tags touchdebug.
const probesEnabled = true
