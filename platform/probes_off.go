//go:build !touchdebug

package platform

const probesEnabled = false
