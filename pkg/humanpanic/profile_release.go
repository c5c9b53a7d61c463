//go:build !humanpanic_debug

package humanpanic

const debugBuild = false
