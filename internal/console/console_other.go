//go:build !windows

package console

// EnableUTF8 is a no-op outside Windows; terminals there are UTF-8 already.
func EnableUTF8() {}
