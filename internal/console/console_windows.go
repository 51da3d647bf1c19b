//go:build windows

package console

import "golang.org/x/sys/windows"

const codePageUTF8 = 65001

var (
	kernel32            = windows.NewLazySystemDLL("kernel32.dll")
	procSetConsoleOutCP = kernel32.NewProc("SetConsoleOutputCP")
)

// EnableUTF8 switches the console output code page to UTF-8 so status
// lines with non-ASCII artifact names render correctly. Best effort: a
// failure here only degrades display.
func EnableUTF8() {
	_, _, _ = procSetConsoleOutCP.Call(uintptr(codePageUTF8))
}
