package capture

import "gocv.io/x/gocv"

// NoKey is returned by WaitKey when no key was pressed.
const NoKey = -1

// Display renders annotated frames and reports key presses.
type Display interface {
	Show(frame gocv.Mat)
	// WaitKey waits up to delay milliseconds for a key press.
	WaitKey(delay int) int
	Close() error
}

// WindowDisplay shows frames in an interactive OpenCV window.
type WindowDisplay struct {
	window *gocv.Window
}

func NewWindowDisplay(title string) *WindowDisplay {
	return &WindowDisplay{window: gocv.NewWindow(title)}
}

func (d *WindowDisplay) Show(frame gocv.Mat) {
	d.window.IMShow(frame)
}

func (d *WindowDisplay) WaitKey(delay int) int {
	return d.window.WaitKey(delay)
}

func (d *WindowDisplay) Close() error {
	return d.window.Close()
}

// HeadlessDisplay discards frames; it is used when no window system is available.
type HeadlessDisplay struct{}

func (HeadlessDisplay) Show(gocv.Mat)   {}
func (HeadlessDisplay) WaitKey(int) int { return NoKey }
func (HeadlessDisplay) Close() error    { return nil }

// IsQuitKey reports whether key is the quit key q.
func IsQuitKey(key int) bool {
	return key != NoKey && key&0xFF == 'q'
}
