package cubemap

// EnvironmentLoadingMarker is appended to the status line while environment maps are loading.
const EnvironmentLoadingMarker = "[loading environment]"

// StatusLine joins the controller status with the environment loading marker and forwards the
// combined line whenever it changes. It runs on the tick goroutine and is not safe for
// concurrent use.
type StatusLine struct {
	out     StatusFunc
	cubemap string
	loading bool
	last    string
}

// NewStatusLine creates a StatusLine forwarding to out. A nil out only records the line.
func NewStatusLine(out StatusFunc) *StatusLine {
	return &StatusLine{out: out}
}

// SetCubemap replaces the cubemap part of the line. It has the StatusFunc signature so it can be
// passed to WithStatusCallback.
func (l *StatusLine) SetCubemap(status string) {
	l.cubemap = status
	l.emit()
}

// SetEnvironmentLoading shows or clears the environment loading marker.
func (l *StatusLine) SetEnvironmentLoading(loading bool) {
	l.loading = loading
	l.emit()
}

// TrackEnvironment refreshes the marker from the loader. Call it after every EnvironmentLoader.Tick;
// the marker is retired on the first call after the last map binds or fails.
func (l *StatusLine) TrackEnvironment(env *EnvironmentLoader) {
	l.SetEnvironmentLoading(env.Loading())
}

func (l *StatusLine) String() string {
	line := l.cubemap
	if line == "" {
		line = "no cubemap"
	}
	if l.loading {
		line += " " + EnvironmentLoadingMarker
	}
	return line
}

func (l *StatusLine) emit() {
	line := l.String()
	if line == l.last {
		return
	}
	l.last = line
	if l.out != nil {
		l.out(line)
	}
}
