package cloud

import "github.com/rs/zerolog"

// LogRenderer is a headless Renderer that records what would be drawn in the log
type LogRenderer struct {
	log  zerolog.Logger
	next Handle
}

// NewLogRenderer creates a renderer logging at debug level
func NewLogRenderer(log zerolog.Logger) *LogRenderer {
	return &LogRenderer{log: log}
}

func (r *LogRenderer) DisplayCloud(c *Cloud) Handle {
	r.next++
	r.log.Debug().Uint64("handle", uint64(r.next)).Int("points", c.Len()).Msg("display cloud")
	return r.next
}

func (r *LogRenderer) EraseCloud(h Handle) {
	r.log.Debug().Uint64("handle", uint64(h)).Msg("erase cloud")
}

func (r *LogRenderer) Repaint() {
	r.log.Debug().Msg("repaint")
}
