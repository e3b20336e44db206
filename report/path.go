package report

import (
	"os"
	"time"

	"github.com/valyala/fasttemplate"
)

// ExpandPath substitutes {algorithm}, {date}, {time} and
// {hostname} placeholders in an output path. Unknown
// placeholders are preserved as-is.
func ExpandPath(
	path string,
	algorithm string,
	now time.Time,
) string {
	hostname, _ := os.Hostname()

	return fasttemplate.ExecuteStringStd(
		path, "{", "}",
		map[string]interface{}{
			"algorithm": algorithm,
			"date":      now.Format("2006-01-02"),
			"time":      now.Format("150405"),
			"hostname":  hostname,
		},
	)
}
