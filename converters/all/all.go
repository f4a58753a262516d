// Package all registers every report sink.
package all

import (
	// Import all the sinks so they register themselves
	_ "github.com/darianmavgo/ora2pg/converters/excel"
	_ "github.com/darianmavgo/ora2pg/converters/sqlite"
)
