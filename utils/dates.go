// Package utils holds small, dependency-free helpers shared by the CLI
// entry points — date parsing ahead of building an Index.
package utils

import (
	"log"
	"time"
)

// DateParser converts YYYY-MM-DD to time.Time or exits on error.
func DateParser(strDate string) time.Time {
	const layout = "2006-01-02"
	t, err := time.Parse(layout, strDate)
	if err != nil {
		log.Fatal(err)
	}
	return t
}
