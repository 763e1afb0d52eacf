package main

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/kovidgoyal/imagemeta/meta"
)

var directive = regexp.MustCompile(`%(.?)`)

// expandTemplate substitutes %w, %h, %a and %f in tmpl with the width,
// height, animation frame count and format of md. %% is a literal percent
// sign.
func expandTemplate(tmpl string, md *meta.Data) (string, error) {
	var err error
	ans := directive.ReplaceAllStringFunc(tmpl, func(m string) string {
		switch m[1:] {
		case "w":
			return strconv.FormatUint(uint64(md.Dimensions.Width), 10)
		case "h":
			return strconv.FormatUint(uint64(md.Dimensions.Height), 10)
		case "a":
			return strconv.FormatUint(uint64(md.AnimationFrames), 10)
		case "f":
			return md.Format.String()
		case "%":
			return "%"
		}
		if err == nil {
			err = fmt.Errorf("unknown format directive %q", m)
		}
		return m
	})
	if err != nil {
		return "", err
	}
	return ans, nil
}
