package config

import (
	"strconv"

	"github.com/atlanticdynamic/mcpdemo/internal/fancy"
)

// Tree renders the resolved configuration as a styled tree for CLI display.
func (c *Config) Tree() string {
	t := fancy.Tree().Root(fancy.RootStyle.Render("mcpdemo config"))
	t.Child(fancy.FieldNode("transport", c.Transport.String()))
	t.Child(fancy.FieldNode("host", c.Host))
	t.Child(fancy.FieldNode("port", strconv.Itoa(c.Port)))
	return t.String()
}
